package sample

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Group is one (dimension, labels) series of measurements read back from a
// store: the valid values in iteration order, plus the counts needed to
// report completeness.
type Group struct {
	Labels  []string
	Values  []float64 // valid measurements only
	Total   int       // rows seen, valid or not
	Invalid int
}

// Key renders the group's labels as a stable map key ("alpine/warm").
func (g Group) Key() string {
	return strings.Join(g.Labels, "/")
}

// Dataset is everything one dimension's store held for one platform run,
// grouped by the categorical label columns. The reader never mutates the
// underlying file.
type Dataset struct {
	Columns []string
	Groups  map[string]*Group
}

// ValueColumn returns the name of the numeric column.
func (d *Dataset) ValueColumn() string {
	return d.Columns[len(d.Columns)-2]
}

// GroupKeys returns the group keys in sorted order for stable output.
func (d *Dataset) GroupKeys() []string {
	keys := make([]string, 0, len(d.Groups))
	for k := range d.Groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads one dimension file written by a Store. Rows flagged invalid
// contribute to Total and Invalid but not to Values; a malformed row is an
// error, since the store only ever writes whole rows.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("store file %s has no header", path)
	}

	header := records[0]
	if len(header) < 3 || header[0] != "iteration" || header[len(header)-1] != "valid" {
		return nil, fmt.Errorf("store file %s has unexpected schema %v", path, header)
	}

	ds := &Dataset{
		Columns: header,
		Groups:  make(map[string]*Group),
	}

	seen := make(map[string]map[int]bool)

	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+1, len(rec), len(header))
		}

		iter, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d iteration: %w", i+1, err)
		}

		labels := rec[1 : len(rec)-2]

		value, err := strconv.ParseFloat(rec[len(rec)-2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d value: %w", i+1, err)
		}

		valid, err := strconv.ParseBool(rec[len(rec)-1])
		if err != nil {
			return nil, fmt.Errorf("row %d validity flag: %w", i+1, err)
		}

		key := strings.Join(labels, "/")
		g, ok := ds.Groups[key]
		if !ok {
			g = &Group{Labels: append([]string(nil), labels...)}
			ds.Groups[key] = g
			seen[key] = make(map[int]bool)
		}

		if seen[key][iter] {
			return nil, fmt.Errorf("iteration %d appears twice for group %s", iter, key)
		}
		seen[key][iter] = true

		g.Total++
		if valid {
			g.Values = append(g.Values, value)
		} else {
			g.Invalid++
		}
	}

	return ds, nil
}
