// Package units normalizes the heterogeneous size and throughput strings
// printed by tools inside measured containers (dd, docker, busybox
// utilities) into canonical decimal megabytes and MB/s.
package units

import (
	"strings"

	units "github.com/docker/go-units"
)

const bytesPerMB = 1000 * 1000

// ParseSize parses a human-readable size string ("100MB", "12.3MiB",
// "512 kB", "1.5G") into decimal megabytes. Binary (IEC) suffixes are
// converted to their decimal equivalent, e.g. "12.3MiB" ≈ 12.9 MB.
//
// Returns (0, false) for anything outside the grammar. Never panics;
// unparsable collaborator output must degrade to an invalid sample, not
// abort an iteration.
func ParseSize(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var (
		b   int64
		err error
	)
	if isBinary(s) {
		b, err = units.RAMInBytes(s)
	} else {
		b, err = units.FromHumanSize(s)
	}
	if err != nil || b < 0 {
		return 0, false
	}

	return float64(b) / bytesPerMB, true
}

// ParseThroughput parses a rate string ("695.2MB/s", "228 MB/s",
// "104 kB/s") into decimal MB/s. The unit grammar is the same as
// ParseSize with a trailing "/s".
func ParseThroughput(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	if !strings.HasSuffix(lower, "/s") {
		return 0, false
	}
	s = strings.TrimSpace(s[:len(s)-2])

	return ParseSize(s)
}

// isBinary reports whether the suffix uses an IEC "i" prefix (KiB, MiB, …).
// go-units parses decimal and binary grammars with separate functions, so
// the variant has to be picked up front.
func isBinary(s string) bool {
	t := strings.TrimRight(strings.ToLower(s), "b")
	return strings.HasSuffix(t, "i")
}
