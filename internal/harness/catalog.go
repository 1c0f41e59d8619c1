package harness

// DimensionInfo describes one measurement dimension's persisted artifact:
// its name, the tabular file it owns within a run directory, and the
// canonical unit its values are normalized to.
type DimensionInfo struct {
	Name     string
	Filename string
	Unit     string
}

// Catalog lists every measurement dimension in execution order. The
// analyzer consumes the same catalog, so run and analyze never disagree
// about file names or units.
func Catalog() []DimensionInfo {
	return []DimensionInfo{
		{Name: "startup-latency", Filename: "01-startup-latency.csv", Unit: "ms"},
		{Name: "copyup-overhead", Filename: "02-copyup-overhead.csv", Unit: "ms"},
		{Name: "cpu-throttling", Filename: "03-cpu-throttling.csv", Unit: "%"},
		{Name: "write-performance", Filename: "04-write-performance.csv", Unit: "MB/s"},
		{Name: "metadata-operations", Filename: "05-metadata-operations.csv", Unit: "ms"},
		{Name: "image-pull-time", Filename: "06-image-pull-time.csv", Unit: "ms"},
		{Name: "namespace-creation", Filename: "07-namespace-creation.csv", Unit: "ms"},
	}
}

func catalogEntry(name string) DimensionInfo {
	for _, info := range Catalog() {
		if info.Name == name {
			return info
		}
	}
	// Dimensions reference their own catalog entries; a miss is a
	// programming error.
	panic("unknown dimension " + name)
}
