package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	scenarios := map[string]struct {
		in string
		mb float64
		ok bool
	}{
		"test decimal megabytes": {
			in: "695.2MB",
			mb: 695.2,
			ok: true,
		},
		"test missing whitespace": {
			in: "100MB",
			mb: 100,
			ok: true,
		},
		"test whitespace between number and unit": {
			in: "228 MB",
			mb: 228,
			ok: true,
		},
		"test binary converts to decimal": {
			in: "12.3MiB",
			mb: 12.897484,
			ok: true,
		},
		"test gibibytes": {
			in: "1GiB",
			mb: 1073.741824,
			ok: true,
		},
		"test kilobytes": {
			in: "512kB",
			mb: 0.512,
			ok: true,
		},
		"test bare number is bytes": {
			in: "104857600",
			mb: 104.8576,
			ok: true,
		},
		"test garbage": {
			in: "garbage",
			mb: 0,
			ok: false,
		},
		"test empty": {
			in: "",
			mb: 0,
			ok: false,
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			mb, ok := ParseSize(data.in)
			assert.Equal(t, data.ok, ok)
			assert.InDelta(t, data.mb, mb, 0.001)
		})
	}
}

func TestParseThroughput(t *testing.T) {
	scenarios := map[string]struct {
		in   string
		mbps float64
		ok   bool
	}{
		"test dd rate without whitespace": {
			in:   "695.2MB/s",
			mbps: 695.2,
			ok:   true,
		},
		"test dd rate with whitespace": {
			in:   "228 MB/s",
			mbps: 228,
			ok:   true,
		},
		"test binary rate": {
			in:   "100MiB/s",
			mbps: 104.8576,
			ok:   true,
		},
		"test missing per-second suffix": {
			in:   "228 MB",
			mbps: 0,
			ok:   false,
		},
		"test garbage": {
			in:   "N/A",
			mbps: 0,
			ok:   false,
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			mbps, ok := ParseThroughput(data.in)
			assert.Equal(t, data.ok, ok)
			assert.InDelta(t, data.mbps, mbps, 0.001)
		})
	}
}

func TestParseThroughputIdempotentGrammar(t *testing.T) {
	// Same input always yields the same output; the parser holds no state.
	for i := 0; i < 3; i++ {
		mbps, ok := ParseThroughput("695.2MB/s")
		assert.True(t, ok)
		assert.InDelta(t, 695.2, mbps, 0.001)
	}
}
