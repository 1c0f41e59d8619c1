package baseline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCorrect(t *testing.T) {
	scenarios := map[string]struct {
		total   time.Duration
		control time.Duration
		want    time.Duration
	}{
		"test operation slower than control": {
			total:   150 * time.Millisecond,
			control: 120 * time.Millisecond,
			want:    30 * time.Millisecond,
		},
		"test control slower than operation clamps to zero": {
			total:   100 * time.Millisecond,
			control: 120 * time.Millisecond,
			want:    0,
		},
		"test equal durations": {
			total:   120 * time.Millisecond,
			control: 120 * time.Millisecond,
			want:    0,
		},
		"test zero control": {
			total:   75 * time.Millisecond,
			control: 0,
			want:    75 * time.Millisecond,
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			assert.Equal(t, data.want, Correct(data.total, data.control))
		})
	}
}
