package clock

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowIsNonDecreasing(t *testing.T) {
	prev := Now()
	for i := 0; i < 1000; i++ {
		cur := Now()
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestSinceMeasuresElapsedTime(t *testing.T) {
	start := Now()
	time.Sleep(10 * time.Millisecond)
	elapsed := Since(start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, time.Second)
}

func TestSourceNamesTheClock(t *testing.T) {
	assert.Contains(t, strings.ToLower(Source()), "monotonic")
}
