package clock

import (
	"time"

	"golang.org/x/sys/unix"
)

// Timestamp is a point on the process-local monotonic timeline. Timestamps
// are only comparable within a single run; they carry no wall-clock meaning.
type Timestamp time.Duration

var (
	// rawOK records whether CLOCK_MONOTONIC_RAW is usable. Flipped to false
	// permanently on the first failed read so a run never mixes sources.
	rawOK = true

	fallbackEpoch = time.Now()

	last Timestamp
)

// Now returns a monotonic timestamp with nanosecond intent.
//
// The primary source is CLOCK_MONOTONIC_RAW, which is not subject to NTP
// frequency adjustment. Where the raw clock is unavailable, the wall
// clock's monotonic reading is used instead at whatever resolution the
// platform provides. Returned values never decrease within a run.
//
// The harness is strictly sequential, so no locking is needed here.
func Now() Timestamp {
	ts := read()
	if ts < last {
		return last
	}
	last = ts
	return ts
}

// Since returns the elapsed time between a previous Timestamp and now.
func Since(t Timestamp) time.Duration {
	return time.Duration(Now() - t)
}

func read() Timestamp {
	if rawOK {
		var ts unix.Timespec
		if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err == nil {
			return Timestamp(time.Duration(ts.Nano()))
		}
		rawOK = false
	}

	return Timestamp(time.Since(fallbackEpoch))
}

// Source reports which clock is backing Now, for the platform descriptor.
func Source() string {
	if rawOK {
		return "clock_gettime(CLOCK_MONOTONIC_RAW)"
	}
	return "time.Now (monotonic reading)"
}
