// Package baseline isolates an operation's cost from the fixed overhead of
// invoking the container runtime around it.
//
// Several of the measured images only ship second-resolution timers, so the
// operation has to be timed from outside the container, inclusive of the
// runtime's own process-startup cost. Subtracting a spawn-only control run
// removes that fixed cost.
//
// Known limitation, kept deliberately: the subtraction assumes invocation
// overhead is stable and independent of the operation's duration, and no
// variance is propagated through it, so confidence intervals on corrected
// values are not rigorously derived. This is a documented methodological
// caveat of the technique, not something to paper over here.
package baseline

import "time"

// Correct removes the fixed invocation overhead from a total elapsed time.
// The result is clamped at zero: jitter can make a control run slower than
// the measured run, and a negative duration is never stored.
func Correct(total, control time.Duration) time.Duration {
	if corrected := total - control; corrected > 0 {
		return corrected
	}
	return 0
}
