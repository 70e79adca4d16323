// Package clock supplies the timestamps stamped on commit and tag signatures.
package clock

import "time"

// DefaultStep is how far a fixed clock advances between signatures.
const DefaultStep = time.Minute

// Clock returns the time for the next signature.
type Clock interface {
	Now() time.Time
}

// Func adapts a function to the Clock interface.
type Func func() time.Time

// Now calls f.
func (f Func) Now() time.Time {
	return f()
}

// System returns the wall clock.
func System() Clock {
	return Func(time.Now)
}

// Fixed returns a clock that starts at epoch and advances by step after every
// call, so repeated runs produce byte-identical objects.
func Fixed(epoch time.Time, step time.Duration) Clock {
	next := epoch
	return Func(func() time.Time {
		now := next
		next = next.Add(step)
		return now
	})
}
