package clock

import "time"

// Clock abstracts wall-clock reads so round windows can be stamped
// deterministically in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns a Clock backed by the system clock
func New() Clock {
	return systemClock{}
}
