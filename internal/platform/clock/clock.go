package clock

import "time"

// Clock abstracts time to keep usecases and UI timers deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
