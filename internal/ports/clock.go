package ports

import "time"

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The sequencer takes it as a dependency so
// tests can fire dwell timers by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
