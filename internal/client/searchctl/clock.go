// internal/client/searchctl/clock.go
package searchctl

import "time"

// Timer is a pending debounced call.
type Timer interface {
	Stop() bool
}

// Clock schedules debounced calls. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
