package domain

import (
	"fmt"
	"time"
)

// Time window a trip must fit into.
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, fmt.Errorf("window: start %s must be before end %s",
			start.Format("15:04"), end.Format("15:04"))
	}
	return Window{Start: start, End: end}, nil
}

// Fits reports whether a trip of the given duration, departing at Start,
// finishes by End.
func (w Window) Fits(totalSeconds int) bool {
	finish := w.Start.Add(time.Duration(totalSeconds) * time.Second)
	return !finish.After(w.End)
}
