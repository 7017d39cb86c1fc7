package domain

import (
	"fmt"
	"time"
)

// Window is a named relative time range used for historical queries.
type Window string

const (
	WindowHour Window = "hour"
	WindowDay  Window = "day"
	WindowWeek Window = "week"
	WindowAll  Window = "all"
)

// Windows lists every window in picker order.
func Windows() []Window {
	return []Window{WindowHour, WindowDay, WindowWeek, WindowAll}
}

// Duration returns the span of the window. WindowAll returns 0; callers
// treat it as unbounded.
func (w Window) Duration() time.Duration {
	switch w {
	case WindowHour:
		return time.Hour
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	}
	return 0
}

func (w Window) Label() string {
	switch w {
	case WindowHour:
		return "Last Hour"
	case WindowDay:
		return "Last Day"
	case WindowWeek:
		return "Last Week"
	case WindowAll:
		return "All"
	}
	return string(w)
}

// ParseWindow maps a user-supplied name to a Window.
func ParseWindow(raw string) (Window, error) {
	switch Window(raw) {
	case WindowHour, WindowDay, WindowWeek, WindowAll:
		return Window(raw), nil
	}
	return "", fmt.Errorf("unknown window %q", raw)
}
