package domain

import (
	"fmt"
	"strings"
	"time"
)

const timeOfDayLayout = "15:04"

// ParseTimeOfDay validates a 24-hour "HH:MM" time and returns it normalized.
// An empty string means no time was given and yields nil.
func ParseTimeOfDay(s string) (*string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	out := t.Format(timeOfDayLayout)
	return &out, nil
}

// DisplayTimeOfDay renders "14:30" as "2:30 PM". Unparseable input is returned as is.
func DisplayTimeOfDay(s string) string {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return s
	}
	return t.Format("3:04 PM")
}
