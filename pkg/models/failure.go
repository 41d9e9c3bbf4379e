package models

import (
	"context"
	"errors"
	"fmt"
)

// Failure records a single item that could not be scraped
type Failure struct {
	Stage    string
	League   string
	Season   string
	MatchDay int
	Err      error
}

func (f Failure) Error() string {
	if f.League == "" {
		return fmt.Sprintf("%s: %v", f.Stage, f.Err)
	}
	return fmt.Sprintf("%s %s/%s/%d: %v", f.Stage, f.League, f.Season, f.MatchDay, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Interrupted reports whether any failure was caused by cancellation or a
// context deadline, meaning the scrape stopped before covering every window.
func Interrupted(failures []Failure) bool {
	for _, f := range failures {
		if errors.Is(f.Err, context.Canceled) || errors.Is(f.Err, context.DeadlineExceeded) {
			return true
		}
	}
	return false
}
