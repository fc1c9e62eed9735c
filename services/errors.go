package services

import "fmt"

// LookupError is returned when a Slack user cannot be resolved to a
// display name and email.
type LookupError struct {
	UserID string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("user lookup failed (user: %s): %v", e.UserID, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// CalendarError is returned when a calendar create or delete call fails.
type CalendarError struct {
	Op  string // "create" or "delete"
	Err error
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("calendar %s failed: %v", e.Op, e.Err)
}

func (e *CalendarError) Unwrap() error { return e.Err }

// PostError is returned when posting a Slack message fails.
type PostError struct {
	Channel string
	Err     error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("slack post failed (channel: %s): %v", e.Channel, e.Err)
}

func (e *PostError) Unwrap() error { return e.Err }
