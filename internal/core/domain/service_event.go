package domain

import (
	"errors"
	"time"
)

// DisplayLayout is the fixed-width DD/MM/YYYY HH:MM rendering of CreatedAt.
const DisplayLayout = "02/01/2006 15:04"

var (
	ErrEventNotFound = errors.New("service event not found")
	// ErrEventInFlight means another request holding the same idempotency
	// key is still being stored.
	ErrEventInFlight = errors.New("service event with this key is still being created")
)

// ServiceEvent is one entry of the append-only attendance log.
type ServiceEvent struct {
	ID          int64
	Description string
	Category    string
	Duration    string // opaque, never parsed
	Author      string // user name copy, not a reference
	CreatedAt   time.Time
}

// DisplayTime renders CreatedAt in loc using DisplayLayout.
func (e *ServiceEvent) DisplayTime(loc *time.Location) string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return e.CreatedAt.In(loc).Format(DisplayLayout)
}
