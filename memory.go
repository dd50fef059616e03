package storee

import (
	"context"
	"time"
)

// Memory is a durable memory record, optionally derived from an interview
// session.
type Memory struct {
	ID      string
	Owner   string
	Title   string
	Content string

	// Date is when the remembered event happened, as resolved from a
	// DateSpec. Distinct from CreatedAt, which is when the record was made.
	Date time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Attachments []MediaAttachment
}

// DateType selects how a DateSpec value is interpreted.
type DateType string

const (
	DateExact  DateType = "exact"  // ISO date, e.g. "2010-06-12"
	DateMonth  DateType = "month"  // ISO year-month, e.g. "2024-05"
	DateYear   DateType = "year"   // year, e.g. "2024"
	DateAge    DateType = "age"    // free-text age description
	DatePeriod DateType = "period" // free-text period description
)

// DateSpec is a user-supplied description of when a memory happened.
// Age and period specs carry a free-text description; no exact date is
// derivable from them.
type DateSpec struct {
	Value       string
	Type        DateType
	Description string
}

// Resolve normalizes a DateSpec to a concrete timestamp. Month specs default
// to day 1, year specs to January 1. Age and period specs, empty specs, and
// malformed exact/month/year values all resolve to now: a cosmetic date
// problem must never block memory creation.
func (d DateSpec) Resolve(now time.Time) time.Time {
	if d.Value == "" {
		return now
	}
	switch d.Type {
	case DateExact:
		if t, err := time.Parse("2006-01-02", d.Value); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339, d.Value); err == nil {
			return t
		}
	case DateMonth:
		if t, err := time.Parse("2006-01-02", d.Value+"-01"); err == nil {
			return t
		}
	case DateYear:
		if t, err := time.Parse("2006-01-02", d.Value+"-01-01"); err == nil {
			return t
		}
	}
	return now
}

// MemoryStore persists memory records, scoped to an owner the same way
// SessionStore is.
type MemoryStore interface {
	CreateMemory(ctx context.Context, memory Memory) error
	Memory(ctx context.Context, id, owner string) (Memory, error)
	// Memories returns the owner's memories ordered by Date descending.
	Memories(ctx context.Context, owner string) ([]Memory, error)
	UpdateMemory(ctx context.Context, memory Memory) (Memory, error)
	DeleteMemory(ctx context.Context, id, owner string) error
}
