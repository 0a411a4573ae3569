package scheduling

import (
	"context"
	"errors"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrDuplicateSlot surfaces the storage-level unique index on active
	// (doctor, date, time) triples. It only fires if two inserts for the
	// identical minute race past the schedule lock.
	ErrDuplicateSlot = errors.New("an active appointment already exists at this exact time")
)

// UpdatePatch is a partial update applied by role-gated admin mutation.
// Nil fields are left untouched.
type UpdatePatch struct {
	Status *Status
	Notes  *string
}

// Repository contains all appointment store interactions needed by the service.
type Repository interface {
	// ListActiveTimes returns the raw appointment_time strings of all
	// non-cancelled appointments for one doctor on one date.
	ListActiveTimes(ctx context.Context, doctorName, date string) ([]string, error)

	Insert(ctx context.Context, appt *Appointment) error
	GetByID(ctx context.Context, id string) (*Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]Appointment, error)
	Update(ctx context.Context, id string, patch UpdatePatch) (*Appointment, error)
	Delete(ctx context.Context, id string) error

	// CompletePast marks pending/confirmed appointments dated strictly
	// before the given date as completed, returning the affected count.
	CompletePast(ctx context.Context, before string) (int64, error)
}
