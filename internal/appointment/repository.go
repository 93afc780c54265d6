package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("appointment not found")
	ErrDentistNotFound = errors.New("dentist not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// Directory is the narrow view of the dentist and patient registries the
// scheduling service needs: name resolution only.
type Directory struct {
	ID   uuid.UUID
	Name string
}

// Repository contains all DB interactions needed by the scheduling service.
type Repository interface {
	GetDentist(ctx context.Context, id uuid.UUID) (*Directory, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*Directory, error)

	// Conflict validation: any non-cancelled appointment at exactly
	// (dentistID, at), optionally ignoring one record during updates.
	HasConflict(ctx context.Context, dentistID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error)

	Insert(ctx context.Context, a *Appointment) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	ListByDentist(ctx context.Context, dentistID uuid.UUID) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
	ListByStatus(ctx context.Context, status Status) ([]Appointment, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Appointment, error)

	// Availability queries.
	BookedTimes(ctx context.Context, dentistID uuid.UUID, dayStart, dayEnd time.Time) ([]time.Time, error)
	EarliestAfter(ctx context.Context, dentistID uuid.UUID, after time.Time) (*Appointment, error)
}
