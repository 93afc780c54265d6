package treatment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("treatment plan not found")
	ErrPatientNotFound = errors.New("patient not found")
)

type Repository interface {
	// PatientName resolves the display name for a patient, or
	// ErrPatientNotFound when the id is unknown.
	PatientName(ctx context.Context, patientID uuid.UUID) (string, error)

	Insert(ctx context.Context, p *Plan) (*Plan, error)
	Update(ctx context.Context, p *Plan) (*Plan, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Plan, error)
	ListActive(ctx context.Context) ([]Plan, error)
	SearchByProcedure(ctx context.Context, procedure string) ([]Plan, error)
}
