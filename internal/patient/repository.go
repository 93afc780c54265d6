package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("patient not found")
	ErrDuplicateDocument = errors.New("a patient with this document already exists")
	ErrNoAnamnesis       = errors.New("patient has no anamnesis on file")
)

// Page is a window of a patient listing.
type Page struct {
	Items []Patient
	Total int
}

type Repository interface {
	Insert(ctx context.Context, p *Patient) (*Patient, error)
	Update(ctx context.Context, p *Patient) (*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	SaveAnamnesis(ctx context.Context, id uuid.UUID, a *Anamnesis) error

	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByDocument(ctx context.Context, document string) (*Patient, error)
	List(ctx context.Context) ([]Patient, error)
	ListPaged(ctx context.Context, limit, offset int) (*Page, error)
	SearchByName(ctx context.Context, name string) ([]Patient, error)
	DocumentExists(ctx context.Context, document string, excludeID *uuid.UUID) (bool, error)
}
