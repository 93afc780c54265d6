package dentist

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("dentist not found")
	ErrDuplicateCRO = errors.New("a dentist with this CRO already exists")
)

type Repository interface {
	Insert(ctx context.Context, d *Dentist) (*Dentist, error)
	Update(ctx context.Context, d *Dentist) (*Dentist, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error)
	List(ctx context.Context) ([]Dentist, error)
	ListActive(ctx context.Context) ([]Dentist, error)
	CROExists(ctx context.Context, cro string, excludeID *uuid.UUID) (bool, error)
}
