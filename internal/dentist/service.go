package dentist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNameRequired = errors.New("dentist name is required")

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateRequest struct {
	Name      string
	CRO       string
	Specialty string
	Phone     string
	Email     string
}

type UpdateRequest struct {
	Name      *string
	CRO       *string
	Specialty *string
	Phone     *string
	Email     *string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Dentist, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if cro := strings.TrimSpace(req.CRO); cro != "" {
		taken, err := s.repo.CROExists(ctx, cro, nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateCRO
		}
	}

	created, err := s.repo.Insert(ctx, &Dentist{
		Name:      name,
		CRO:       strings.TrimSpace(req.CRO),
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("dentist_id", created.ID.String()).Msg("dentist registered")
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Dentist, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		d.Name = name
	}
	if req.CRO != nil {
		cro := strings.TrimSpace(*req.CRO)
		if cro != "" && cro != d.CRO {
			taken, err := s.repo.CROExists(ctx, cro, &id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateCRO
			}
		}
		d.CRO = cro
	}
	if req.Specialty != nil {
		d.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.Email != nil {
		d.Email = *req.Email
	}

	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Deactivate keeps the record but removes the dentist from the active
// roster used by new bookings.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info().Str("dentist_id", id.String()).Msg("dentist deactivated")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Dentist, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]Dentist, error) {
	return s.repo.ListActive(ctx)
}
