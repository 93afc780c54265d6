package patient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNameRequired = errors.New("patient name is required")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateRequest struct {
	Name          string
	Document      string
	RG            string
	Email         string
	Phone         string
	BirthDate     *time.Time
	Sex           string
	MaritalStatus string
	Occupation    string
	Insurance     string
	InsuranceCard string

	Address          Address
	EmergencyContact EmergencyContact
	Guardian         *Guardian

	RecordNumber string
	ReferredBy   string
	Notes        string
}

type UpdateRequest struct {
	Name          *string
	Document      *string
	RG            *string
	Email         *string
	Phone         *string
	BirthDate     *time.Time
	Sex           *string
	MaritalStatus *string
	Occupation    *string
	Insurance     *string
	InsuranceCard *string

	Address          *Address
	EmergencyContact *EmergencyContact
	Guardian         *Guardian

	RecordNumber *string
	ReferredBy   *string
	Notes        *string
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if doc := strings.TrimSpace(req.Document); doc != "" {
		taken, err := s.repo.DocumentExists(ctx, doc, nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateDocument
		}
	}

	created, err := s.repo.Insert(ctx, &Patient{
		Name:             name,
		Document:         strings.TrimSpace(req.Document),
		RG:               req.RG,
		Email:            req.Email,
		Phone:            req.Phone,
		BirthDate:        req.BirthDate,
		Sex:              req.Sex,
		MaritalStatus:    req.MaritalStatus,
		Occupation:       req.Occupation,
		Insurance:        req.Insurance,
		InsuranceCard:    req.InsuranceCard,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Guardian:         req.Guardian,
		RecordNumber:     req.RecordNumber,
		ReferredBy:       req.ReferredBy,
		Notes:            req.Notes,
		Status:           StatusActive,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("patient_id", created.ID.String()).Msg("patient registered")
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		p.Name = name
	}
	if req.Document != nil {
		doc := strings.TrimSpace(*req.Document)
		if doc != "" && doc != p.Document {
			taken, err := s.repo.DocumentExists(ctx, doc, &id)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, ErrDuplicateDocument
			}
		}
		p.Document = doc
	}
	if req.RG != nil {
		p.RG = *req.RG
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.Sex != nil {
		p.Sex = *req.Sex
	}
	if req.MaritalStatus != nil {
		p.MaritalStatus = *req.MaritalStatus
	}
	if req.Occupation != nil {
		p.Occupation = *req.Occupation
	}
	if req.Insurance != nil {
		p.Insurance = *req.Insurance
	}
	if req.InsuranceCard != nil {
		p.InsuranceCard = *req.InsuranceCard
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		p.EmergencyContact = *req.EmergencyContact
	}
	if req.Guardian != nil {
		p.Guardian = req.Guardian
	}
	if req.RecordNumber != nil {
		p.RecordNumber = *req.RecordNumber
	}
	if req.ReferredBy != nil {
		p.ReferredBy = *req.ReferredBy
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info().Str("patient_id", id.String()).Str("status", string(status)).Msg("patient status changed")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByDocument(ctx context.Context, document string) (*Patient, error) {
	return s.repo.GetByDocument(ctx, strings.TrimSpace(document))
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListPaged(ctx context.Context, page, size int) (*Page, error) {
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	if page < 0 {
		page = 0
	}
	return s.repo.ListPaged(ctx, size, page*size)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]Patient, error) {
	return s.repo.SearchByName(ctx, strings.TrimSpace(name))
}

// SaveAnamnesis creates or replaces the patient's intake questionnaire,
// preserving the original fill date on re-submission.
func (s *Service) SaveAnamnesis(ctx context.Context, id uuid.UUID, a Anamnesis) (*Anamnesis, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if p.Anamnesis != nil {
		a.FilledAt = p.Anamnesis.FilledAt
	} else {
		a.FilledAt = now
	}
	a.UpdatedAt = now

	if err := s.repo.SaveAnamnesis(ctx, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) GetAnamnesis(ctx context.Context, id uuid.UUID) (*Anamnesis, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Anamnesis == nil {
		return nil, ErrNoAnamnesis
	}
	return p.Anamnesis, nil
}
