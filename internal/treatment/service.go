package treatment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrProcedureRequired = errors.New("procedure is required")

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

type CreateRequest struct {
	Tooth      string
	Procedure  string
	Value      float64
	TotalValue float64
	Notes      string
}

type UpdateRequest struct {
	Tooth      *string
	Procedure  *string
	Value      *float64
	TotalValue *float64
	Notes      *string
}

func (s *Service) Create(ctx context.Context, patientID uuid.UUID, req CreateRequest) (*Plan, error) {
	procedure := strings.TrimSpace(req.Procedure)
	if procedure == "" {
		return nil, ErrProcedureRequired
	}

	tooth := Tooth(strings.TrimSpace(req.Tooth))
	if tooth != "" && !tooth.Valid() {
		return nil, ErrInvalidTooth
	}

	if _, err := s.repo.PatientName(ctx, patientID); err != nil {
		return nil, err
	}

	total := req.TotalValue
	if total == 0 {
		total = req.Value
	}

	created, err := s.repo.Insert(ctx, &Plan{
		PatientID:  patientID,
		Tooth:      tooth,
		Procedure:  procedure,
		Value:      req.Value,
		TotalValue: total,
		Notes:      req.Notes,
		Status:     StatusBudget,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("plan_id", created.ID.String()).
		Str("patient_id", patientID.String()).
		Str("procedure", created.Procedure).
		Msg("treatment plan created")
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.Editable() {
		return nil, ErrNotEditable
	}

	if req.Tooth != nil {
		tooth := Tooth(strings.TrimSpace(*req.Tooth))
		if tooth != "" && !tooth.Valid() {
			return nil, ErrInvalidTooth
		}
		p.Tooth = tooth
	}
	if req.Procedure != nil {
		procedure := strings.TrimSpace(*req.Procedure)
		if procedure == "" {
			return nil, ErrProcedureRequired
		}
		p.Procedure = procedure
	}
	if req.Value != nil {
		p.Value = *req.Value
	}
	if req.TotalValue != nil {
		p.TotalValue = *req.TotalValue
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Plan, error) {
	if _, err := s.repo.PatientName(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListActive(ctx context.Context) ([]Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) SearchByProcedure(ctx context.Context, procedure string) ([]Plan, error) {
	return s.repo.SearchByProcedure(ctx, procedure)
}

// PatientSummary returns the patient's plans together with the grand
// total of their budgeted values.
func (s *Service) PatientSummary(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	plans, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, p := range plans {
		total += p.TotalValue
	}

	return &Summary{PatientID: patientID, Plans: plans, GrandTotal: total}, nil
}

// UpdateStatus moves the plan through the lifecycle guard and applies
// the status side effects: entering active stamps StartedAt the first
// time only, completed stamps CompletedAt, cancelled stamps CancelledAt
// and records the reason.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next Status, reason string) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(p.Status, next); err != nil {
		return nil, err
	}

	now := time.Now()
	switch next {
	case StatusActive:
		if p.StartedAt == nil {
			p.StartedAt = &now
		}
	case StatusCompleted:
		p.CompletedAt = &now
	case StatusCancelled:
		if strings.TrimSpace(reason) == "" {
			return nil, ErrReasonRequired
		}
		p.CancelledAt = &now
		p.CancelReason = strings.TrimSpace(reason)
	}
	p.Status = next

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("plan_id", id.String()).
		Str("status", string(next)).
		Msg("treatment plan status updated")
	return updated, nil
}

func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return s.UpdateStatus(ctx, id, StatusActive, "")
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Plan, error) {
	return s.UpdateStatus(ctx, id, StatusCompleted, "")
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Plan, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled, reason)
}
