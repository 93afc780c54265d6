package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/odontosys/clinic-api/internal/metrics"
	redisclient "github.com/odontosys/clinic-api/internal/redis"
)

var (
	ErrSlotTaken        = errors.New("slot already booked for this dentist")
	ErrBookingContended = errors.New("slot is currently being booked, please retry")
	ErrWalkInName       = errors.New("patient name is required when no patient id is given")
	ErrStartRequired    = errors.New("appointment start time is required")
	ErrCalendarFull     = errors.New("no open slot within the search horizon")
)

type Service struct {
	repo    Repository
	locker  redisclient.Locker
	hours   Hours
	metrics *metrics.Bookings
	logger  zerolog.Logger
}

func NewService(repo Repository, locker redisclient.Locker, hours Hours, m *metrics.Bookings, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		locker:  locker,
		hours:   hours,
		metrics: m,
		logger:  logger,
	}
}

type BookRequest struct {
	Patient   PatientRef
	DentistID uuid.UUID
	StartsAt  time.Time
	Notes     string
	Phone     string
	Email     string
}

type UpdateRequest struct {
	Patient   *PatientRef
	DentistID *uuid.UUID
	StartsAt  *time.Time
	Notes     *string
	Phone     *string
	Email     *string
}

// Book reserves (dentist, start time) for a patient. The conflict check and
// the insert run inside a per-slot Redis lock so concurrent requests for
// the same slot serialize; the partial unique index on non-cancelled
// appointments backstops the check at the store level.
func (s *Service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if req.StartsAt.IsZero() {
		return nil, ErrStartRequired
	}

	dentist, err := s.repo.GetDentist(ctx, req.DentistID)
	if err != nil {
		if errors.Is(err, ErrDentistNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load dentist: %w", err)
	}

	patientID, patientName, err := s.resolvePatient(ctx, req.Patient)
	if err != nil {
		return nil, err
	}

	var created *Appointment

	err = s.locker.WithBookingLock(ctx, req.DentistID, req.StartsAt, func(lockCtx context.Context) error {
		conflict, err := s.repo.HasConflict(lockCtx, req.DentistID, req.StartsAt, nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotTaken
		}

		appt := &Appointment{
			PatientID:   patientID,
			PatientName: patientName,
			DentistID:   req.DentistID,
			DentistName: dentist.Name,
			StartsAt:    req.StartsAt,
			Status:      StatusScheduled,
			Notes:       req.Notes,
			Phone:       req.Phone,
			Email:       req.Email,
		}

		created, err = s.repo.Insert(lockCtx, appt)
		if err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			s.metrics.ObserveConflict()
			return nil, ErrBookingContended
		}
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.ObserveConflict()
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.metrics.ObserveBooked()
	s.logger.Info().
		Str("appointment_id", created.ID.String()).
		Str("dentist_id", created.DentistID.String()).
		Time("starts_at", created.StartsAt).
		Msg("appointment booked")

	return created, nil
}

// Update changes appointment fields. Availability is re-validated only when
// the dentist or the start time actually changes, excluding the record
// itself so it never conflicts with its own slot.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dentistID := appt.DentistID
	if req.DentistID != nil {
		dentistID = *req.DentistID
	}
	startsAt := appt.StartsAt
	if req.StartsAt != nil {
		startsAt = *req.StartsAt
	}

	if dentistID != appt.DentistID || !startsAt.Equal(appt.StartsAt) {
		conflict, err := s.repo.HasConflict(ctx, dentistID, startsAt, &id)
		if err != nil {
			return nil, err
		}
		if conflict {
			s.metrics.ObserveConflict()
			return nil, ErrSlotTaken
		}
	}

	if req.DentistID != nil && *req.DentistID != appt.DentistID {
		dentist, err := s.repo.GetDentist(ctx, *req.DentistID)
		if err != nil {
			return nil, err
		}
		appt.DentistID = dentist.ID
		appt.DentistName = dentist.Name
	}
	appt.StartsAt = startsAt

	if req.Patient != nil {
		patientID, patientName, err := s.resolvePatient(ctx, *req.Patient)
		if err != nil {
			return nil, err
		}
		appt.PatientID = patientID
		appt.PatientName = patientName
	}

	if req.Notes != nil {
		appt.Notes = *req.Notes
	}
	if req.Phone != nil {
		appt.Phone = *req.Phone
	}
	if req.Email != nil {
		appt.Email = *req.Email
	}

	updated, err := s.repo.Update(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.logger.Info().Str("appointment_id", id.String()).Msg("appointment updated")
	return updated, nil
}

// UpdateStatus moves an appointment through its lifecycle. Completed and
// cancelled are terminal.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next Status) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(appt.Status, next); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	s.logger.Info().
		Str("appointment_id", id.String()).
		Str("from", string(appt.Status)).
		Str("to", string(next)).
		Msg("appointment status changed")

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("appointment_id", id.String()).Msg("appointment deleted")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDentist(ctx context.Context, dentistID uuid.UUID) ([]Appointment, error) {
	return s.repo.ListByDentist(ctx, dentistID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Appointment, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByPeriod(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	return s.repo.ListByPeriod(ctx, from, to)
}

// FreeSlots returns every open slot start for the dentist on the given
// date within [from, to), stepping by the configured slot interval.
func (s *Service) FreeSlots(ctx context.Context, dentistID uuid.UUID, date time.Time, from, to time.Duration) ([]time.Time, error) {
	if _, err := s.repo.GetDentist(ctx, dentistID); err != nil {
		return nil, err
	}

	dayStart := midnight(date)
	booked, err := s.repo.BookedTimes(ctx, dentistID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load booked times: %w", err)
	}

	grid := slotGrid(date, from, to, s.hours.SlotInterval)
	return subtractBooked(grid, booked), nil
}

// NextSlot finds the next event on the dentist's calendar: the earliest
// upcoming booking if one exists, otherwise the first open business slot
// strictly after now. The walk is capped at the configured horizon.
func (s *Service) NextSlot(ctx context.Context, dentistID uuid.UUID, now time.Time) (*NextSlot, error) {
	dentist, err := s.repo.GetDentist(ctx, dentistID)
	if err != nil {
		return nil, err
	}

	next, err := s.repo.EarliestAfter(ctx, dentistID, now)
	if err == nil {
		return &NextSlot{
			StartsAt:    next.StartsAt,
			DentistName: next.DentistName,
			PatientName: next.PatientName,
		}, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("load next appointment: %w", err)
	}

	candidate := s.hours.firstCandidate(now)
	horizon := s.hours.horizon(now)

	for {
		conflict, err := s.repo.HasConflict(ctx, dentistID, candidate, nil)
		if err != nil {
			return nil, err
		}
		if !conflict {
			return &NextSlot{
				StartsAt:    candidate,
				DentistName: dentist.Name,
				PatientName: OpenSlotLabel,
			}, nil
		}

		candidate = s.hours.advance(candidate)
		if candidate.After(horizon) {
			return nil, ErrCalendarFull
		}
	}
}

// resolvePatient enforces that the patient name is always resolvable:
// registered patients get their registry name, walk-ins must carry one.
func (s *Service) resolvePatient(ctx context.Context, ref PatientRef) (*uuid.UUID, string, error) {
	if id, ok := ref.Registered(); ok {
		p, err := s.repo.GetPatient(ctx, id)
		if err != nil {
			if errors.Is(err, ErrPatientNotFound) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("load patient: %w", err)
		}
		return &p.ID, p.Name, nil
	}

	name := ref.WalkInName()
	if name == "" {
		return nil, "", ErrWalkInName
	}
	return nil, name, nil
}
