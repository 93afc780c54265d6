package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/odontosys/clinic-api/internal/redis"
)

type fakeRepo struct {
	dentists map[uuid.UUID]string
	patients map[uuid.UUID]string
	appts    map[uuid.UUID]*Appointment

	conflictCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		dentists: make(map[uuid.UUID]string),
		patients: make(map[uuid.UUID]string),
		appts:    make(map[uuid.UUID]*Appointment),
	}
}

func (r *fakeRepo) GetDentist(ctx context.Context, id uuid.UUID) (*Directory, error) {
	name, ok := r.dentists[id]
	if !ok {
		return nil, ErrDentistNotFound
	}
	return &Directory{ID: id, Name: name}, nil
}

func (r *fakeRepo) GetPatient(ctx context.Context, id uuid.UUID) (*Directory, error) {
	name, ok := r.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &Directory{ID: id, Name: name}, nil
}

func (r *fakeRepo) HasConflict(ctx context.Context, dentistID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	r.conflictCalls++
	for _, a := range r.appts {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.DentistID == dentistID && a.StartsAt.Equal(at) && a.Status != StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Insert(ctx context.Context, a *Appointment) (*Appointment, error) {
	// Emulates the partial unique index on non-cancelled bookings.
	for _, other := range r.appts {
		if other.DentistID == a.DentistID && other.StartsAt.Equal(a.StartsAt) && other.Status != StatusCancelled {
			return nil, ErrSlotTaken
		}
	}
	stored := *a
	stored.ID = uuid.New()
	stored.RegisteredAt = time.Now()
	r.appts[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeRepo) Update(ctx context.Context, a *Appointment) (*Appointment, error) {
	if _, ok := r.appts[a.ID]; !ok {
		return nil, ErrNotFound
	}
	stored := *a
	r.appts[a.ID] = &stored
	out := stored
	return &out, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.Status = status
	out := *a
	return &out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.appts[id]; !ok {
		return ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]Appointment, error) {
	var result []Appointment
	for _, a := range r.appts {
		result = append(result, *a)
	}
	return result, nil
}

func (r *fakeRepo) ListByDentist(ctx context.Context, dentistID uuid.UUID) ([]Appointment, error) {
	var result []Appointment
	for _, a := range r.appts {
		if a.DentistID == dentistID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	var result []Appointment
	for _, a := range r.appts {
		if a.PatientID != nil && *a.PatientID == patientID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListByStatus(ctx context.Context, status Status) ([]Appointment, error) {
	var result []Appointment
	for _, a := range r.appts {
		if a.Status == status {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]Appointment, error) {
	var result []Appointment
	for _, a := range r.appts {
		if !a.StartsAt.Before(from) && !a.StartsAt.After(to) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *fakeRepo) BookedTimes(ctx context.Context, dentistID uuid.UUID, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var times []time.Time
	for _, a := range r.appts {
		if a.DentistID == dentistID && a.Status != StatusCancelled &&
			!a.StartsAt.Before(dayStart) && a.StartsAt.Before(dayEnd) {
			times = append(times, a.StartsAt)
		}
	}
	return times, nil
}

func (r *fakeRepo) EarliestAfter(ctx context.Context, dentistID uuid.UUID, after time.Time) (*Appointment, error) {
	var earliest *Appointment
	for _, a := range r.appts {
		if a.DentistID != dentistID || a.Status == StatusCancelled || !a.StartsAt.After(after) {
			continue
		}
		if earliest == nil || a.StartsAt.Before(earliest.StartsAt) {
			earliest = a
		}
	}
	if earliest == nil {
		return nil, ErrNotFound
	}
	out := *earliest
	return &out, nil
}

type fakeLocker struct {
	calls    int
	contened bool
}

func (l *fakeLocker) WithBookingLock(ctx context.Context, dentistID uuid.UUID, at time.Time, fn func(ctx context.Context) error) error {
	l.calls++
	if l.contened {
		return redisclient.ErrLockNotAcquired
	}
	return fn(ctx)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, &fakeLocker{}, DefaultHours(), nil, zerolog.Nop())
}

func seedDentist(r *fakeRepo, name string) uuid.UUID {
	id := uuid.New()
	r.dentists[id] = name
	return id
}

func seedPatient(r *fakeRepo, name string) uuid.UUID {
	id := uuid.New()
	r.patients[id] = name
	return id
}

func TestBookRegisteredPatient(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	patientID := seedPatient(repo, "Carlos Lima")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient:   RegisteredPatient(patientID),
		DentistID: dentistID,
		StartsAt:  date(2026, time.March, 4, 9, 0),
		Phone:     "11 99999-0000",
	})
	require.NoError(t, err)

	assert.Equal(t, "Carlos Lima", appt.PatientName)
	assert.Equal(t, "Dr. Helena Souza", appt.DentistName)
	assert.Equal(t, StatusScheduled, appt.Status)
	require.NotNil(t, appt.PatientID)
	assert.Equal(t, patientID, *appt.PatientID)
	assert.False(t, appt.RegisteredAt.IsZero())
}

func TestBookWalkIn(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient:   WalkIn("  Maria Alves  "),
		DentistID: dentistID,
		StartsAt:  date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	assert.Nil(t, appt.PatientID)
	assert.Equal(t, "Maria Alves", appt.PatientName)
}

func TestBookWalkInRequiresName(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient:   WalkIn("   "),
		DentistID: dentistID,
		StartsAt:  date(2026, time.March, 4, 9, 0),
	})
	assert.ErrorIs(t, err, ErrWalkInName)
}

func TestBookUnknownDentist(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient:   WalkIn("Maria Alves"),
		DentistID: uuid.New(),
		StartsAt:  date(2026, time.March, 4, 9, 0),
	})
	assert.ErrorIs(t, err, ErrDentistNotFound)
}

func TestBookUnknownPatient(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient:   RegisteredPatient(uuid.New()),
		DentistID: dentistID,
		StartsAt:  date(2026, time.March, 4, 9, 0),
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestBookRequiresStartTime(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient:   WalkIn("Maria Alves"),
		DentistID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrStartRequired)
}

func TestBookConflictsOnSameSlot(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)
	at := date(2026, time.March, 4, 9, 0)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: at,
	})
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Carlos Lima"), DentistID: dentistID, StartsAt: at,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBookAfterCancellationSucceeds(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)
	at := date(2026, time.March, 4, 9, 0)

	first, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: at,
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), first.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Carlos Lima"), DentistID: dentistID, StartsAt: at,
	})
	require.NoError(t, err)
}

func TestBookOtherDentistSameTime(t *testing.T) {
	repo := newFakeRepo()
	d1 := seedDentist(repo, "Dr. Helena Souza")
	d2 := seedDentist(repo, "Dr. Pedro Rocha")
	svc := newTestService(repo)
	at := date(2026, time.March, 4, 9, 0)

	_, err := svc.Book(context.Background(), BookRequest{Patient: WalkIn("A"), DentistID: d1, StartsAt: at})
	require.NoError(t, err)
	_, err = svc.Book(context.Background(), BookRequest{Patient: WalkIn("B"), DentistID: d2, StartsAt: at})
	require.NoError(t, err)
}

func TestBookLockContention(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := NewService(repo, &fakeLocker{contened: true}, DefaultHours(), nil, zerolog.Nop())

	_, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	assert.ErrorIs(t, err, ErrBookingContended)
}

func TestUpdateUnchangedSlotSkipsConflictCheck(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)
	repo.conflictCalls = 0

	notes := "bring previous x-rays"
	updated, err := svc.Update(context.Background(), appt.ID, UpdateRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "bring previous x-rays", updated.Notes)
	assert.Zero(t, repo.conflictCalls, "conflict validator must not run when dentist and time are unchanged")
}

func TestUpdateExplicitSameSlotSkipsConflictCheck(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)
	at := date(2026, time.March, 4, 9, 0)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: at,
	})
	require.NoError(t, err)
	repo.conflictCalls = 0

	// Same values passed explicitly still must not trigger the validator.
	_, err = svc.Update(context.Background(), appt.ID, UpdateRequest{DentistID: &dentistID, StartsAt: &at})
	require.NoError(t, err)
	assert.Zero(t, repo.conflictCalls)
}

func TestUpdateMoveToTakenSlot(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	_, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	second, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Carlos Lima"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 10, 0),
	})
	require.NoError(t, err)

	taken := date(2026, time.March, 4, 9, 0)
	_, err = svc.Update(context.Background(), second.ID, UpdateRequest{StartsAt: &taken})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUpdateMoveToFreeSlot(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	free := date(2026, time.March, 4, 11, 0)
	updated, err := svc.Update(context.Background(), appt.ID, UpdateRequest{StartsAt: &free})
	require.NoError(t, err)
	assert.True(t, updated.StartsAt.Equal(free))
}

func TestUpdateChangeDentistRefreshesName(t *testing.T) {
	repo := newFakeRepo()
	d1 := seedDentist(repo, "Dr. Helena Souza")
	d2 := seedDentist(repo, "Dr. Pedro Rocha")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: d1, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), appt.ID, UpdateRequest{DentistID: &d2})
	require.NoError(t, err)
	assert.Equal(t, d2, updated.DentistID)
	assert.Equal(t, "Dr. Pedro Rocha", updated.DentistName)
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	confirmed, err := svc.UpdateStatus(context.Background(), appt.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	completed, err := svc.UpdateStatus(context.Background(), appt.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, completed.Status)
}

func TestUpdateStatusTerminalStatesReject(t *testing.T) {
	for _, terminal := range []Status{StatusCompleted, StatusCancelled} {
		for _, next := range []Status{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled} {
			assert.ErrorIs(t, ValidateTransition(terminal, next), ErrTerminalStatus,
				"%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestUpdateStatusTerminalViaService(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), appt.ID, StatusScheduled)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestFreeSlots(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)
	day := date(2026, time.March, 4, 0, 0)

	booked, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 9, 0),
	})
	require.NoError(t, err)

	// A cancelled booking must not block its slot.
	cancelled, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Carlos Lima"), DentistID: dentistID, StartsAt: date(2026, time.March, 4, 10, 0),
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), cancelled.ID, StatusCancelled)
	require.NoError(t, err)
	_ = booked

	free, err := svc.FreeSlots(context.Background(), dentistID, day, 8*time.Hour, 12*time.Hour)
	require.NoError(t, err)

	want := []time.Time{
		date(2026, time.March, 4, 8, 0),
		date(2026, time.March, 4, 8, 30),
		date(2026, time.March, 4, 9, 30),
		date(2026, time.March, 4, 10, 0),
		date(2026, time.March, 4, 10, 30),
		date(2026, time.March, 4, 11, 0),
		date(2026, time.March, 4, 11, 30),
	}
	assert.Equal(t, want, free)
}

func TestFreeSlotsUnknownDentist(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.FreeSlots(context.Background(), uuid.New(), date(2026, time.March, 4, 0, 0), 8*time.Hour, 12*time.Hour)
	assert.ErrorIs(t, err, ErrDentistNotFound)
}

func TestNextSlotReturnsUpcomingBooking(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	booked := date(2026, time.March, 10, 14, 0)
	_, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: booked,
	})
	require.NoError(t, err)

	// Plenty of free slots exist before the booking; the booking still wins.
	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 0))
	require.NoError(t, err)

	assert.True(t, next.StartsAt.Equal(booked))
	assert.Equal(t, "Maria Alves", next.PatientName)
	assert.Equal(t, "Dr. Helena Souza", next.DentistName)
}

func TestNextSlotIgnoresCancelledBookings(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	appt, err := svc.Book(context.Background(), BookRequest{
		Patient: WalkIn("Maria Alves"), DentistID: dentistID, StartsAt: date(2026, time.March, 10, 14, 0),
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(context.Background(), appt.ID, StatusCancelled)
	require.NoError(t, err)

	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, OpenSlotLabel, next.PatientName)
}

func TestNextSlotFreeCalendar(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	// Tuesday -> Wednesday at opening.
	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 15))
	require.NoError(t, err)
	assert.True(t, next.StartsAt.Equal(date(2026, time.March, 4, 8, 0)))
	assert.Equal(t, OpenSlotLabel, next.PatientName)
	assert.Equal(t, "Dr. Helena Souza", next.DentistName)
}

func TestNextSlotFreeCalendarSkipsWeekend(t *testing.T) {
	repo := newFakeRepo()
	dentistID := seedDentist(repo, "Dr. Helena Souza")
	svc := newTestService(repo)

	// Friday -> Monday at opening.
	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 6, 16, 0))
	require.NoError(t, err)
	assert.True(t, next.StartsAt.Equal(date(2026, time.March, 9, 8, 0)))
}

// walkRepo forces the open-slot walk: no upcoming bookings, but candidate
// timestamps can be marked busy.
type walkRepo struct {
	*fakeRepo
	busy map[int64]bool
}

func (w *walkRepo) EarliestAfter(ctx context.Context, dentistID uuid.UUID, after time.Time) (*Appointment, error) {
	return nil, ErrNotFound
}

func (w *walkRepo) HasConflict(ctx context.Context, dentistID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	return w.busy[at.Unix()], nil
}

func TestNextSlotWalksPastBusyCandidates(t *testing.T) {
	base := newFakeRepo()
	dentistID := seedDentist(base, "Dr. Helena Souza")
	repo := &walkRepo{fakeRepo: base, busy: map[int64]bool{}}

	// Wednesday 08:00 and 09:00 are busy; 10:00 is free.
	repo.busy[date(2026, time.March, 4, 8, 0).Unix()] = true
	repo.busy[date(2026, time.March, 4, 9, 0).Unix()] = true

	svc := newTestService(repo)
	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 0))
	require.NoError(t, err)
	assert.True(t, next.StartsAt.Equal(date(2026, time.March, 4, 10, 0)))
}

func TestNextSlotRollsOverToNextDay(t *testing.T) {
	base := newFakeRepo()
	dentistID := seedDentist(base, "Dr. Helena Souza")
	repo := &walkRepo{fakeRepo: base, busy: map[int64]bool{}}

	// Every hourly candidate on Wednesday is busy up to the 17:30 cutoff.
	for _, hhmm := range [][2]int{{8, 0}, {9, 0}, {10, 0}, {11, 0}, {12, 0}, {13, 0}, {14, 0}, {15, 0}, {16, 0}, {17, 0}} {
		repo.busy[date(2026, time.March, 4, hhmm[0], hhmm[1]).Unix()] = true
	}

	svc := newTestService(repo)
	next, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 0))
	require.NoError(t, err)
	assert.True(t, next.StartsAt.Equal(date(2026, time.March, 5, 8, 0)))
}

type alwaysBusyRepo struct{ *fakeRepo }

func (alwaysBusyRepo) EarliestAfter(ctx context.Context, dentistID uuid.UUID, after time.Time) (*Appointment, error) {
	return nil, ErrNotFound
}

func (alwaysBusyRepo) HasConflict(ctx context.Context, dentistID uuid.UUID, at time.Time, excludeID *uuid.UUID) (bool, error) {
	return true, nil
}

func TestNextSlotHorizonCap(t *testing.T) {
	base := newFakeRepo()
	dentistID := seedDentist(base, "Dr. Helena Souza")
	svc := newTestService(alwaysBusyRepo{base})

	_, err := svc.NextSlot(context.Background(), dentistID, date(2026, time.March, 3, 9, 0))
	assert.ErrorIs(t, err, ErrCalendarFull)
}

func TestDeleteMissingAppointment(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
