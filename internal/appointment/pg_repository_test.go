package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PgRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgRepository(mock), mock
}

func TestHasConflictQueriesNonCancelled(t *testing.T) {
	repo, mock := newMockRepo(t)

	dentistID := uuid.New()
	at := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(dentistID, at).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	conflict, err := repo.HasConflict(context.Background(), dentistID, at, nil)
	require.NoError(t, err)
	assert.True(t, conflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasConflictExcludesRecordUnderUpdate(t *testing.T) {
	repo, mock := newMockRepo(t)

	dentistID := uuid.New()
	excludeID := uuid.New()
	at := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(dentistID, at, excludeID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	conflict, err := repo.HasConflict(context.Background(), dentistID, at, &excludeID)
	require.NoError(t, err)
	assert.False(t, conflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMapsUniqueViolationToSlotTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Insert(context.Background(), &Appointment{
		PatientName: "Maria Alves",
		DentistID:   uuid.New(),
		DentistName: "Dr. Helena Souza",
		StartsAt:    time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC),
		Status:      StatusScheduled,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM appointments`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectExec(`DELETE FROM appointments`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookedTimesScansAscending(t *testing.T) {
	repo, mock := newMockRepo(t)

	dentistID := uuid.New()
	dayStart := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	t1 := dayStart.Add(9 * time.Hour)
	t2 := dayStart.Add(10 * time.Hour)

	mock.ExpectQuery(`SELECT starts_at`).
		WithArgs(dentistID, dayStart, dayStart.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"starts_at"}).AddRow(t1).AddRow(t2))

	times, err := repo.BookedTimes(context.Background(), dentistID, dayStart, dayStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{t1, t2}, times)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDentistNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(`SELECT id, name`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetDentist(context.Background(), id)
	assert.ErrorIs(t, err, ErrDentistNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
