package treatment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgRepository struct {
	db DB
}

func NewPgRepository(db DB) *PgRepository {
	return &PgRepository{db: db}
}

const planColumns = `
	tp.id, tp.patient_id, p.name, tp.tooth, tp.procedure, tp.value,
	tp.total_value, tp.notes, tp.status, tp.created_at, tp.updated_at,
	tp.started_at, tp.completed_at, tp.cancelled_at, tp.cancel_reason`

const planJoin = `
	FROM treatment_plans tp
	JOIN patients p ON p.id = tp.patient_id`

func scanPlan(row pgx.Row) (*Plan, error) {
	var pl Plan
	var tooth, notes, reason *string
	var status string

	err := row.Scan(
		&pl.ID,
		&pl.PatientID,
		&pl.PatientName,
		&tooth,
		&pl.Procedure,
		&pl.Value,
		&pl.TotalValue,
		&notes,
		&status,
		&pl.CreatedAt,
		&pl.UpdatedAt,
		&pl.StartedAt,
		&pl.CompletedAt,
		&pl.CancelledAt,
		&reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pl.Tooth = Tooth(deref(tooth))
	pl.Notes = deref(notes)
	pl.CancelReason = deref(reason)
	pl.Status = Status(status)
	return &pl, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func collectPlans(rows pgx.Rows) ([]Plan, error) {
	defer rows.Close()

	var result []Plan
	for rows.Next() {
		pl, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *pl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) PatientName(ctx context.Context, patientID uuid.UUID) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `
		SELECT name FROM patients WHERE id = $1
	`, patientID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrPatientNotFound
		}
		return "", fmt.Errorf("resolve patient: %w", err)
	}
	return name, nil
}

func (r *PgRepository) Insert(ctx context.Context, p *Plan) (*Plan, error) {
	id := uuid.New()

	_, err := r.db.Exec(ctx, `
		INSERT INTO treatment_plans
			(id, patient_id, tooth, procedure, value, total_value, notes,
			 status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
	`, id, p.PatientID, nullable(string(p.Tooth)), p.Procedure, p.Value,
		p.TotalValue, nullable(p.Notes), string(p.Status))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("insert treatment plan: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *PgRepository) Update(ctx context.Context, p *Plan) (*Plan, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE treatment_plans
		SET tooth = $2,
		    procedure = $3,
		    value = $4,
		    total_value = $5,
		    notes = $6,
		    status = $7,
		    started_at = $8,
		    completed_at = $9,
		    cancelled_at = $10,
		    cancel_reason = $11,
		    updated_at = now()
		WHERE id = $1
	`, p.ID, nullable(string(p.Tooth)), p.Procedure, p.Value, p.TotalValue,
		nullable(p.Notes), string(p.Status), p.StartedAt, p.CompletedAt,
		p.CancelledAt, nullable(p.CancelReason))
	if err != nil {
		return nil, fmt.Errorf("update treatment plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, p.ID)
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM treatment_plans
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete treatment plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+planColumns+planJoin+`
		WHERE tp.id = $1
	`, id)
	return scanPlan(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+planJoin+`
		WHERE tp.patient_id = $1
		ORDER BY tp.created_at DESC
	`, patientID)
	if err != nil {
		return nil, err
	}
	return collectPlans(rows)
}

func (r *PgRepository) ListActive(ctx context.Context) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+planJoin+`
		WHERE tp.status = 'active'
		ORDER BY tp.started_at ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectPlans(rows)
}

func (r *PgRepository) SearchByProcedure(ctx context.Context, procedure string) ([]Plan, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+planColumns+planJoin+`
		WHERE tp.procedure ILIKE '%' || $1 || '%'
		ORDER BY tp.created_at DESC
	`, procedure)
	if err != nil {
		return nil, err
	}
	return collectPlans(rows)
}
