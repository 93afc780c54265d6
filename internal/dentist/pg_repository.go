package dentist

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

const dentistColumns = `id, name, cro, specialty, phone, email, active, created_at, updated_at`

func scanDentist(row pgx.Row) (*Dentist, error) {
	var d Dentist
	var cro, specialty, phone, email *string

	err := row.Scan(
		&d.ID,
		&d.Name,
		&cro,
		&specialty,
		&phone,
		&email,
		&d.Active,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d.CRO = deref(cro)
	d.Specialty = deref(specialty)
	d.Phone = deref(phone)
	d.Email = deref(email)
	return &d, nil
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

func collectDentists(rows pgx.Rows) ([]Dentist, error) {
	defer rows.Close()

	var result []Dentist
	for rows.Next() {
		d, err := scanDentist(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) Insert(ctx context.Context, d *Dentist) (*Dentist, error) {
	id := uuid.New()

	row := r.db.QueryRow(ctx, `
		INSERT INTO dentists (id, name, cro, specialty, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
		RETURNING `+dentistColumns+`
	`, id, d.Name, nullable(d.CRO), nullable(d.Specialty), nullable(d.Phone), nullable(d.Email))

	created, err := scanDentist(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateCRO
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) Update(ctx context.Context, d *Dentist) (*Dentist, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE dentists
		SET name = $2,
		    cro = $3,
		    specialty = $4,
		    phone = $5,
		    email = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+dentistColumns+`
	`, d.ID, d.Name, nullable(d.CRO), nullable(d.Specialty), nullable(d.Phone), nullable(d.Email))

	updated, err := scanDentist(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateCRO
		}
		return nil, err
	}
	return updated, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM dentists
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete dentist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE dentists
		SET active = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, active)
	if err != nil {
		return fmt.Errorf("set dentist active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+dentistColumns+`
		FROM dentists
		WHERE id = $1
	`, id)
	return scanDentist(row)
}

func (r *PgRepository) List(ctx context.Context) ([]Dentist, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+dentistColumns+`
		FROM dentists
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectDentists(rows)
}

func (r *PgRepository) ListActive(ctx context.Context) ([]Dentist, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+dentistColumns+`
		FROM dentists
		WHERE active
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectDentists(rows)
}

func (r *PgRepository) CROExists(ctx context.Context, cro string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error

	if excludeID != nil {
		err = r.db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM dentists WHERE cro = $1 AND id <> $2
			)
		`, cro, *excludeID).Scan(&exists)
	} else {
		err = r.db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM dentists WHERE cro = $1
			)
		`, cro).Scan(&exists)
	}

	if err != nil {
		return false, fmt.Errorf("check cro: %w", err)
	}
	return exists, nil
}
