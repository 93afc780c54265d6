package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

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

const patientColumns = `id, name, document, rg, email, phone, birth_date, sex, marital_status,
	occupation, insurance, insurance_card, address, emergency_contact, guardian, anamnesis,
	record_number, referred_by, notes, status, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var document, rg, email, phone, sex, marital, occupation *string
	var insurance, insuranceCard, recordNumber, referredBy, notes *string
	var birthDate *time.Time

	err := row.Scan(
		&p.ID,
		&p.Name,
		&document,
		&rg,
		&email,
		&phone,
		&birthDate,
		&sex,
		&marital,
		&occupation,
		&insurance,
		&insuranceCard,
		&p.Address,
		&p.EmergencyContact,
		&p.Guardian,
		&p.Anamnesis,
		&recordNumber,
		&referredBy,
		&notes,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Document = deref(document)
	p.RG = deref(rg)
	p.Email = deref(email)
	p.Phone = deref(phone)
	p.BirthDate = birthDate
	p.Sex = deref(sex)
	p.MaritalStatus = deref(marital)
	p.Occupation = deref(occupation)
	p.Insurance = deref(insurance)
	p.InsuranceCard = deref(insuranceCard)
	p.RecordNumber = deref(recordNumber)
	p.ReferredBy = deref(referredBy)
	p.Notes = deref(notes)
	return &p, nil
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

func collectPatients(rows pgx.Rows) ([]Patient, error) {
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PgRepository) Insert(ctx context.Context, p *Patient) (*Patient, error) {
	id := uuid.New()

	row := r.db.QueryRow(ctx, `
		INSERT INTO patients (id, name, document, rg, email, phone, birth_date, sex, marital_status,
			occupation, insurance, insurance_card, address, emergency_contact, guardian, anamnesis,
			record_number, referred_by, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, now(), now())
		RETURNING `+patientColumns+`
	`, id, p.Name, nullable(p.Document), nullable(p.RG), nullable(p.Email), nullable(p.Phone),
		p.BirthDate, nullable(p.Sex), nullable(p.MaritalStatus), nullable(p.Occupation),
		nullable(p.Insurance), nullable(p.InsuranceCard), p.Address, p.EmergencyContact,
		p.Guardian, p.Anamnesis, nullable(p.RecordNumber), nullable(p.ReferredBy),
		nullable(p.Notes), p.Status)

	created, err := scanPatient(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDocument
		}
		return nil, err
	}
	return created, nil
}

func (r *PgRepository) Update(ctx context.Context, p *Patient) (*Patient, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE patients
		SET name = $2,
		    document = $3,
		    rg = $4,
		    email = $5,
		    phone = $6,
		    birth_date = $7,
		    sex = $8,
		    marital_status = $9,
		    occupation = $10,
		    insurance = $11,
		    insurance_card = $12,
		    address = $13,
		    emergency_contact = $14,
		    guardian = $15,
		    record_number = $16,
		    referred_by = $17,
		    notes = $18,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+patientColumns+`
	`, p.ID, p.Name, nullable(p.Document), nullable(p.RG), nullable(p.Email), nullable(p.Phone),
		p.BirthDate, nullable(p.Sex), nullable(p.MaritalStatus), nullable(p.Occupation),
		nullable(p.Insurance), nullable(p.InsuranceCard), p.Address, p.EmergencyContact,
		p.Guardian, nullable(p.RecordNumber), nullable(p.ReferredBy), nullable(p.Notes))

	updated, err := scanPatient(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateDocument
		}
		return nil, err
	}
	return updated, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM patients
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE patients
		SET status = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("set patient status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) SaveAnamnesis(ctx context.Context, id uuid.UUID, a *Anamnesis) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE patients
		SET anamnesis = $2,
		    updated_at = now()
		WHERE id = $1
	`, id, a)
	if err != nil {
		return fmt.Errorf("save anamnesis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) GetByDocument(ctx context.Context, document string) (*Patient, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE document = $1
	`, document)
	return scanPatient(row)
}

func (r *PgRepository) List(ctx context.Context) ([]Patient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectPatients(rows)
}

func (r *PgRepository) ListPaged(ctx context.Context, limit, offset int) (*Page, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM patients`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}

	items, err := collectPatients(rows)
	if err != nil {
		return nil, err
	}

	return &Page{Items: items, Total: total}, nil
}

func (r *PgRepository) SearchByName(ctx context.Context, name string) ([]Patient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+patientColumns+`
		FROM patients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, name)
	if err != nil {
		return nil, err
	}
	return collectPatients(rows)
}

func (r *PgRepository) DocumentExists(ctx context.Context, document string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error

	if excludeID != nil {
		err = r.db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM patients WHERE document = $1 AND id <> $2
			)
		`, document, *excludeID).Scan(&exists)
	} else {
		err = r.db.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM patients WHERE document = $1
			)
		`, document).Scan(&exists)
	}

	if err != nil {
		return false, fmt.Errorf("check document: %w", err)
	}
	return exists, nil
}
