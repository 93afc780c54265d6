package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontosys/clinic-api/internal/db"
	"github.com/odontosys/clinic-api/internal/patient"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	dentistIDs, err := seedDentists(context.Background(), pool, 12)
	if err != nil {
		log.Fatalf("seed dentists: %v", err)
	}
	patientIDs, err := seedPatients(context.Background(), pool, 300)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, dentistIDs, patientIDs, 500); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedDentists(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d dentists", count)

	specialties := []string{
		"General Dentistry",
		"Orthodontics",
		"Endodontics",
		"Periodontics",
		"Prosthodontics",
		"Oral Surgery",
		"Pediatric Dentistry",
		"Implantology",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		cro := gofakeit.RandomString([]string{"SP", "RJ", "MG", "RS"}) + "-" + gofakeit.DigitN(5)
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO dentists (id, name, cro, specialty, phone, email, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
		`, id, "Dr. "+gofakeit.Name(), cro, spec, gofakeit.Phone(), gofakeit.Email())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		birth := gofakeit.DateRange(
			time.Now().AddDate(-80, 0, 0),
			time.Now().AddDate(-5, 0, 0),
		)
		addr := patient.Address{
			Street:  gofakeit.Street(),
			Number:  gofakeit.DigitN(3),
			City:    gofakeit.City(),
			State:   gofakeit.StateAbr(),
			ZipCode: gofakeit.Zip(),
		}
		contact := patient.EmergencyContact{
			Name:         gofakeit.Name(),
			Phone:        gofakeit.Phone(),
			Relationship: gofakeit.RandomString([]string{"spouse", "parent", "sibling", "friend"}),
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (id, name, document, rg, email, phone, birth_date, sex,
				address, emergency_contact, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'active', now(), now())
		`, id, gofakeit.Name(), gofakeit.DigitN(11), gofakeit.DigitN(9),
			gofakeit.Email(), gofakeit.Phone(), birth,
			gofakeit.RandomString([]string{"F", "M"}), addr, contact)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, tx.Commit(ctx)
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, dentistIDs, patientIDs []uuid.UUID, count int) error {
	log.Printf("seeding %d appointments", count)

	statuses := []string{"scheduled", "scheduled", "confirmed", "completed", "cancelled"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Walk disjoint 30-minute slots per dentist so the partial unique
	// index never trips during seeding.
	slotCursor := make(map[uuid.UUID]time.Time, len(dentistIDs))
	opening := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(8 * time.Hour)

	for i := 0; i < count; i++ {
		dentistID := dentistIDs[gofakeit.Number(0, len(dentistIDs)-1)]
		patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]

		startsAt, ok := slotCursor[dentistID]
		if !ok {
			startsAt = opening
		}
		next := startsAt.Add(30 * time.Minute)
		if next.Hour() >= 17 {
			next = startsAt.AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(8 * time.Hour)
		}
		for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			next = next.AddDate(0, 0, 1)
		}
		slotCursor[dentistID] = next

		var dentistName, patientName string
		if err := tx.QueryRow(ctx, `SELECT name FROM dentists WHERE id = $1`, dentistID).Scan(&dentistName); err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, `SELECT name FROM patients WHERE id = $1`, patientID).Scan(&patientName); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, patient_id, patient_name, dentist_id, dentist_name,
				starts_at, status, phone, email, registered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		`, uuid.New(), patientID, patientName, dentistID, dentistName,
			startsAt, statuses[gofakeit.Number(0, len(statuses)-1)],
			gofakeit.Phone(), gofakeit.Email())
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
