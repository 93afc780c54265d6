package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/odontosys/clinic-api/internal/appointment"
	"github.com/odontosys/clinic-api/internal/dentist"
	"github.com/odontosys/clinic-api/internal/metrics"
	"github.com/odontosys/clinic-api/internal/patient"
	"github.com/odontosys/clinic-api/internal/treatment"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Dentists     *dentist.Service
	Patients     *patient.Service
	Treatments   *treatment.Service

	Hours appointment.Hours

	PgPool *pgxpool.Pool
	Redis  *redis.Client

	Logger      zerolog.Logger
	HTTPMetrics *metrics.HTTP

	Env     string
	Version string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger, cfg.HTTPMetrics))

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Appointment endpoints
	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", createAppointmentHandler(cfg.Appointments))
		r.Get("/", listAppointmentsHandler(cfg.Appointments))
		r.Post("/availability", availabilityHandler(cfg.Appointments, cfg.Hours))
		r.Get("/period", listAppointmentsByPeriodHandler(cfg.Appointments))
		r.Get("/status/{status}", listAppointmentsByStatusHandler(cfg.Appointments))
		r.Get("/dentist/{dentistID}", listAppointmentsByDentistHandler(cfg.Appointments))
		r.Get("/dentist/{dentistID}/next-slot", nextSlotHandler(cfg.Appointments))
		r.Get("/patient/{patientID}", listAppointmentsByPatientHandler(cfg.Appointments))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Put("/{id}", updateAppointmentHandler(cfg.Appointments))
		r.Patch("/{id}/status", updateAppointmentStatusHandler(cfg.Appointments))
		r.Delete("/{id}", deleteAppointmentHandler(cfg.Appointments))
	})

	// Dentist endpoints
	r.Route("/dentists", func(r chi.Router) {
		r.Post("/", createDentistHandler(cfg.Dentists))
		r.Get("/", listDentistsHandler(cfg.Dentists))
		r.Get("/active", listActiveDentistsHandler(cfg.Dentists))
		r.Get("/{id}", getDentistHandler(cfg.Dentists))
		r.Put("/{id}", updateDentistHandler(cfg.Dentists))
		r.Delete("/{id}", deleteDentistHandler(cfg.Dentists))
		r.Patch("/{id}/deactivate", deactivateDentistHandler(cfg.Dentists))
	})

	// Patient endpoints, including nested treatment plans
	r.Route("/patients", func(r chi.Router) {
		r.Post("/", createPatientHandler(cfg.Patients))
		r.Get("/", listPatientsHandler(cfg.Patients))
		r.Get("/search", searchPatientsHandler(cfg.Patients))
		r.Get("/paged", listPatientsPagedHandler(cfg.Patients))
		r.Get("/document/{document}", getPatientByDocumentHandler(cfg.Patients))
		r.Get("/{id}", getPatientHandler(cfg.Patients))
		r.Put("/{id}", updatePatientHandler(cfg.Patients))
		r.Delete("/{id}", deletePatientHandler(cfg.Patients))
		r.Patch("/{id}/status", updatePatientStatusHandler(cfg.Patients))

		r.Post("/{id}/anamnesis", saveAnamnesisHandler(cfg.Patients))
		r.Put("/{id}/anamnesis", saveAnamnesisHandler(cfg.Patients))
		r.Get("/{id}/anamnesis", getAnamnesisHandler(cfg.Patients))

		r.Post("/{id}/treatment-plans", createTreatmentPlanHandler(cfg.Treatments))
		r.Get("/{id}/treatment-plans", listTreatmentPlansByPatientHandler(cfg.Treatments))
		r.Get("/{id}/treatment-plans/summary", treatmentSummaryHandler(cfg.Treatments))
	})

	// Treatment plan endpoints
	r.Route("/treatment-plans", func(r chi.Router) {
		r.Get("/", listTreatmentPlansHandler(cfg.Treatments))
		r.Get("/active", listActiveTreatmentPlansHandler(cfg.Treatments))
		r.Get("/{id}", getTreatmentPlanHandler(cfg.Treatments))
		r.Put("/{id}", updateTreatmentPlanHandler(cfg.Treatments))
		r.Delete("/{id}", deleteTreatmentPlanHandler(cfg.Treatments))
		r.Patch("/{id}/status", updateTreatmentPlanStatusHandler(cfg.Treatments))
		r.Post("/{id}/activate", activateTreatmentPlanHandler(cfg.Treatments))
		r.Post("/{id}/complete", completeTreatmentPlanHandler(cfg.Treatments))
		r.Post("/{id}/cancel", cancelTreatmentPlanHandler(cfg.Treatments))
	})

	return r
}
