package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/clinic-api/internal/appointment"
	"github.com/odontosys/clinic-api/internal/dentist"
	"github.com/odontosys/clinic-api/internal/patient"
	"github.com/odontosys/clinic-api/internal/treatment"
)

type CreateAppointmentRequest struct {
	PatientID   string    `json:"patient_id,omitempty"`
	PatientName string    `json:"patient_name,omitempty"`
	DentistID   string    `json:"dentist_id"`
	StartsAt    time.Time `json:"starts_at"`
	Notes       string    `json:"notes,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
}

type UpdateAppointmentRequest struct {
	PatientID   *string    `json:"patient_id,omitempty"`
	PatientName *string    `json:"patient_name,omitempty"`
	DentistID   *string    `json:"dentist_id,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type AvailabilityRequest struct {
	DentistID string `json:"dentist_id"`
	Date      string `json:"date"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
}

type AvailabilityResponse struct {
	DentistID string      `json:"dentist_id"`
	Date      string      `json:"date"`
	FreeSlots []time.Time `json:"free_slots"`
}

type AppointmentResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	PatientName  string     `json:"patient_name"`
	DentistID    uuid.UUID  `json:"dentist_id"`
	DentistName  string     `json:"dentist_name"`
	StartsAt     time.Time  `json:"starts_at"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		PatientID:    a.PatientID,
		PatientName:  a.PatientName,
		DentistID:    a.DentistID,
		DentistName:  a.DentistName,
		StartsAt:     a.StartsAt,
		Status:       string(a.Status),
		Notes:        a.Notes,
		Phone:        a.Phone,
		Email:        a.Email,
		RegisteredAt: a.RegisteredAt,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		result = append(result, toAppointmentResponse(&appts[i]))
	}
	return result
}

type NextSlotResponse struct {
	StartsAt    time.Time `json:"starts_at"`
	DentistName string    `json:"dentist_name"`
	PatientName string    `json:"patient_name"`
}

type DentistRequest struct {
	Name      string `json:"name"`
	CRO       string `json:"cro,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

type UpdateDentistRequest struct {
	Name      *string `json:"name,omitempty"`
	CRO       *string `json:"cro,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
}

type DentistResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CRO       string    `json:"cro,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDentistResponse(d *dentist.Dentist) DentistResponse {
	return DentistResponse{
		ID:        d.ID,
		Name:      d.Name,
		CRO:       d.CRO,
		Specialty: d.Specialty,
		Phone:     d.Phone,
		Email:     d.Email,
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func toDentistResponses(dentists []dentist.Dentist) []DentistResponse {
	result := make([]DentistResponse, 0, len(dentists))
	for i := range dentists {
		result = append(result, toDentistResponse(&dentists[i]))
	}
	return result
}

type PatientRequest struct {
	Name          string     `json:"name"`
	Document      string     `json:"document,omitempty"`
	RG            string     `json:"rg,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Sex           string     `json:"sex,omitempty"`
	MaritalStatus string     `json:"marital_status,omitempty"`
	Occupation    string     `json:"occupation,omitempty"`
	Insurance     string     `json:"insurance,omitempty"`
	InsuranceCard string     `json:"insurance_card,omitempty"`

	Address          patient.Address          `json:"address,omitempty"`
	EmergencyContact patient.EmergencyContact `json:"emergency_contact,omitempty"`
	Guardian         *patient.Guardian        `json:"guardian,omitempty"`

	RecordNumber string `json:"record_number,omitempty"`
	ReferredBy   string `json:"referred_by,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type UpdatePatientRequest struct {
	Name          *string    `json:"name,omitempty"`
	Document      *string    `json:"document,omitempty"`
	RG            *string    `json:"rg,omitempty"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Sex           *string    `json:"sex,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	Occupation    *string    `json:"occupation,omitempty"`
	Insurance     *string    `json:"insurance,omitempty"`
	InsuranceCard *string    `json:"insurance_card,omitempty"`

	Address          *patient.Address          `json:"address,omitempty"`
	EmergencyContact *patient.EmergencyContact `json:"emergency_contact,omitempty"`
	Guardian         *patient.Guardian         `json:"guardian,omitempty"`

	RecordNumber *string `json:"record_number,omitempty"`
	ReferredBy   *string `json:"referred_by,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

type PatientResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Document      string     `json:"document,omitempty"`
	RG            string     `json:"rg,omitempty"`
	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	BirthDate     *time.Time `json:"birth_date,omitempty"`
	Sex           string     `json:"sex,omitempty"`
	MaritalStatus string     `json:"marital_status,omitempty"`
	Occupation    string     `json:"occupation,omitempty"`
	Insurance     string     `json:"insurance,omitempty"`
	InsuranceCard string     `json:"insurance_card,omitempty"`

	Address          patient.Address          `json:"address"`
	EmergencyContact patient.EmergencyContact `json:"emergency_contact"`
	Guardian         *patient.Guardian        `json:"guardian,omitempty"`

	RecordNumber string    `json:"record_number,omitempty"`
	ReferredBy   string    `json:"referred_by,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:               p.ID,
		Name:             p.Name,
		Document:         p.Document,
		RG:               p.RG,
		Email:            p.Email,
		Phone:            p.Phone,
		BirthDate:        p.BirthDate,
		Sex:              p.Sex,
		MaritalStatus:    p.MaritalStatus,
		Occupation:       p.Occupation,
		Insurance:        p.Insurance,
		InsuranceCard:    p.InsuranceCard,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		Guardian:         p.Guardian,
		RecordNumber:     p.RecordNumber,
		ReferredBy:       p.ReferredBy,
		Notes:            p.Notes,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toPatientResponses(patients []patient.Patient) []PatientResponse {
	result := make([]PatientResponse, 0, len(patients))
	for i := range patients {
		result = append(result, toPatientResponse(&patients[i]))
	}
	return result
}

type PatientPageResponse struct {
	Items []PatientResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

type TreatmentPlanRequest struct {
	Tooth      string  `json:"tooth,omitempty"`
	Procedure  string  `json:"procedure"`
	Value      float64 `json:"value"`
	TotalValue float64 `json:"total_value,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

type UpdateTreatmentPlanRequest struct {
	Tooth      *string  `json:"tooth,omitempty"`
	Procedure  *string  `json:"procedure,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	TotalValue *float64 `json:"total_value,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

type CancelTreatmentPlanRequest struct {
	Reason string `json:"reason"`
}

type TreatmentPlanResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	PatientName  string     `json:"patient_name"`
	Tooth        string     `json:"tooth,omitempty"`
	Procedure    string     `json:"procedure"`
	Value        float64    `json:"value"`
	TotalValue   float64    `json:"total_value"`
	Notes        string     `json:"notes,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
}

func toTreatmentPlanResponse(p *treatment.Plan) TreatmentPlanResponse {
	return TreatmentPlanResponse{
		ID:           p.ID,
		PatientID:    p.PatientID,
		PatientName:  p.PatientName,
		Tooth:        string(p.Tooth),
		Procedure:    p.Procedure,
		Value:        p.Value,
		TotalValue:   p.TotalValue,
		Notes:        p.Notes,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		StartedAt:    p.StartedAt,
		CompletedAt:  p.CompletedAt,
		CancelledAt:  p.CancelledAt,
		CancelReason: p.CancelReason,
	}
}

func toTreatmentPlanResponses(plans []treatment.Plan) []TreatmentPlanResponse {
	result := make([]TreatmentPlanResponse, 0, len(plans))
	for i := range plans {
		result = append(result, toTreatmentPlanResponse(&plans[i]))
	}
	return result
}

type TreatmentSummaryResponse struct {
	PatientID  uuid.UUID               `json:"patient_id"`
	Plans      []TreatmentPlanResponse `json:"plans"`
	GrandTotal float64                 `json:"grand_total"`
}
