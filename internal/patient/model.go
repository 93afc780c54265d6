package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(s)) {
	case StatusActive, StatusInactive:
		return Status(strings.ToLower(s)), true
	}
	return "", false
}

type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// Guardian is filled for minors and dependents.
type Guardian struct {
	Name     string `json:"name,omitempty"`
	RG       string `json:"rg,omitempty"`
	Document string `json:"document,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Anamnesis is the intake medical history questionnaire.
type Anamnesis struct {
	PreexistingConditions []string `json:"preexisting_conditions,omitempty"`
	Allergies             []string `json:"allergies,omitempty"`
	Medications           []string `json:"medications,omitempty"`

	Smoker           bool   `json:"smoker"`
	CigarettesPerDay int    `json:"cigarettes_per_day,omitempty"`
	YearsSmoking     int    `json:"years_smoking,omitempty"`
	DrinksAlcohol    bool   `json:"drinks_alcohol"`
	AlcoholFrequency string `json:"alcohol_frequency,omitempty"`

	SurgicalHistory bool   `json:"surgical_history"`
	SurgeryDetails  string `json:"surgery_details,omitempty"`

	HeartProblems       bool `json:"heart_problems"`
	KidneyProblems      bool `json:"kidney_problems"`
	LiverProblems       bool `json:"liver_problems"`
	RespiratoryProblems bool `json:"respiratory_problems"`
	Diabetes            bool `json:"diabetes"`
	Hypertension        bool `json:"hypertension"`
	ClottingProblems    bool `json:"clotting_problems"`

	ChiefComplaint string `json:"chief_complaint,omitempty"`
	CurrentIllness string `json:"current_illness,omitempty"`

	ClinicalExam *ClinicalExam `json:"clinical_exam,omitempty"`

	FilledAt  time.Time `json:"filled_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClinicalExam struct {
	Tongue          string `json:"tongue,omitempty"`
	Mucosa          string `json:"mucosa,omitempty"`
	Palate          string `json:"palate,omitempty"`
	Lips            string `json:"lips,omitempty"`
	Gums            string `json:"gums,omitempty"`
	Face            string `json:"face,omitempty"`
	LymphNodes      string `json:"lymph_nodes,omitempty"`
	SalivaryGlands  string `json:"salivary_glands,omitempty"`
	OcclusionChange bool   `json:"occlusion_change"`
	OcclusionNotes  string `json:"occlusion_notes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type Patient struct {
	ID   uuid.UUID
	Name string

	Document string // CPF, unique when present
	RG       string
	Email    string
	Phone    string

	BirthDate     *time.Time
	Sex           string
	MaritalStatus string
	Occupation    string

	Insurance     string
	InsuranceCard string

	Address          Address
	EmergencyContact EmergencyContact
	Guardian         *Guardian
	Anamnesis        *Anamnesis

	RecordNumber string
	ReferredBy   string
	Notes        string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Age in whole years at the reference time; zero when the birth date is
// unknown.
func (p *Patient) Age(at time.Time) int {
	if p.BirthDate == nil {
		return 0
	}
	years := at.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func (p *Patient) Minor(at time.Time) bool {
	return p.BirthDate != nil && p.Age(at) < 18
}
