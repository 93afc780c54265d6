package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(s)) {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(strings.ToLower(s)), nil
	}
	return "", ErrUnknownStatus
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var (
	ErrUnknownStatus  = errors.New("unknown appointment status")
	ErrTerminalStatus = errors.New("appointment status can no longer change")
)

// ValidateTransition enforces the appointment status lifecycle. Terminal
// statuses reject everything; all other transitions are allowed.
func ValidateTransition(current, next Status) error {
	if current.Terminal() {
		return ErrTerminalStatus
	}
	return nil
}

// PatientRef identifies the patient side of a booking: either a registered
// patient by id, whose name is resolved from the registry, or a walk-in
// known only by name.
type PatientRef struct {
	id   uuid.UUID
	name string
}

func RegisteredPatient(id uuid.UUID) PatientRef {
	return PatientRef{id: id}
}

func WalkIn(name string) PatientRef {
	return PatientRef{name: strings.TrimSpace(name)}
}

// Registered returns the patient id and true for registered patients.
func (r PatientRef) Registered() (uuid.UUID, bool) {
	return r.id, r.id != uuid.Nil
}

// WalkInName returns the trimmed walk-in name; empty for registered patients.
func (r PatientRef) WalkInName() string {
	if r.id != uuid.Nil {
		return ""
	}
	return r.name
}

type Appointment struct {
	ID           uuid.UUID
	PatientID    *uuid.UUID
	PatientName  string
	DentistID    uuid.UUID
	DentistName  string
	StartsAt     time.Time
	Status       Status
	Notes        string
	Phone        string
	Email        string
	RegisteredAt time.Time
}

// NextSlot is the next event on a dentist's calendar: either the earliest
// upcoming booking, or the first open business slot when nothing is booked.
type NextSlot struct {
	StartsAt    time.Time
	DentistName string
	PatientName string
}

// OpenSlotLabel is the patient label used when the returned slot is free.
const OpenSlotLabel = "Available"
