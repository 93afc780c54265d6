package treatment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle stage of a treatment plan, from the first
// budget handed to the patient through execution and closure.
type Status string

const (
	StatusBudget           Status = "budget"
	StatusAwaitingApproval Status = "awaiting_approval"
	StatusAwaitingStart    Status = "awaiting_start"
	StatusAwaitingPayment  Status = "awaiting_payment"
	StatusActive           Status = "active"
	StatusSuspended        Status = "suspended"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
)

var (
	ErrUnknownStatus  = errors.New("unknown treatment plan status")
	ErrTerminalStatus = errors.New("treatment plan is in a terminal status")
	ErrNotEditable    = errors.New("treatment plan cannot be edited in its current status")
	ErrInvalidTooth   = errors.New("invalid tooth code")
	ErrReasonRequired = errors.New("cancellation reason is required")
)

var statuses = map[Status]bool{
	StatusBudget:           true,
	StatusAwaitingApproval: true,
	StatusAwaitingStart:    true,
	StatusAwaitingPayment:  true,
	StatusActive:           true,
	StatusSuspended:        true,
	StatusCompleted:        true,
	StatusCancelled:        true,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !statuses[st] {
		return "", ErrUnknownStatus
	}
	return st, nil
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Editable reports whether the plan's clinical fields may still change.
// Once payment is pending or the plan is suspended the record is frozen
// except for status moves.
func (s Status) Editable() bool {
	switch s {
	case StatusBudget, StatusAwaitingApproval, StatusAwaitingStart, StatusActive:
		return true
	}
	return false
}

// ValidateTransition rejects any move out of a terminal status.
func ValidateTransition(current, next Status) error {
	if !statuses[next] {
		return ErrUnknownStatus
	}
	if current.Terminal() {
		return ErrTerminalStatus
	}
	return nil
}

// Tooth is an FDI two-digit tooth code: permanent 11-48, deciduous 51-85.
// The first digit is the quadrant, the second the position within it.
type Tooth string

func (t Tooth) Valid() bool {
	if len(t) != 2 {
		return false
	}
	q, p := t[0]-'0', t[1]-'0'
	if p < 1 {
		return false
	}
	switch {
	case q >= 1 && q <= 4:
		return p <= 8
	case q >= 5 && q <= 8:
		return p <= 5
	}
	return false
}

type Plan struct {
	ID           uuid.UUID
	PatientID    uuid.UUID
	PatientName  string
	Tooth        Tooth
	Procedure    string
	Value        float64
	TotalValue   float64
	Notes        string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// Summary aggregates a patient's plans with the grand total of their values.
type Summary struct {
	PatientID  uuid.UUID
	Plans      []Plan
	GrandTotal float64
}
