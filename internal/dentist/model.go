package dentist

import (
	"time"

	"github.com/google/uuid"
)

// Dentist is a registry entry for a practitioner. CRO is the regional
// dental-council registration number and must be unique.
type Dentist struct {
	ID        uuid.UUID
	Name      string
	CRO       string
	Specialty string
	Phone     string
	Email     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
