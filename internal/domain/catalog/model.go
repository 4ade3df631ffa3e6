package catalog

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSlots is served for doctors with no stored availability.
var DefaultSlots = []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"}

// Doctor is a catalog entry maintained by clinic staff. The API is
// read-only for patients.
type Doctor struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Speciality      string    `json:"speciality"`
	Image           string    `json:"image,omitempty"`
	AvailableSlots  []string  `json:"availableSlots,omitempty"`
	ConsultationFee float64   `json:"consultationFee,omitempty"`
	Rating          float64   `json:"rating,omitempty"`
	Experience      int       `json:"experience,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// MedicalTest is a bookable lab test.
type MedicalTest struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}
