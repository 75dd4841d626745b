package clinics

import (
	"time"

	"github.com/google/uuid"
)

// Clinic maps to the clinic table. Code is the short identifier (c1, c2)
// used by booking calendars.
type Clinic struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Phone     string    `db:"phone" json:"phone"`
	Hours     string    `db:"hours" json:"hours"`
	Open24h   bool      `db:"open_24h" json:"open_24h"`
	Rating    float64   `db:"rating" json:"rating"`
	Services  []string  `db:"services" json:"services"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Doctor maps to the doctor table. Code is the short identifier (d1, d2)
// whose calendar takes precedence over the clinic's.
type Doctor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Specialty string    `db:"specialty" json:"specialty"`
	ClinicID  uuid.UUID `db:"clinic_id" json:"clinic_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AppointmentTypeForService maps a clinic service to the appointment type
// a booking for that service should carry.
func AppointmentTypeForService(service string) string {
	switch service {
	case "Prenatal Care":
		return "checkup"
	case "Laboratory":
		return "lab"
	case "Ultrasound":
		return "ultrasound"
	default:
		return "consultation"
	}
}
