package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// SlotCatalog is the fixed set of bookable time-of-day labels, in display
// order. Mornings run 9 to 11 and afternoons 2 to 4, half-hour steps.
var SlotCatalog = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM",
	"2:00 PM", "2:30 PM", "3:00 PM", "3:30 PM", "4:00 PM",
}

var slotIndex = func() map[string]int {
	m := make(map[string]int, len(SlotCatalog))
	for i, s := range SlotCatalog {
		m[s] = i
	}
	return m
}()

// IsValidSlot reports whether label is a member of the catalog.
func IsValidSlot(label string) bool {
	_, ok := slotIndex[label]
	return ok
}

// Appointment types.
const (
	TypeCheckup      = "checkup"
	TypeUltrasound   = "ultrasound"
	TypeConsultation = "consultation"
	TypeLab          = "lab"
)

var validAppointmentTypes = map[string]bool{
	TypeCheckup:      true,
	TypeUltrasound:   true,
	TypeConsultation: true,
	TypeLab:          true,
}

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
	StatusCancelled = "cancelled"
)

var validAppointmentStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusMissed:    true,
	StatusCancelled: true,
}

// List filters for a user's appointments.
const (
	FilterAll      = "all"
	FilterUpcoming = "upcoming"
	FilterMissed   = "missed"
	FilterPast     = "past"
)

var validFilters = map[string]bool{
	FilterAll:      true,
	FilterUpcoming: true,
	FilterMissed:   true,
	FilterPast:     true,
}

// Appointment maps to the appointment table. DoctorCode and ClinicCode are
// the short provider identifiers used throughout the booking calendars.
type Appointment struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	DoctorCode string    `db:"doctor_code" json:"doctor_code,omitempty"`
	ClinicCode string    `db:"clinic_code" json:"clinic_code,omitempty"`
	Type       string    `db:"appointment_type" json:"type"`
	Title      string    `db:"title" json:"title"`
	Date       time.Time `db:"slot_date" json:"date"`
	Slot       string    `db:"slot_label" json:"slot"`
	Status     string    `db:"status" json:"status"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// OwnerCode returns the calendar the appointment books against. A doctor
// calendar wins over the clinic's when both are set.
func (a *Appointment) OwnerCode() string {
	if a.DoctorCode != "" {
		return a.DoctorCode
	}
	return a.ClinicCode
}

// BookingEntry maps to the booking_entry table, one row per reserved slot.
// The unique key (owner_code, slot_date, slot_label) is what makes
// reservation atomic.
type BookingEntry struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	OwnerCode     string     `db:"owner_code" json:"owner_code"`
	Date          time.Time  `db:"slot_date" json:"date"`
	Slot          string     `db:"slot_label" json:"slot"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// SlotAvailability pairs a catalog label with its availability on a date.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

// DateKey normalizes a timestamp to its calendar day. Booking calendars
// match on the exact day, never a range.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }

// sortByCatalog orders slot labels by their catalog position. Unknown
// labels sink to the end.
func sortByCatalog(slots []string) {
	sort.Slice(slots, func(i, j int) bool {
		ii, iok := slotIndex[slots[i]]
		ji, jok := slotIndex[slots[j]]
		if iok != jok {
			return iok
		}
		return ii < ji
	})
}
