package records

import (
	"time"

	"github.com/google/uuid"
)

// Record type labels used by sharing consents and list filters.
const (
	TypePrenatal = "prenatal"
	TypeLab      = "lab"
	TypeVaccines = "vaccines"
)

// PrenatalRecord maps to the prenatal_record table, one row per visit.
type PrenatalRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	VisitDate       time.Time `db:"visit_date" json:"visit_date"`
	GestationalWeek int       `db:"gestational_week" json:"gestational_week"`
	WeightKG        *float64  `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodPressure   *string   `db:"blood_pressure" json:"blood_pressure,omitempty"`
	FetalHeartRate  *int      `db:"fetal_heart_rate" json:"fetal_heart_rate,omitempty"`
	FundalHeightCM  *float64  `db:"fundal_height_cm" json:"fundal_height_cm,omitempty"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	ProviderName    string    `db:"provider_name" json:"provider_name"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// LabValue is one measured component of a lab result.
type LabValue struct {
	Value     string `json:"value"`
	Unit      string `json:"unit,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// LabResult maps to the lab_result table. Values is stored as JSONB keyed
// by component name.
type LabResult struct {
	ID           uuid.UUID           `db:"id" json:"id"`
	UserID       uuid.UUID           `db:"user_id" json:"user_id"`
	TestName     string              `db:"test_name" json:"test_name"`
	TestDate     time.Time           `db:"test_date" json:"test_date"`
	Status       string              `db:"status" json:"status"`
	Values       map[string]LabValue `db:"values" json:"values"`
	ProviderName string              `db:"provider_name" json:"provider_name"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
}

// Vaccination maps to the vaccination table.
type Vaccination struct {
	ID             uuid.UUID `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Vaccine        string    `db:"vaccine" json:"vaccine"`
	DoseLabel      string    `db:"dose_label" json:"dose_label"`
	GivenDate      time.Time `db:"given_date" json:"given_date"`
	LotNumber      *string   `db:"lot_number" json:"lot_number,omitempty"`
	Site           *string   `db:"site" json:"site,omitempty"`
	AdministeredBy string    `db:"administered_by" json:"administered_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
