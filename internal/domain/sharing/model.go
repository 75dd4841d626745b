package sharing

import (
	"time"

	"github.com/google/uuid"
)

// Purposes a facility can request records for.
const (
	PurposePrenatal      = "prenatal"
	PurposeEmergency     = "emergency"
	PurposeReferral      = "referral"
	PurposeSecondOpinion = "second-opinion"
	PurposeSpecialist    = "specialist"
)

var validPurposes = map[string]bool{
	PurposePrenatal:      true,
	PurposeEmergency:     true,
	PurposeReferral:      true,
	PurposeSecondOpinion: true,
	PurposeSpecialist:    true,
}

// Access levels describing who at the facility may view the records.
const (
	AccessAttendingOnly   = "attending-only"
	AccessMedicalTeam     = "medical-team"
	AccessAuthorizedStaff = "authorized-staff"
)

var validAccessLevels = map[string]bool{
	AccessAttendingOnly:   true,
	AccessMedicalTeam:     true,
	AccessAuthorizedStaff: true,
}

// Grant durations.
const (
	DurationSingleVisit  = "single-visit"
	Duration7Days        = "7-days"
	Duration30Days       = "30-days"
	DurationPregnancy    = "pregnancy-duration"
	DurationUntilRevoked = "until-revoked"
)

var validDurations = map[string]bool{
	DurationSingleVisit:  true,
	Duration7Days:        true,
	Duration30Days:       true,
	DurationPregnancy:    true,
	DurationUntilRevoked: true,
}

// Shareable record types, matching the records domain labels.
var validRecordTypes = map[string]bool{
	"prenatal": true,
	"lab":      true,
	"vaccines": true,
}

// Request statuses. Approved and declined are terminal; revoked ends an
// approved until-revoked grant.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDeclined = "declined"
	StatusRevoked  = "revoked"
)

// Consent methods.
const (
	ConsentESignature = "esignature"
	ConsentBiometric  = "biometric"
)

var validConsentMethods = map[string]bool{
	ConsentESignature: true,
	ConsentBiometric:  true,
}

// Request maps to the sharing_request table.
type Request struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	FacilityName   string     `db:"facility_name" json:"facility_name"`
	Purpose        string     `db:"purpose" json:"purpose"`
	RecordTypes    []string   `db:"record_types" json:"record_types"`
	AccessLevel    string     `db:"access_level" json:"access_level"`
	Duration       string     `db:"duration" json:"duration"`
	Status         string     `db:"status" json:"status"`
	ConsentMethod  *string    `db:"consent_method" json:"consent_method,omitempty"`
	ConsentMessage string     `db:"consent_message" json:"consent_message"`
	Urgent         bool       `db:"urgent" json:"urgent"`
	RequestedAt    time.Time  `db:"requested_at" json:"requested_at"`
	DecidedAt      *time.Time `db:"decided_at" json:"decided_at,omitempty"`
	ExpiresAt      *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// expiryFor computes when an approved grant lapses. Nil means the grant
// has no calendar expiry (single visits end with the visit, until-revoked
// and pregnancy-duration grants end by event).
func expiryFor(duration string, decidedAt time.Time) *time.Time {
	var d time.Duration
	switch duration {
	case Duration7Days:
		d = 7 * 24 * time.Hour
	case Duration30Days:
		d = 30 * 24 * time.Hour
	default:
		return nil
	}
	t := decidedAt.Add(d)
	return &t
}
