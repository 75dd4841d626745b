package identity

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the app_user table. The signup form collects the maternal
// intake fields alongside the account basics.
type User struct {
	ID                      uuid.UUID  `db:"id" json:"id"`
	FullName                string     `db:"full_name" json:"full_name"`
	Email                   string     `db:"email" json:"email"`
	Phone                   string     `db:"phone" json:"phone"`
	IDNumber                *string    `db:"id_number" json:"id_number,omitempty"`
	Address                 *string    `db:"address" json:"address,omitempty"`
	DateOfBirth             *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	NumberOfKids            int        `db:"number_of_kids" json:"number_of_kids"`
	YoungestChildDOB        *time.Time `db:"youngest_child_dob" json:"youngest_child_dob,omitempty"`
	HadPrenatalCheckup      bool       `db:"had_prenatal_checkup" json:"had_prenatal_checkup"`
	PreviousCheckupLocation *string    `db:"previous_checkup_location" json:"previous_checkup_location,omitempty"`
	HeightCM                *float64   `db:"height_cm" json:"height_cm,omitempty"`
	WeightKG                *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodType               *string    `db:"blood_type" json:"blood_type,omitempty"`
	PhoneVerified           bool       `db:"phone_verified" json:"phone_verified"`
	PasswordHash            string     `db:"password_hash" json:"-"`
	CreatedAt               time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

// PhoneVerification maps to the phone_verification table, one row per
// phone number. A verified row has its code cleared; codes are single-use.
type PhoneVerification struct {
	Phone     string    `db:"phone" json:"phone"`
	Code      string    `db:"code" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	Attempts  int       `db:"attempts" json:"attempts"`
	Verified  bool      `db:"verified" json:"verified"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MaxOTPAttempts is the number of wrong codes allowed before a new code
// must be requested.
const MaxOTPAttempts = 5
