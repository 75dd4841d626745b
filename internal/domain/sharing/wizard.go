package sharing

import (
	"fmt"
	"strings"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

// The consent wizard is a chain of step types: each step validates its own
// vocabulary and returns the next step, so a caller cannot reach the
// signature screen with a hole in the selection.

// WizardStart opens the wizard for a facility request.
type WizardStart struct {
	FacilityName string
	RecordTypes  []string
	Urgent       bool
}

// PurposeSelected is the wizard after a valid purpose was chosen.
type PurposeSelected struct {
	start   WizardStart
	purpose string
}

// AccessLevelSelected follows PurposeSelected.
type AccessLevelSelected struct {
	prev        PurposeSelected
	accessLevel string
}

// DurationSelected follows AccessLevelSelected.
type DurationSelected struct {
	prev     AccessLevelSelected
	duration string
}

// ReadyToSign holds a complete selection awaiting the consent signature.
type ReadyToSign struct {
	FacilityName string
	RecordTypes  []string
	Purpose      string
	AccessLevel  string
	Duration     string
	Urgent       bool
}

// Begin validates the request basics and opens the wizard.
func Begin(facilityName string, recordTypes []string, urgent bool) (WizardStart, error) {
	if strings.TrimSpace(facilityName) == "" {
		return WizardStart{}, apperr.Validation("facility name is required")
	}
	if len(recordTypes) == 0 {
		return WizardStart{}, apperr.Validation("select at least one record type")
	}
	for _, rt := range recordTypes {
		if !validRecordTypes[rt] {
			return WizardStart{}, apperr.Validation("unknown record type %q", rt)
		}
	}
	return WizardStart{FacilityName: facilityName, RecordTypes: recordTypes, Urgent: urgent}, nil
}

func (w WizardStart) SelectPurpose(purpose string) (PurposeSelected, error) {
	if !validPurposes[purpose] {
		return PurposeSelected{}, apperr.Validation("unknown purpose %q", purpose)
	}
	return PurposeSelected{start: w, purpose: purpose}, nil
}

func (p PurposeSelected) SelectAccessLevel(level string) (AccessLevelSelected, error) {
	if !validAccessLevels[level] {
		return AccessLevelSelected{}, apperr.Validation("unknown access level %q", level)
	}
	return AccessLevelSelected{prev: p, accessLevel: level}, nil
}

func (a AccessLevelSelected) SelectDuration(duration string) (DurationSelected, error) {
	if !validDurations[duration] {
		return DurationSelected{}, apperr.Validation("unknown duration %q", duration)
	}
	return DurationSelected{prev: a, duration: duration}, nil
}

func (d DurationSelected) Finish() ReadyToSign {
	return ReadyToSign{
		FacilityName: d.prev.prev.start.FacilityName,
		RecordTypes:  d.prev.prev.start.RecordTypes,
		Purpose:      d.prev.prev.purpose,
		AccessLevel:  d.prev.accessLevel,
		Duration:     d.duration,
		Urgent:       d.prev.prev.start.Urgent,
	}
}

var purposeLabels = map[string]string{
	PurposePrenatal:      "prenatal care",
	PurposeEmergency:     "emergency treatment",
	PurposeReferral:      "a referral",
	PurposeSecondOpinion: "a second opinion",
	PurposeSpecialist:    "specialist consultation",
}

var accessLabels = map[string]string{
	AccessAttendingOnly:   "your attending physician only",
	AccessMedicalTeam:     "the medical team treating you",
	AccessAuthorizedStaff: "authorized facility staff",
}

var durationLabels = map[string]string{
	DurationSingleVisit:  "this visit only",
	Duration7Days:        "7 days",
	Duration30Days:       "30 days",
	DurationPregnancy:    "the duration of your pregnancy",
	DurationUntilRevoked: "until you revoke it",
}

// ConsentText renders the message the user signs.
func (r ReadyToSign) ConsentText() string {
	return fmt.Sprintf(
		"I authorize %s to access my %s records for %s. Access is granted to %s for %s.",
		r.FacilityName,
		strings.Join(r.RecordTypes, ", "),
		purposeLabels[r.Purpose],
		accessLabels[r.AccessLevel],
		durationLabels[r.Duration],
	)
}
