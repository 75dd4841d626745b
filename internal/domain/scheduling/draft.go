package scheduling

import (
	"time"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

// DraftState enumerates the stages of the booking dialog.
type DraftState string

const (
	DraftClosed       DraftState = "closed"
	DraftDateSelected DraftState = "date_selected"
	DraftTimeSelected DraftState = "time_selected"
	DraftConfirmed    DraftState = "confirmed"
)

// Draft is an immutable in-progress booking selection. Each transition
// returns a new value; selecting a new date discards any slot chosen for
// the previous date so a stale time cannot ride along.
type Draft struct {
	State     DraftState
	OwnerCode string
	Date      time.Time
	Slot      string
}

// NewDraft opens a booking dialog against the given calendar owner.
func NewDraft(ownerCode string) Draft {
	return Draft{State: DraftClosed, OwnerCode: ownerCode}
}

// SelectDate picks a calendar day and clears any previously selected slot.
func (d Draft) SelectDate(date time.Time) Draft {
	return Draft{State: DraftDateSelected, OwnerCode: d.OwnerCode, Date: date}
}

// SelectSlot picks a time slot. A date must already be selected.
func (d Draft) SelectSlot(slot string) (Draft, error) {
	if d.State != DraftDateSelected && d.State != DraftTimeSelected {
		return d, apperr.Validation("select a date before choosing a time")
	}
	if !IsValidSlot(slot) {
		return d, apperr.Validation("unknown time slot %q", slot)
	}
	return Draft{State: DraftTimeSelected, OwnerCode: d.OwnerCode, Date: d.Date, Slot: slot}, nil
}

// Confirm finalizes the selection. Both date and slot must be set.
func (d Draft) Confirm() (Draft, error) {
	if d.State != DraftTimeSelected {
		return d, apperr.Validation("select a date and time first")
	}
	return Draft{State: DraftConfirmed, OwnerCode: d.OwnerCode, Date: d.Date, Slot: d.Slot}, nil
}

// Cancel discards the selection and returns the dialog to closed.
func (d Draft) Cancel() Draft {
	return Draft{State: DraftClosed, OwnerCode: d.OwnerCode}
}
