package scheduling

import (
	"testing"

	"github.com/vidapoint/vidapoint/pkg/apperr"
)

func TestDraftFlow(t *testing.T) {
	d := NewDraft("d1")
	if d.State != DraftClosed {
		t.Fatalf("expected closed draft, got %q", d.State)
	}

	d = d.SelectDate(date("2025-10-28"))
	if d.State != DraftDateSelected {
		t.Fatalf("expected date_selected, got %q", d.State)
	}

	d, err := d.SelectSlot("9:30 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != DraftTimeSelected {
		t.Fatalf("expected time_selected, got %q", d.State)
	}

	d, err = d.Confirm()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.State != DraftConfirmed || d.Slot != "9:30 AM" {
		t.Errorf("unexpected confirmed draft: %+v", d)
	}
}

func TestDraftSelectDateClearsSlot(t *testing.T) {
	d := NewDraft("d1").SelectDate(date("2025-10-28"))
	d, err := d.SelectSlot("9:00 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d = d.SelectDate(date("2025-10-29"))
	if d.Slot != "" {
		t.Errorf("expected slot cleared after date change, got %q", d.Slot)
	}
	if d.State != DraftDateSelected {
		t.Errorf("expected date_selected, got %q", d.State)
	}
	if _, err := d.Confirm(); !apperr.IsValidation(err) {
		t.Errorf("expected validation error confirming without a time, got %v", err)
	}
}

func TestDraftSelectSlotWithoutDate(t *testing.T) {
	_, err := NewDraft("d1").SelectSlot("9:00 AM")
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDraftSelectSlotUnknownLabel(t *testing.T) {
	d := NewDraft("d1").SelectDate(date("2025-10-28"))
	if _, err := d.SelectSlot("1:00 PM"); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDraftConfirmWithoutSelection(t *testing.T) {
	if _, err := NewDraft("d1").Confirm(); !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestDraftCancelDiscards(t *testing.T) {
	d := NewDraft("d1").SelectDate(date("2025-10-28"))
	d, err := d.SelectSlot("2:00 PM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d = d.Cancel()
	if d.State != DraftClosed || d.Slot != "" || !d.Date.IsZero() {
		t.Errorf("expected selection discarded, got %+v", d)
	}
}
