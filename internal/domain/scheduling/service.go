package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vidapoint/vidapoint/pkg/apperr"
	"github.com/vidapoint/vidapoint/pkg/pagination"
)

// Notifier receives user-facing events from the booking flow. The
// notifications domain provides the real implementation.
type Notifier interface {
	Publish(ctx context.Context, userID uuid.UUID, kind, title, message string) error
}

type Service struct {
	appointments AppointmentRepository
	store        BookingStore
	notifier     Notifier
}

func NewService(appointments AppointmentRepository, store BookingStore, notifier Notifier) *Service {
	return &Service{appointments: appointments, store: store, notifier: notifier}
}

// BookedTimes resolves the occupied slots for a doctor/clinic pair on a
// date. A doctor calendar with any entry for that exact day wins over the
// clinic calendar; otherwise the clinic calendar applies.
func (s *Service) BookedTimes(ctx context.Context, doctorCode, clinicCode string, date time.Time) ([]string, error) {
	if doctorCode != "" {
		slots, err := s.store.BookedTimes(ctx, doctorCode, date)
		if err != nil {
			return nil, err
		}
		if len(slots) > 0 {
			return slots, nil
		}
	}
	if clinicCode != "" {
		return s.store.BookedTimes(ctx, clinicCode, date)
	}
	return []string{}, nil
}

// SlotAvailability walks the catalog and marks each label free or taken
// for the resolved calendar.
func (s *Service) SlotAvailability(ctx context.Context, doctorCode, clinicCode string, date time.Time) ([]SlotAvailability, error) {
	booked, err := s.BookedTimes(ctx, doctorCode, clinicCode, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, slot := range booked {
		taken[slot] = true
	}
	out := make([]SlotAvailability, 0, len(SlotCatalog))
	for _, slot := range SlotCatalog {
		out = append(out, SlotAvailability{Slot: slot, Available: !taken[slot]})
	}
	return out, nil
}

// ValidateBooking checks a proposed (date, slot) pair against the resolved
// calendar. It does not reserve anything; Book does that atomically.
func (s *Service) ValidateBooking(ctx context.Context, doctorCode, clinicCode string, date time.Time, slot string) error {
	if date.IsZero() || slot == "" {
		return apperr.Validation("select a date and time first")
	}
	if !IsValidSlot(slot) {
		return apperr.Validation("unknown time slot %q", slot)
	}
	booked, err := s.BookedTimes(ctx, doctorCode, clinicCode, date)
	if err != nil {
		return err
	}
	for _, b := range booked {
		if b == slot {
			return ErrSlotTaken
		}
	}
	return nil
}

// Book validates, reserves the slot, and creates a pending appointment.
// Reserve is the gate: of two concurrent bookings for the same slot only
// one passes, the other gets ErrSlotTaken. If persisting the appointment
// fails the reservation is released again.
func (s *Service) Book(ctx context.Context, a *Appointment) (*Appointment, error) {
	if a.UserID == uuid.Nil {
		return nil, apperr.Validation("user_id is required")
	}
	if a.DoctorCode == "" && a.ClinicCode == "" {
		return nil, apperr.Validation("a doctor or clinic is required")
	}
	if !validAppointmentTypes[a.Type] {
		return nil, apperr.Validation("invalid appointment type %q", a.Type)
	}
	if err := s.ValidateBooking(ctx, a.DoctorCode, a.ClinicCode, a.Date, a.Slot); err != nil {
		return nil, err
	}

	a.ID = uuid.New()
	a.Status = StatusPending
	if a.Title == "" {
		a.Title = a.Type
	}

	owner := a.OwnerCode()
	if err := s.store.Reserve(ctx, owner, a.Date, a.Slot, a.ID); err != nil {
		return nil, err
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		if relErr := s.store.Release(ctx, owner, a.Date, a.Slot); relErr != nil {
			log.Error().Err(relErr).Str("owner", owner).Str("slot", a.Slot).
				Msg("failed to release reservation after create error")
		}
		return nil, err
	}

	s.notify(ctx, a.UserID, "appointment",
		"Appointment requested",
		fmt.Sprintf("Your %s on %s at %s is awaiting confirmation.", a.Type, DateKey(a.Date), a.Slot))
	return a, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, apperr.NotFound("appointment not found")
	}
	return a, nil
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter string, p pagination.Params) ([]*Appointment, int, error) {
	if filter == "" {
		filter = FilterAll
	}
	if !validFilters[filter] {
		return nil, 0, apperr.Validation("invalid filter %q", filter)
	}
	return s.appointments.ListByUser(ctx, userID, filter, p)
}

// Cancel frees the reservation and marks the appointment cancelled. Only
// pending and confirmed appointments can be cancelled.
func (s *Service) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if a.Status != StatusPending && a.Status != StatusConfirmed {
		return apperr.Conflict("appointment is already %s", a.Status)
	}
	if err := s.store.Release(ctx, a.OwnerCode(), a.Date, a.Slot); err != nil {
		return err
	}
	return s.appointments.UpdateStatus(ctx, id, StatusCancelled)
}

// UpdateStatus handles the provider-side transitions: confirm, complete,
// miss. Cancelled appointments stay cancelled.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validAppointmentStatuses[status] {
		return apperr.Validation("invalid status %q", status)
	}
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == StatusCancelled {
		return apperr.Conflict("appointment is already cancelled")
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	if status == StatusConfirmed {
		s.notify(ctx, a.UserID, "appointment",
			"Appointment confirmed",
			fmt.Sprintf("Your %s on %s at %s is confirmed.", a.Type, DateKey(a.Date), a.Slot))
	}
	return nil
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, kind, title, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, userID, kind, title, message); err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("failed to publish notification")
	}
}
