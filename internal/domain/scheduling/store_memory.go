package scheduling

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryBookingStore is an in-process BookingStore guarded by a mutex. It
// backs tests and the dev seed path where no database is wired.
type MemoryBookingStore struct {
	mu      sync.Mutex
	entries map[string]map[string]uuid.UUID // owner|date -> slot -> appointment
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{entries: make(map[string]map[string]uuid.UUID)}
}

func (s *MemoryBookingStore) key(ownerCode string, date time.Time) string {
	return ownerCode + "|" + DateKey(date)
}

func (s *MemoryBookingStore) BookedTimes(ctx context.Context, ownerCode string, date time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.entries[s.key(ownerCode, date)]
	slots := make([]string, 0, len(day))
	for slot := range day {
		slots = append(slots, slot)
	}
	sortByCatalog(slots)
	return slots, nil
}

func (s *MemoryBookingStore) Reserve(ctx context.Context, ownerCode string, date time.Time, slot string, appointmentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := s.key(ownerCode, date)
	day := s.entries[k]
	if day == nil {
		day = make(map[string]uuid.UUID)
		s.entries[k] = day
	}
	if _, taken := day[slot]; taken {
		return ErrSlotTaken
	}
	day[slot] = appointmentID
	return nil
}

func (s *MemoryBookingStore) Release(ctx context.Context, ownerCode string, date time.Time, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries[s.key(ownerCode, date)], slot)
	return nil
}

// Seed reserves a set of slots without an owning appointment. Used to load
// the static calendars providers start with.
func (s *MemoryBookingStore) Seed(ownerCode string, date time.Time, slots ...string) {
	for _, slot := range slots {
		_ = s.Reserve(context.Background(), ownerCode, date, slot, uuid.Nil)
	}
}
