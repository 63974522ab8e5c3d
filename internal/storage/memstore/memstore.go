// Package memstore implements storage.Store with in-process maps. One
// instance per process in production, one per test in tests; all access is
// serialized through a single RWMutex, so conflicting writes (duplicate
// email inserts, concurrent participant increments) are linearized here
// rather than in the callers.
package memstore

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

type Storage struct {
	mu sync.RWMutex

	users    map[string]models.User
	events   map[string]models.Event
	bookings map[string]models.Booking

	// usersByEmail maps normalized email to user id. CreateUser checks and
	// inserts under mu, which gives the unique-index semantics that keep
	// identity resolution race-free.
	usersByEmail map[string]string
}

func New() *Storage {
	return &Storage{
		users:        make(map[string]models.User),
		events:       make(map[string]models.Event),
		bookings:     make(map[string]models.Booking),
		usersByEmail: make(map[string]string),
	}
}

func (s *Storage) CreateUser(u models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := storage.NormalizeEmail(u.Email)
	if _, taken := s.usersByEmail[email]; taken {
		return "", fmt.Errorf("failed to create user %q: %w", email, storage.ErrEmailTaken)
	}

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = email
	if u.RegisteredAt.IsZero() {
		u.RegisteredAt = time.Now().UTC()
	}

	s.users[u.ID] = u
	s.usersByEmail[email] = u.ID

	return u.ID, nil
}

func (s *Storage) User(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	return &u, nil
}

func (s *Storage) UserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[storage.NormalizeEmail(email)]
	if !ok {
		return nil, storage.ErrUserNotFound
	}

	u := s.users[id]

	return &u, nil
}

func (s *Storage) CreateEvent(e models.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	s.events[e.ID] = e

	return e.ID, nil
}

func (s *Storage) Event(id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}

	return &e, nil
}

func (s *Storage) Events() ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}

	return events, nil
}

func (s *Storage) UpdateEvent(id string, p storage.EventPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return storage.ErrEventNotFound
	}

	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = *p.MaxParticipants
	}
	if p.CurrentParticipants != nil {
		e.CurrentParticipants = *p.CurrentParticipants
	}

	s.events[id] = e

	return nil
}

func (s *Storage) IncrementParticipants(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[id]
	if !ok {
		return 0, storage.ErrEventNotFound
	}

	if e.Full() {
		return e.CurrentParticipants, fmt.Errorf("event %s: %w", id, storage.ErrEventFull)
	}

	e.CurrentParticipants++
	s.events[id] = e

	return e.CurrentParticipants, nil
}

func (s *Storage) CreateBooking(b models.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[b.UserID]; !ok {
		return "", fmt.Errorf("failed to create booking: %w", storage.ErrUserNotFound)
	}
	if _, ok := s.events[b.EventID]; !ok {
		return "", fmt.Errorf("failed to create booking: %w", storage.ErrEventNotFound)
	}

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	s.bookings[b.ID] = b

	return b.ID, nil
}

func (s *Storage) Booking(id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}

	return &b, nil
}

func (s *Storage) BookingsByEvent(eventID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.EventID == eventID {
			bookings = append(bookings, b)
		}
	}

	return bookings, nil
}

func (s *Storage) UpdateBooking(id string, p storage.BookingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}

	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.PaymentStatus != nil {
		b.PaymentStatus = *p.PaymentStatus
	}
	if p.PaymentID != nil {
		b.PaymentID = *p.PaymentID
	}

	s.bookings[id] = b

	return nil
}

func (s *Storage) CancelExpiredBookings(olderThan time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := time.Now().UTC().Add(-olderThan)

	cancelled := 0
	for id, b := range s.bookings {
		if b.Status == models.BookingPending && b.PaymentStatus == models.PaymentPending && b.CreatedAt.Before(deadline) {
			b.Status = models.BookingCancelled
			s.bookings[id] = b
			cancelled++
		}
	}

	return cancelled, nil
}
