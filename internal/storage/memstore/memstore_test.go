package memstore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

func TestCreateUser_DeduplicatesByEmail(t *testing.T) {
	t.Parallel()

	s := New()

	id, err := s.CreateUser(models.User{Name: "Ann Lee", Email: "a@x.com"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Same email in different case must hit the unique index.
	_, err = s.CreateUser(models.User{Name: "Another Ann", Email: "  A@X.COM "})
	require.ErrorIs(t, err, storage.ErrEmailTaken)

	u, err := s.UserByEmail("A@x.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "Ann Lee", u.Name)
	assert.False(t, u.RegisteredAt.IsZero())
}

func TestCreateUser_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	s := New()

	const attempts = 50

	var wg sync.WaitGroup
	created := make(chan string, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if id, err := s.CreateUser(models.User{Name: "Ann Lee", Email: "a@x.com"}); err == nil {
				created <- id
			}
		}()
	}

	wg.Wait()
	close(created)

	var ids []string
	for id := range created {
		ids = append(ids, id)
	}

	require.Len(t, ids, 1, "exactly one insert must win")
}

func TestUserByEmail_NotFound(t *testing.T) {
	t.Parallel()

	s := New()

	_, err := s.UserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUpdateEvent_PartialMerge(t *testing.T) {
	t.Parallel()

	s := New()

	id, err := s.CreateEvent(models.Event{Title: "GopherCon", Price: 500, MaxParticipants: 10})
	require.NoError(t, err)

	newTitle := "GopherCon EU"
	require.NoError(t, s.UpdateEvent(id, storage.EventPatch{Title: &newTitle}))

	e, err := s.Event(id)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon EU", e.Title)
	assert.Equal(t, int64(500), e.Price, "unpatched fields must survive")
	assert.Equal(t, 10, e.MaxParticipants)

	err = s.UpdateEvent("unknown", storage.EventPatch{Title: &newTitle})
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestIncrementParticipants_StopsAtCapacity(t *testing.T) {
	t.Parallel()

	s := New()

	id, err := s.CreateEvent(models.Event{Title: "Workshop", MaxParticipants: 2, CurrentParticipants: 1})
	require.NoError(t, err)

	count, err := s.IncrementParticipants(id)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = s.IncrementParticipants(id)
	assert.ErrorIs(t, err, storage.ErrEventFull)

	e, err := s.Event(id)
	require.NoError(t, err)
	assert.Equal(t, 2, e.CurrentParticipants)
}

func TestIncrementParticipants_ConcurrentNeverOverbooks(t *testing.T) {
	t.Parallel()

	s := New()

	const capacity = 5

	id, err := s.CreateEvent(models.Event{Title: "Popular", MaxParticipants: capacity})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < capacity*4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.IncrementParticipants(id)
		}()
	}
	wg.Wait()

	e, err := s.Event(id)
	require.NoError(t, err)
	assert.Equal(t, capacity, e.CurrentParticipants)
}

func TestUpdateBooking_PartialMerge(t *testing.T) {
	t.Parallel()

	s := New()

	userID, err := s.CreateUser(models.User{Name: "Ann Lee", Email: "a@x.com"})
	require.NoError(t, err)
	eventID, err := s.CreateEvent(models.Event{Title: "Workshop", MaxParticipants: 5})
	require.NoError(t, err)

	id, err := s.CreateBooking(models.Booking{
		UserID:        userID,
		EventID:       eventID,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		Amount:        500,
	})
	require.NoError(t, err)

	paymentID := "pay_123"
	completed := models.PaymentCompleted
	require.NoError(t, s.UpdateBooking(id, storage.BookingPatch{
		PaymentStatus: &completed,
		PaymentID:     &paymentID,
	}))

	b, err := s.Booking(id)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCompleted, b.PaymentStatus)
	assert.Equal(t, "pay_123", b.PaymentID)
	assert.Equal(t, models.BookingPending, b.Status, "status was not in the patch")
	assert.Equal(t, int64(500), b.Amount)

	err = s.UpdateBooking("unknown", storage.BookingPatch{PaymentID: &paymentID})
	assert.ErrorIs(t, err, storage.ErrBookingNotFound)
}

func TestCreateBooking_RejectsDanglingReferences(t *testing.T) {
	t.Parallel()

	s := New()

	eventID, err := s.CreateEvent(models.Event{Title: "Workshop", MaxParticipants: 5})
	require.NoError(t, err)

	_, err = s.CreateBooking(models.Booking{UserID: "ghost", EventID: eventID})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	userID, err := s.CreateUser(models.User{Name: "Ann Lee", Email: "a@x.com"})
	require.NoError(t, err)

	_, err = s.CreateBooking(models.Booking{UserID: userID, EventID: "ghost"})
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestCancelExpiredBookings(t *testing.T) {
	t.Parallel()

	s := New()

	userID, err := s.CreateUser(models.User{Name: "Ann Lee", Email: "a@x.com"})
	require.NoError(t, err)
	eventID, err := s.CreateEvent(models.Event{Title: "Workshop", MaxParticipants: 5})
	require.NoError(t, err)

	stale, err := s.CreateBooking(models.Booking{
		UserID:        userID,
		EventID:       eventID,
		CreatedAt:     time.Now().UTC().Add(-time.Hour),
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)

	fresh, err := s.CreateBooking(models.Booking{
		UserID:        userID,
		EventID:       eventID,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
	})
	require.NoError(t, err)

	paid, err := s.CreateBooking(models.Booking{
		UserID:        userID,
		EventID:       eventID,
		CreatedAt:     time.Now().UTC().Add(-time.Hour),
		Status:        models.BookingCompleted,
		PaymentStatus: models.PaymentCompleted,
	})
	require.NoError(t, err)

	cancelled, err := s.CancelExpiredBookings(30 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)

	b, err := s.Booking(stale)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)

	b, err = s.Booking(fresh)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)

	b, err = s.Booking(paid)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
}
