package getEvent

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatbooker/internal/http-server/handlers/event/getEvent/mocks"
	"seatbooker/internal/lib/logger/handlers/slogdiscard"
	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

func TestGetEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	event := &models.Event{ID: "e1", Title: "Intro to Go", Price: 500, MaxParticipants: 10, CurrentParticipants: 3}
	bookings := []models.Booking{
		{ID: "b1", UserID: "u1", EventID: "e1", Status: models.BookingCompleted, PaymentStatus: models.PaymentCompleted},
	}

	testCases := []struct {
		name           string
		eventID        string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Success",
			eventID: "e1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", "e1").Return(event, nil)
				m.On("BookingsByEvent", "e1").Return(bookings, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"title":"Intro to Go"`)
				assert.Contains(t, body, `"id":"b1"`)
			},
		},
		{
			name:    "Event not found",
			eventID: "missing",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", "missing").Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "event not found")
			},
		},
		{
			name:    "Internal error",
			eventID: "e1",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("Event", "e1").Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "failed to get event information")
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			handler := New(logger, mockGetter)

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			router := chi.NewRouter()
			router.Get("/events/{id}", handler)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			tc.checkBody(t, rr.Body.String())
		})
	}
}
