package getEvent

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"seatbooker/internal/lib/api/response"
	"seatbooker/internal/lib/logger/sl"
	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

type EventInfoResponse struct {
	response.Response
	Event    *models.Event    `json:"event"`
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventGetter
type EventGetter interface {
	Event(id string) (*models.Event, error)
	BookingsByEvent(eventID string) ([]models.Booking, error)
}

func New(log *slog.Logger, events EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.getEvent.New"

		log = log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		event, err := events.Event(eventID)
		if err != nil {
			if errors.Is(err, storage.ErrEventNotFound) {
				log.Error("event not found", sl.Err(err))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
				return
			}

			log.Error("failed to get event information", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))
			return
		}

		bookings, err := events.BookingsByEvent(eventID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get event information"))
			return
		}

		log.Info("event info successfully received")

		responseOK(w, r, event, bookings)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, event *models.Event, bookings []models.Booking) {
	render.JSON(w, r, EventInfoResponse{
		Response: response.OK(),
		Event:    event,
		Bookings: bookings,
	})
}
