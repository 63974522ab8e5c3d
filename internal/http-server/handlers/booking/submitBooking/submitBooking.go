package submitBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"seatbooker/internal/booking"
	"seatbooker/internal/lib/api/response"
	"seatbooker/internal/lib/logger/sl"
	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

type SubmitResponse struct {
	response.Response
	User     *models.User     `json:"user,omitempty"`
	Booking  *models.Booking  `json:"booking,omitempty"`
	NextStep booking.NextStep `json:"next_step,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingSubmitter
type BookingSubmitter interface {
	Submit(ctx context.Context, eventID string, in booking.FormInput) (*booking.SubmitResult, error)
	Finalize(ctx context.Context, bookingID string) (*models.Booking, error)
}

func New(log *slog.Logger, workflow BookingSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.submitBooking.New"

		log = log.With(slog.String("op", op))

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(slog.String("event_id", eventID))

		var req booking.FormInput

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		result, err := workflow.Submit(r.Context(), eventID, req)
		if err != nil {
			var validationErr *booking.ValidationError
			switch {
			case errors.As(err, &validationErr):
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(validationErr.Error()))
			case errors.Is(err, storage.ErrEventNotFound):
				log.Error("event not found", sl.Err(err))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			default:
				log.Error("failed to submit booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to submit booking"))
			}
			return
		}

		// Free events finalize in the same request; paid ones wait for the
		// payment confirmation call.
		if result.NextStep == booking.NextStepFinalize {
			finalized, err := workflow.Finalize(r.Context(), result.Booking.ID)
			if err != nil {
				if errors.Is(err, booking.ErrCapacityExceeded) {
					log.Error("event is full", sl.Err(err))
					render.Status(r, http.StatusConflict)
					render.JSON(w, r, response.Error("no available seats"))
					return
				}

				log.Error("failed to finalize booking", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to finalize booking"))
				return
			}
			result.Booking = finalized
		}

		log.Info("booking submitted",
			slog.String("booking_id", result.Booking.ID),
			slog.String("next_step", string(result.NextStep)),
		)

		responseOK(w, r, result)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, result *booking.SubmitResult) {
	render.JSON(w, r, SubmitResponse{
		Response: response.OK(),
		User:     result.User,
		Booking:  result.Booking,
		NextStep: result.NextStep,
	})
}
