package confirmPayment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"seatbooker/internal/booking"
	"seatbooker/internal/lib/api/response"
	"seatbooker/internal/lib/logger/sl"
	"seatbooker/internal/models"
	"seatbooker/internal/storage"
)

type ConfirmRequest struct {
	PaymentID string `json:"payment_id" validate:"required"`
}

type ConfirmResponse struct {
	response.Response
	Booking *models.Booking `json:"booking,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=PaymentConfirmer
type PaymentConfirmer interface {
	ConfirmPayment(ctx context.Context, bookingID, paymentID string) (*models.Booking, error)
}

func New(log *slog.Logger, workflow PaymentConfirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.confirmPayment.New"

		log = log.With(slog.String("op", op))

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(slog.String("booking_id", bookingID))

		var req ConfirmRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		confirmed, err := workflow.ConfirmPayment(r.Context(), bookingID, req.PaymentID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrBookingNotFound):
				log.Error("booking not found", sl.Err(err))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("booking not found"))
			case errors.Is(err, booking.ErrInvalidState):
				log.Error("booking is not awaiting payment", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("booking is not awaiting payment"))
			case errors.Is(err, booking.ErrCapacityExceeded):
				log.Error("event is full", sl.Err(err))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("no available seats"))
			default:
				log.Error("failed to confirm payment", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to confirm payment"))
			}
			return
		}

		log.Info("payment confirmed", slog.String("payment_id", req.PaymentID))

		responseOK(w, r, confirmed)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, b *models.Booking) {
	render.JSON(w, r, ConfirmResponse{
		Response: response.OK(),
		Booking:  b,
	})
}
