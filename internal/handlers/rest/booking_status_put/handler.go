package booking_status_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"moveit/internal/entities"
	"moveit/internal/generated/dto"
	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/pkg/middlewares/auth"
	"moveit/internal/service/booking"
	"moveit/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var statusUpdateDTO dto.BookingStatusUpdate
	err = json.NewDecoder(r.Body).Decode(&statusUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	bookingEntity, err := h.service.UpdateStatus(r.Context(), actor, id, entities.BookingStatus(statusUpdateDTO.Status))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidBookingID),
			errors.Is(err, booking.ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, booking.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, booking.ErrBookingNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, booking.ErrInvalidTransition):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("booking_id", id.String()),
			).Error("update booking status")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(presenter.Booking(bookingEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
