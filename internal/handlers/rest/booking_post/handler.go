package booking_post

import (
	"encoding/json"
	"errors"
	"net/http"

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

	var bookingCreateDTO dto.BookingCreate
	err := json.NewDecoder(r.Body).Decode(&bookingCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	draft := entities.BookingDraft{
		DriverID:      bookingCreateDTO.DriverId,
		Date:          bookingCreateDTO.Date,
		StartTime:     bookingCreateDTO.StartTime,
		VehicleVolume: entities.VehicleVolume(bookingCreateDTO.VehicleVolume),
		Name:          bookingCreateDTO.Name,
		Phone:         bookingCreateDTO.Phone,
	}
	if bookingCreateDTO.Email != nil {
		draft.Email = *bookingCreateDTO.Email
	}
	if bookingCreateDTO.Comments != nil {
		draft.Comments = *bookingCreateDTO.Comments
	}

	bookingEntity, err := h.service.CreateBooking(r.Context(), actor, draft)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrMissingRequiredFields),
			errors.Is(err, booking.ErrInvalidDriverID),
			errors.Is(err, booking.ErrInvalidDate),
			errors.Is(err, booking.ErrInvalidTime),
			errors.Is(err, booking.ErrInvalidSlot),
			errors.Is(err, booking.ErrSlotInPast),
			errors.Is(err, booking.ErrInvalidVolume),
			errors.Is(err, booking.ErrInvalidName),
			errors.Is(err, booking.ErrInvalidPhone),
			errors.Is(err, booking.ErrInvalidEmail),
			errors.Is(err, booking.ErrInvalidComments):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, booking.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, booking.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, booking.ErrSlotConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("driver_id", draft.DriverID),
			).Error("create booking")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(presenter.Booking(bookingEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
