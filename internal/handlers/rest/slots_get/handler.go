package slots_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"moveit/internal/generated/dto"
	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/service/availability"
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
	driverID := mux.Vars(r)["id"]
	date := r.URL.Query().Get("date")

	slots, err := h.service.Slots(r.Context(), driverID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDriverID),
			errors.Is(err, availability.ErrInvalidDate):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, availability.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("driver_id", driverID),
				logger.NewField("date", date),
			).Error("get available slots")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	res := dto.Slots{
		DriverId: driverID,
		Date:     date,
		Slots:    presenter.TimeSlots(slots),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
