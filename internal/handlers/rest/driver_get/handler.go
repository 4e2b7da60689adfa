package driver_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/service/driver"
	"moveit/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		service: service,
		log:     handlerLog,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	driverEntity, err := h.service.GetDriver(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, driver.ErrInvalidDriverID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("driver_id", id),
			).Error("get driver")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(presenter.Driver(driverEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
