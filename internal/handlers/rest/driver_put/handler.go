package driver_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"moveit/internal/entities"
	"moveit/internal/generated/dto"
	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/pkg/middlewares/auth"
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

	var driverUpdateDTO dto.DriverUpdate
	err := json.NewDecoder(r.Body).Decode(&driverUpdateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	driverModifyEntity := entities.DriverModify{
		Name:         driverUpdateDTO.Name,
		About:        driverUpdateDTO.About,
		ContactEmail: driverUpdateDTO.ContactEmail,
		ContactPhone: driverUpdateDTO.ContactPhone,
		LogoURL:      driverUpdateDTO.LogoUrl,
	}

	driverEntity, err := h.service.UpdateDriver(r.Context(), actor, driverModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, driver.ErrMissingRequiredFields),
			errors.Is(err, driver.ErrInvalidName),
			errors.Is(err, driver.ErrInvalidAbout),
			errors.Is(err, driver.ErrInvalidEmail),
			errors.Is(err, driver.ErrInvalidPhone),
			errors.Is(err, driver.ErrInvalidLogoURL):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, driver.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, driver.ErrDriverNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("update driver")
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
