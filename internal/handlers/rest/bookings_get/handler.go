package bookings_get

import (
	"encoding/json"
	"net/http"

	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/pkg/middlewares/auth"
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

	bookings, err := h.service.ListBookings(r.Context(), actor)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("actor_id", actor.ID),
		).Error("list bookings")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(presenter.Bookings(bookings))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
