package ping_get

import (
	"encoding/json"
	"net/http"

	"github.com/AlekSi/pointer"
	"moveit/internal/generated/dto"
	"moveit/pkg/logger"
)

// Handler отвечает статичным pong, тело кодируется один раз.
type Handler struct {
	log  handlerLogger
	body []byte
}

func New(log handlerLogger) *Handler {
	body, _ := json.Marshal(dto.PingResponse{Message: pointer.To("pong")})

	return &Handler{
		log:  log.With(logger.NewField("handler", "ping_get")),
		body: append(body, '\n'),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(h.body); err != nil {
		h.log.Debug("write ping response", logger.NewField("error", err))
	}
}
