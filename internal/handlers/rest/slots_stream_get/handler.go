package slots_stream_get

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"moveit/internal/entities"
	"moveit/internal/generated/dto"
	"moveit/internal/handlers/rest/presenter"
	"moveit/internal/service/availability"
	"moveit/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

type Handler struct {
	log      handlerLogger
	service  Service
	upgrader websocket.Upgrader
}

// New собирает обработчик живой доступности. Пустой allowedOrigins
// разрешает любой Origin.
func New(log handlerLogger, service Service, allowedOrigins []string) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if len(allowedOrigins) == 0 || origin == "" {
					return true
				}
				return slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// frame - снимок, помеченный поколением подписки, в которой он получен.
type frame struct {
	generation uint64
	snapshot   entities.AvailabilitySnapshot
}

// subscription - текущая подписка соединения. done закрывается, когда
// forward вычитал канал снимков до конца.
type subscription struct {
	generation uint64
	cancel     context.CancelFunc
	done       <-chan struct{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	driverID := mux.Vars(r)["id"]
	date := r.URL.Query().Get("date")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	frames := make(chan frame)

	// Первую подписку открываем до апгрейда, чтобы ошибки ушли обычным HTTP-кодом.
	current, err := h.subscribe(ctx, 1, driverID, date, frames)
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
			).Error("watch available slots")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}
	defer func() {
		current.stop(frames)
	}()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("upgrade websocket connection")
		return
	}
	defer conn.Close()

	requests := make(chan dto.SlotsStreamRequest)
	go h.read(ctx, cancel, conn, requests)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case f := <-frames:
			if f.generation != current.generation {
				continue
			}
			err = h.write(conn, toFrame(f.generation, driverID, f.snapshot))
			if err != nil {
				return
			}

		case req := <-requests:
			generation := current.generation + 1
			current.stop(frames)

			next, err := h.subscribe(ctx, generation, driverID, req.Date, frames)
			if err != nil {
				current = idle(generation)
				err = h.write(conn, errorFrame(generation, driverID, req.Date, err))
				if err != nil {
					return
				}
				continue
			}
			current = next

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.PingMessage, nil)
			if err != nil {
				return
			}
		}
	}
}

func (h *Handler) subscribe(
	ctx context.Context,
	generation uint64,
	driverID, date string,
	frames chan<- frame,
) (*subscription, error) {
	watchCtx, watchCancel := context.WithCancel(ctx)

	snapshots, err := h.service.Watch(watchCtx, driverID, date)
	if err != nil {
		watchCancel()
		return nil, err
	}

	done := make(chan struct{})
	go forward(watchCtx, generation, snapshots, frames, done)

	return &subscription{
		generation: generation,
		cancel:     watchCancel,
		done:       done,
	}, nil
}

// stop отменяет подписку и ждет, пока forward вычитает ее снимки. После
// возврата в frames не придет ни одного кадра этого поколения.
func (s *subscription) stop(frames <-chan frame) {
	s.cancel()
	for {
		select {
		case <-frames:
		case <-s.done:
			return
		}
	}
}

// idle - поколение без активной подписки, когда новая дата не прошла проверку.
func idle(generation uint64) *subscription {
	done := make(chan struct{})
	close(done)

	return &subscription{
		generation: generation,
		cancel:     func() {},
		done:       done,
	}
}

func forward(
	ctx context.Context,
	generation uint64,
	snapshots <-chan entities.AvailabilitySnapshot,
	frames chan<- frame,
	done chan<- struct{},
) {
	defer close(done)

	for snapshot := range snapshots {
		select {
		case frames <- frame{generation: generation, snapshot: snapshot}:
		case <-ctx.Done():
		}
	}
}

func (h *Handler) read(
	ctx context.Context,
	cancel context.CancelFunc,
	conn *websocket.Conn,
	requests chan<- dto.SlotsStreamRequest,
) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.With(
					logger.NewField("error", err),
				).Warn("read websocket message")
			}
			return
		}

		var req dto.SlotsStreamRequest
		err = json.Unmarshal(message, &req)
		if err != nil {
			h.log.With(
				logger.NewField("error", err),
			).Debug("skip malformed stream request")
			continue
		}

		select {
		case requests <- req:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) write(conn *websocket.Conn, res dto.SlotsFrame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteJSON(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("write websocket frame")
	}
	return err
}

func toFrame(generation uint64, driverID string, snapshot entities.AvailabilitySnapshot) dto.SlotsFrame {
	if snapshot.Err != nil {
		return errorFrame(generation, driverID, snapshot.Date, snapshot.Err)
	}

	return dto.SlotsFrame{
		Generation: generation,
		Seq:        snapshot.Seq,
		DriverId:   driverID,
		Date:       snapshot.Date,
		Slots:      presenter.TimeSlots(snapshot.Slots),
	}
}

func errorFrame(generation uint64, driverID, date string, err error) dto.SlotsFrame {
	message := "internal error"
	switch {
	case errors.Is(err, availability.ErrInvalidDate):
		message = availability.ErrInvalidDate.Error()
	case errors.Is(err, availability.ErrInvalidDriverID):
		message = availability.ErrInvalidDriverID.Error()
	case errors.Is(err, availability.ErrDriverNotFound):
		message = availability.ErrDriverNotFound.Error()
	}

	return dto.SlotsFrame{
		Generation: generation,
		DriverId:   driverID,
		Date:       date,
		Error:      &message,
		Slots:      []dto.TimeSlot{},
	}
}
