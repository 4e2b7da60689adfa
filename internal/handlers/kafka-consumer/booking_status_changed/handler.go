package booking_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"moveit/internal/entities"
	"moveit/internal/service/booking"
	"moveit/pkg/logger"
)

type Handler struct {
	bookingService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, bookingService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		bookingService:           bookingService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("booking.status.changed: claim messages closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("booking.status.changed: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing применяет одно событие. true означает, что сессия
// отменена и сообщение не помечено: его перечитают после ребаланса.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("booking.status.changed handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("booking", event.BookingID),
		logger.NewField("driver", event.DriverID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	bookingID, err := uuid.Parse(event.BookingID)
	if err != nil || strings.TrimSpace(event.DriverID) == "" {
		msgLog.Warn("booking.status.changed handler event without booking or driver id")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Debug("booking.status.changed processing")

	// Событие публикует приложение водителя, поэтому переход выполняется от
	// его имени и проходит те же проверки владельца, что и REST.
	actor := entities.Actor{
		ID:   event.DriverID,
		Role: entities.RoleDriver,
	}

	updated, err := h.bookingService.UpdateStatus(ctx, actor, bookingID, entities.BookingStatus(event.Status))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("booking.status.changed handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, booking.ErrInvalidStatus):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("booking.status.changed handler unknown status")

		case errors.Is(err, booking.ErrInvalidTransition):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("booking.status.changed handler transition not allowed")

		case errors.Is(err, booking.ErrBookingNotFound),
			errors.Is(err, booking.ErrForbidden):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("booking.status.changed handler booking not owned by driver")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("booking.status.changed handler failed to update booking")
		}
		sess.MarkMessage(message, "")
		return false
	}

	h.log.With(
		logger.NewField("booking", updated.ID.String()),
		logger.NewField("event_status", event.Status),
		logger.NewField("current_status", updated.Status.String()),
		logger.NewField("offset", message.Offset),
	).Info("booking.status.changed: processed")

	sess.MarkMessage(message, "")
	return false
}
