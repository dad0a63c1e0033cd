package queue

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"TripPlanner/internal/cache"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/storage/mq"
)

// StartNotificationConsumer drains the trip notification queue. Malformed
// payloads are acked and dropped; handler errors requeue the delivery once.
func StartNotificationConsumer() error {
	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.QueueNotifications,
		ConsumerTag:   "tripplanner-notification-worker",
		PrefetchCount: 10,
		Handler:       handleNotification,
	})
}

func handleNotification(ctx context.Context, body []byte) error {
	var msg TripNotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return &pkgerrors.SkipMessageError{Reason: "malformed notification payload: " + err.Error()}
	}

	if msg.TripID == "" || msg.Message == "" {
		return &pkgerrors.SkipMessageError{Reason: "notification missing trip_id or message"}
	}

	// Deduplicate redeliveries across worker instances.
	if msg.MessageID != "" {
		acquired, err := cache.TryLock(ctx, "notify:"+msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check notification dedup lock",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		} else if !acquired {
			return &pkgerrors.SkipMessageError{Reason: "duplicate notification " + msg.MessageID}
		}
	}

	switch msg.Level {
	case LevelError:
		logger.Logger.Warn("Trip planning failed",
			zap.String("message_id", msg.MessageID),
			zap.String("trip_id", msg.TripID),
			zap.String("message", msg.Message),
			zap.String("occurred_at", msg.OccurredAt),
		)
	default:
		logger.Logger.Info("Trip planning notification",
			zap.String("message_id", msg.MessageID),
			zap.String("trip_id", msg.TripID),
			zap.String("level", msg.Level),
			zap.String("message", msg.Message),
			zap.String("occurred_at", msg.OccurredAt),
		)
	}

	return nil
}

// StartAllConsumers runs every consumer until ctx is cancelled, reconnecting
// with a fixed backoff when a consume loop exits.
func StartAllConsumers(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := StartNotificationConsumer(); err != nil {
				logger.Logger.Error("Notification consumer stopped", zap.Error(err))
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()

	logger.Logger.Info("All consumers started")
}
