package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/metrics"
	"TripPlanner/pkg/snowflake"
	"TripPlanner/storage/mq"
)

// PublishTripNotification publishes one notification message.
func PublishTripNotification(msg TripNotificationMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.String("trip_id", msg.TripID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("trip_notify_%d", id)
	}

	if msg.OccurredAt == "" {
		msg.OccurredAt = time.Now().Format(time.RFC3339)
	}

	err := mq.PublishMessage(mq.ExchangeEvents, mq.RoutingKeyNotify, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish trip notification",
			zap.String("message_id", msg.MessageID),
			zap.String("trip_id", msg.TripID),
			zap.String("level", msg.Level),
			zap.Error(err),
		)
		return err
	}

	metrics.RecordNotificationPublished(context.Background(), msg.Level)

	logger.Logger.Info("Published trip notification",
		zap.String("message_id", msg.MessageID),
		zap.String("trip_id", msg.TripID),
		zap.String("level", msg.Level),
	)

	return nil
}

// TripNotifier adapts the producer to the planning controller's notification
// contract. Delivery is fire-and-forget: publish failures are logged, never
// propagated into the state machine.
type TripNotifier struct{}

func NewTripNotifier() *TripNotifier {
	return &TripNotifier{}
}

func (n *TripNotifier) NotifySuccess(ctx context.Context, tripID int64, message string) {
	n.publish(tripID, LevelSuccess, message)
}

func (n *TripNotifier) NotifyError(ctx context.Context, tripID int64, message string) {
	n.publish(tripID, LevelError, message)
}

func (n *TripNotifier) publish(tripID int64, level, message string) {
	msg := TripNotificationMessage{
		TripID:  strconv.FormatInt(tripID, 10),
		Level:   level,
		Message: message,
	}

	if err := PublishTripNotification(msg); err != nil {
		logger.Logger.Warn("Dropping trip notification",
			zap.Int64("trip_id", tripID),
			zap.String("level", level),
			zap.Error(err),
		)
	}
}
