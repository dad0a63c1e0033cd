package mq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	mqotel "TripPlanner/pkg/mq"
)

type MessageHandler func(ctx context.Context, body []byte) error

type ConsumeOptions struct {
	Queue         string
	ConsumerTag   string
	PrefetchCount int
	Handler       MessageHandler
}

// Consume drains a queue until the channel closes. Handler errors requeue the
// message once; a SkipMessageError (or a redelivered failure) drops it.
func Consume(opts ConsumeOptions) error {
	conn := Connection()

	if conn == nil {
		return fmt.Errorf("RabbitMQ connection is nil")
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if opts.PrefetchCount > 0 {
		if err := ch.Qos(opts.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	msgs, err := ch.Consume(
		opts.Queue,
		opts.ConsumerTag,
		false, // auto-ack = false
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logger.Logger.Info("Started consuming messages",
		zap.String("queue", opts.Queue),
		zap.String("consumer_tag", opts.ConsumerTag),
		zap.Int("prefetch_count", opts.PrefetchCount),
	)

	for msg := range msgs {
		processDelivery(opts, msg)
	}

	return nil
}

// processDelivery runs the handler and settles the delivery: skip errors ack
// and drop, other handler errors requeue once, a redelivered failure drops.
func processDelivery(opts ConsumeOptions, msg amqp.Delivery) {
	// Continue the publisher's trace when the headers carry one.
	ctx := mqotel.ExtractContext(context.Background(), msg.Headers)

	if err := opts.Handler(ctx, msg.Body); err != nil {
		var skip *pkgerrors.SkipMessageError
		if errors.As(err, &skip) {
			logger.Logger.Info("Skipping message",
				zap.String("queue", opts.Queue),
				zap.String("reason", skip.Reason),
			)
			msg.Ack(false)
			return
		}

		logger.Logger.Error("Failed to process message",
			zap.String("queue", opts.Queue),
			zap.String("consumer_tag", opts.ConsumerTag),
			zap.Bool("redelivered", msg.Redelivered),
			zap.Error(err),
		)

		// one retry, then drop
		msg.Nack(false, !msg.Redelivered)
		return
	}

	msg.Ack(false)
}
