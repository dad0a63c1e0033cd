package middleware

import (
	"go.opentelemetry.io/otel"

	"TripPlanner/pkg/logger"
	mqotel "TripPlanner/pkg/mq"
	redisotel "TripPlanner/pkg/redis"
)

// Init prepares middleware-owned instruments. Must run after the meter
// provider is set.
func Init() error {
	if err := InitMetrics(otel.Meter("tripplanner-http")); err != nil {
		return err
	}

	if err := redisotel.InitRedisMetrics(otel.Meter("tripplanner-redis")); err != nil {
		return err
	}

	if err := mqotel.InitMQMetrics(otel.Meter("tripplanner-mq")); err != nil {
		return err
	}

	logger.Logger.Info("All middlewares initialized successfully")
	return nil
}
