package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"TripPlanner/config"
)

// Healthz reports liveness.
func Healthz(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, map[string]string{
		"status":  "ok",
		"service": config.Cfg.ServiceName,
		"version": config.Cfg.Version,
	})
}
