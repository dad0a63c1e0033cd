package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TripPlanner/internal/handler"
	"TripPlanner/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/healthz", handler.Healthz)

	v1 := h.Group("/v1")

	trips := v1.Group("/trips")
	trips.Use(middleware.GeneralRateLimitMiddleware())
	{
		trips.POST("", handler.CreateTrip)
		trips.GET("/:trip_id", handler.GetTrip)
		trips.PATCH("/:trip_id/form", handler.UpdateForm)
		trips.POST("/:trip_id/preferences/:kind/toggle", handler.TogglePreference)
		trips.POST("/:trip_id/plan", middleware.PlanRateLimitMiddleware(), handler.SubmitPlan)
		trips.POST("/:trip_id/tab", handler.SelectTab)
		trips.GET("/:trip_id/view", handler.GetView)
		trips.POST("/:trip_id/reset", handler.ResetTrip)
	}
}
