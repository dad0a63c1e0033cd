package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/service"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/response"
)

func tripIDFromPath(c *app.RequestContext) (int64, error) {
	raw := c.Param("trip_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.TripNotFound
	}
	return id, nil
}

// CreateTrip opens a new planning session.
func CreateTrip(ctx context.Context, c *app.RequestContext) {
	snap, err := service.Trip().CreateTrip(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}

// GetTrip returns the session snapshot.
func GetTrip(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	snap, err := service.Trip().GetTrip(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}

// UpdateForm applies a partial form edit.
func UpdateForm(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.UpdateFormRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	snap, err := service.Trip().UpdateForm(ctx, tripID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}

// TogglePreference flips one travel-style tag.
func TogglePreference(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	snap, err := service.Trip().TogglePreference(ctx, tripID, c.Param("kind"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}

// SubmitPlan validates the form and starts plan generation. Generation runs
// asynchronously; the snapshot comes back in Loading state.
func SubmitPlan(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	snap, err := service.Trip().Submit(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Accepted(ctx, c, snap)
}

// SelectTab switches the active result tab.
func SelectTab(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.SelectTabRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	snap, err := service.Trip().SelectTab(ctx, tripID, req.Tab)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}

// GetView renders the active result tab, or the tab named by the optional
// "tab" query parameter without switching the active one.
func GetView(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	view, err := service.Trip().View(ctx, tripID, c.Query("tab"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, view)
}

// ResetTrip returns the session to Idle, keeping the form values.
func ResetTrip(ctx context.Context, c *app.RequestContext) {
	tripID, err := tripIDFromPath(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	snap, err := service.Trip().Reset(ctx, tripID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, snap)
}
