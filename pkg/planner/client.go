package planner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/internal/model"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
)

// Client talks to the upstream agentic planning service. One call per
// accepted submission, no retry; the caller owns the lifecycle.
type Client struct {
	http    *client.Client
	url     string
	timeout time.Duration
}

func New(url string, timeout time.Duration) (*Client, error) {
	httpClient, err := client.NewClient(
		client.WithDialTimeout(5 * time.Second),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:    httpClient,
		url:     url,
		timeout: timeout,
	}, nil
}

func NewFromConfig() (*Client, error) {
	return New(
		config.Cfg.GetPlannerURL(),
		time.Duration(config.Cfg.PlannerTimeoutSeconds)*time.Second,
	)
}

// Plan posts the trip request and decodes the generated plan. Transport
// failures surface as PlannerUnavailable; non-success responses and
// unparseable success bodies surface as PlannerFailed carrying the service's
// error text when it provides one.
func (c *Client) Plan(ctx context.Context, tripReq model.TripRequest) (*model.TripPlan, error) {
	body, err := json.Marshal(tripReq)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()

	req, resp := protocol.AcquireRequest(), protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.url)
	req.SetBody(body)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("X-Run-ID", runID)

	start := time.Now()
	if err := c.http.DoTimeout(ctx, req, resp, c.timeout); err != nil {
		logger.Logger.Error("Planner request failed",
			zap.String("run_id", runID),
			zap.String("destination", tripReq.Destination),
			zap.Error(err),
		)
		return nil, pkgerrors.PlannerUnavailable
	}

	status := resp.StatusCode()
	if status < consts.StatusOK || status >= consts.StatusMultipleChoices {
		message := extractErrorMessage(resp.Body())
		logger.Logger.Warn("Planner returned non-success status",
			zap.String("run_id", runID),
			zap.Int("status", status),
			zap.String("message", message),
		)
		return nil, pkgerrors.PlannerFailed.WithMessage(message)
	}

	var plan model.TripPlan
	if err := json.Unmarshal(resp.Body(), &plan); err != nil {
		logger.Logger.Warn("Planner returned malformed plan body",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		return nil, pkgerrors.PlannerFailed
	}

	logger.Logger.Info("Planner call completed",
		zap.String("run_id", runID),
		zap.String("destination", tripReq.Destination),
		zap.Int("days", tripReq.Days),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &plan, nil
}

// extractErrorMessage pulls the service-provided error text out of a failure
// body. The planner uses an "error" field; its FastAPI layer may also wrap
// failures in "detail".
func extractErrorMessage(body []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
