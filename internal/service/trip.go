package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"TripPlanner/config"
	"TripPlanner/internal/cache"
	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	"TripPlanner/internal/queue"
	"TripPlanner/internal/render"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/metrics"
	"TripPlanner/pkg/planner"
	"TripPlanner/pkg/snowflake"
)

const planGeneratedMessage = "Trip plan generated!"

// PlannerClient generates a plan for one validated request.
type PlannerClient interface {
	Plan(ctx context.Context, req model.TripRequest) (*model.TripPlan, error)
}

// Notifier receives terminal planning transitions. Implementations must be
// fire-and-forget; the state machine never waits on delivery.
type Notifier interface {
	NotifySuccess(ctx context.Context, tripID int64, message string)
	NotifyError(ctx context.Context, tripID int64, message string)
}

// PlanCache stores plans keyed by request fingerprint. A miss is always safe.
type PlanCache interface {
	Get(ctx context.Context, fingerprint string) (*model.TripPlan, bool)
	Set(ctx context.Context, fingerprint string, plan *model.TripPlan)
}

// TripService owns the planning workflow sessions: form editing, submission
// lifecycle, tab selection and rendered views.
type TripService struct {
	store    *sessionStore
	planner  PlannerClient
	notifier Notifier
	cache    PlanCache
}

var (
	tripService *TripService
	tripOnce    sync.Once
	tripInitErr error
)

func NewTripService(pl PlannerClient, notifier Notifier, planCache PlanCache) *TripService {
	return &TripService{
		store:    newSessionStore(),
		planner:  pl,
		notifier: notifier,
		cache:    planCache,
	}
}

// Init wires the singleton service from config and starts the idle-session
// sweeper.
func Init() error {
	tripOnce.Do(func() {
		pl, err := planner.NewFromConfig()
		if err != nil {
			tripInitErr = fmt.Errorf("failed to create planner client: %w", err)
			return
		}

		tripService = NewTripService(pl, queue.NewTripNotifier(), cache.NewPlanCache())

		ttl := time.Duration(config.Cfg.SessionIdleTTLMinutes) * time.Minute
		go tripService.sweepLoop(ttl)
	})
	return tripInitErr
}

func Trip() *TripService {
	if tripService == nil {
		panic("Trip service not init")
	}
	return tripService
}

func (s *TripService) sweepLoop(ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		if removed := s.store.sweep(ttl); removed > 0 {
			logger.Logger.Info("Swept idle trip sessions", zap.Int("removed", removed))
		}
	}
}

// CreateTrip opens a fresh session: default form, Idle status, itinerary tab.
func (s *TripService) CreateTrip(ctx context.Context) (*dto.TripSnapshot, error) {
	id, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate trip ID: %w", err)
	}

	sess := newTripSession(id)
	s.store.add(sess)

	logger.Logger.Info("Trip session created", zap.Int64("trip_id", id))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.snapshotLocked(sess), nil
}

// GetTrip returns the current session state.
func (s *TripService) GetTrip(ctx context.Context, tripID int64) (*dto.TripSnapshot, error) {
	sess, ok := s.store.get(tripID)
	if !ok {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()
	return s.snapshotLocked(sess), nil
}

// UpdateForm applies a partial form update. The form is locked while a plan
// is being generated; edits never touch the request status.
func (s *TripService) UpdateForm(ctx context.Context, tripID int64, req dto.UpdateFormRequest) (*dto.TripSnapshot, error) {
	sess, ok := s.store.get(tripID)
	if !ok {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if sess.status == model.StatusLoading {
		return nil, pkgerrors.FormLocked
	}

	if req.Destination != nil {
		sess.form.Destination = *req.Destination
	}
	if req.Country != nil {
		sess.form.Country = *req.Country
	}
	if req.Days != nil {
		sess.form.Days = *req.Days
	}
	if req.Budget != nil {
		sess.form.Budget = *req.Budget
	}
	if req.CheckIn != nil {
		sess.form.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		sess.form.CheckOut = *req.CheckOut
	}

	return s.snapshotLocked(sess), nil
}

// TogglePreference flips one travel-style tag, leaving the rest unchanged.
func (s *TripService) TogglePreference(ctx context.Context, tripID int64, kind string) (*dto.TripSnapshot, error) {
	pref, ok := model.ParsePreference(kind)
	if !ok {
		return nil, pkgerrors.InvalidPreference
	}

	sess, found := s.store.get(tripID)
	if !found {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if sess.status == model.StatusLoading {
		return nil, pkgerrors.FormLocked
	}

	sess.form.TogglePreference(pref)
	return s.snapshotLocked(sess), nil
}

// Submit validates the form and starts plan generation. While a generation is
// in flight further submissions are rejected without reaching the planner.
// Validation failures leave the request status untouched.
func (s *TripService) Submit(ctx context.Context, tripID int64) (*dto.TripSnapshot, error) {
	sess, ok := s.store.get(tripID)
	if !ok {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	sess.touch()

	if sess.status == model.StatusLoading {
		sess.mu.Unlock()
		return nil, pkgerrors.SubmitInFlight
	}

	req, err := sess.form.Validate()
	if err != nil {
		sess.mu.Unlock()
		s.notifier.NotifyError(ctx, tripID, err.Error())
		return nil, err
	}

	// The previous plan/error stays visible while loading; only a terminal
	// transition replaces it.
	sess.status = model.StatusLoading
	sess.submitSeq++
	seq := sess.submitSeq
	snap := s.snapshotLocked(sess)
	sess.mu.Unlock()

	logger.Logger.Info("Plan generation started",
		zap.Int64("trip_id", tripID),
		zap.String("destination", req.Destination),
		zap.Int("days", req.Days),
	)

	go s.runPlan(context.WithoutCancel(ctx), sess, seq, req)

	return snap, nil
}

func (s *TripService) runPlan(ctx context.Context, sess *tripSession, seq uint64, req model.TripRequest) {
	metrics.AddActivePlan(ctx)
	defer metrics.SubtractActivePlan(ctx)

	fingerprint := req.Fingerprint()
	if plan, ok := s.cache.Get(ctx, fingerprint); ok {
		metrics.RecordPlanCacheHit(ctx, req.Destination)
		logger.Logger.Info("Serving plan from cache",
			zap.Int64("trip_id", sess.id),
			zap.String("destination", req.Destination),
		)
		s.completeSuccess(ctx, sess, seq, plan)
		return
	}

	start := time.Now()
	plan, err := s.planner.Plan(ctx, req)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		def, ok := err.(pkgerrors.Definition)
		if !ok {
			def = pkgerrors.PlannerFailed
		}
		metrics.RecordPlanFailed(ctx, req.Destination, def.Code, elapsed)
		s.completeError(ctx, sess, seq, def.Message)
		return
	}

	metrics.RecordPlanGenerated(ctx, req.Destination, elapsed)
	s.cache.Set(ctx, fingerprint, plan)
	s.completeSuccess(ctx, sess, seq, plan)
}

// completeSuccess installs the plan unless a reset or newer submission made
// this result stale.
func (s *TripService) completeSuccess(ctx context.Context, sess *tripSession, seq uint64, plan *model.TripPlan) {
	sess.mu.Lock()
	if sess.submitSeq != seq {
		sess.mu.Unlock()
		logger.Logger.Info("Discarding stale plan result", zap.Int64("trip_id", sess.id))
		return
	}

	sess.status = model.StatusSuccess
	sess.plan = plan
	sess.errMessage = ""
	sess.touch()
	sess.mu.Unlock()

	s.notifier.NotifySuccess(ctx, sess.id, planGeneratedMessage)
}

// completeError records the failure message unless the result is stale. Any
// previous plan is dropped so the session never shows a plan and an error at
// the same time.
func (s *TripService) completeError(ctx context.Context, sess *tripSession, seq uint64, message string) {
	if message == "" {
		message = pkgerrors.PlannerFailed.Message
	}

	sess.mu.Lock()
	if sess.submitSeq != seq {
		sess.mu.Unlock()
		logger.Logger.Info("Discarding stale plan failure", zap.Int64("trip_id", sess.id))
		return
	}

	sess.status = model.StatusError
	sess.plan = nil
	sess.errMessage = message
	sess.touch()
	sess.mu.Unlock()

	s.notifier.NotifyError(ctx, sess.id, message)
}

// SelectTab switches the active result tab. Selecting the current tab is a
// no-op.
func (s *TripService) SelectTab(ctx context.Context, tripID int64, tab string) (*dto.TripSnapshot, error) {
	parsed, ok := model.ParseTab(tab)
	if !ok {
		return nil, pkgerrors.InvalidTab
	}

	sess, found := s.store.get(tripID)
	if !found {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	sess.activeTab = parsed
	return s.snapshotLocked(sess), nil
}

// View renders the content for one result tab. The optional override renders
// another tab without switching the session's active one. A view only exists
// once a plan was generated.
func (s *TripService) View(ctx context.Context, tripID int64, tabOverride string) (*dto.TripView, error) {
	sess, ok := s.store.get(tripID)
	if !ok {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	if sess.status != model.StatusSuccess {
		return nil, pkgerrors.PlanNotReady
	}

	tab := sess.activeTab
	if tabOverride != "" {
		parsed, valid := model.ParseTab(tabOverride)
		if !valid {
			return nil, pkgerrors.InvalidTab
		}
		tab = parsed
	}

	view := &dto.TripView{
		Tab:     string(tab),
		Summary: s.summaryLocked(sess),
	}

	switch tab {
	case model.TabHotels:
		hotels := render.Hotels(sess.plan)
		view.Hotels = &hotels
	case model.TabFlights:
		flights := render.Flights(sess.plan)
		view.Flights = &flights
	default:
		view.Itinerary = render.Itinerary(sess.plan)
	}

	return view, nil
}

// Reset returns the session to Idle: plan and error cleared, tab back to the
// itinerary, form values kept. An in-flight generation is invalidated, its
// late result discarded.
func (s *TripService) Reset(ctx context.Context, tripID int64) (*dto.TripSnapshot, error) {
	sess, ok := s.store.get(tripID)
	if !ok {
		return nil, pkgerrors.TripNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.touch()

	sess.submitSeq++
	sess.status = model.StatusIdle
	sess.plan = nil
	sess.errMessage = ""
	sess.activeTab = model.TabItinerary

	logger.Logger.Info("Trip session reset", zap.Int64("trip_id", tripID))

	return s.snapshotLocked(sess), nil
}

// snapshotLocked builds the state snapshot; sess.mu must be held.
func (s *TripService) snapshotLocked(sess *tripSession) *dto.TripSnapshot {
	prefs := make(map[string]bool, len(model.AllPreferences))
	for _, p := range model.AllPreferences {
		prefs[string(p)] = sess.form.Preferences[p]
	}

	return &dto.TripSnapshot{
		TripID:    strconv.FormatInt(sess.id, 10),
		Status:    string(sess.status),
		Error:     sess.errMessage,
		ActiveTab: string(sess.activeTab),
		Form: dto.FormView{
			Destination: sess.form.Destination,
			Country:     sess.form.Country,
			Days:        sess.form.Days,
			Budget:      sess.form.Budget,
			CheckIn:     sess.form.CheckIn,
			CheckOut:    sess.form.CheckOut,
			Preferences: prefs,
		},
		Summary: s.summaryLocked(sess),
	}
}

// summaryLocked builds the action-bar summary, nil until a plan exists;
// sess.mu must be held.
func (s *TripService) summaryLocked(sess *tripSession) *dto.TripSummary {
	if sess.plan == nil {
		return nil
	}

	headingParts := make([]string, 0, 2)
	if sess.form.Destination != "" {
		headingParts = append(headingParts, sess.form.Destination)
	}
	if sess.form.Country != "" {
		headingParts = append(headingParts, sess.form.Country)
	}

	subheading := fmt.Sprintf("%d days", sess.form.Days)
	if sess.form.CheckIn != "" && sess.form.CheckOut != "" {
		subheading += " • " + sess.form.CheckIn + " to " + sess.form.CheckOut
	}

	return &dto.TripSummary{
		Heading:     strings.Join(headingParts, ", "),
		Subheading:  subheading,
		HotelCount:  len(sess.plan.Hotels),
		FlightCount: len(sess.plan.Flights),
	}
}
