package service

import (
	"context"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TripPlanner/internal/model"
	"TripPlanner/internal/model/dto"
	pkgerrors "TripPlanner/pkg/errors"
	"TripPlanner/pkg/logger"
	"TripPlanner/pkg/snowflake"
)

func TestMain(m *testing.M) {
	logger.Init()
	if err := snowflake.Init(1, 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakePlanner struct {
	mu    sync.Mutex
	calls int32
	plan  *model.TripPlan
	err   error
	// when set, Plan blocks until the channel is closed
	block chan struct{}
}

func (p *fakePlanner) Plan(ctx context.Context, req model.TripRequest) (*model.TripPlan, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.block != nil {
		<-p.block
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.plan, nil
}

func (p *fakePlanner) callCount() int32 {
	return atomic.LoadInt32(&p.calls)
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *fakeNotifier) NotifySuccess(ctx context.Context, tripID int64, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) NotifyError(ctx context.Context, tripID int64, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, message)
}

func (n *fakeNotifier) lastSuccess() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.successes) == 0 {
		return ""
	}
	return n.successes[len(n.successes)-1]
}

func (n *fakeNotifier) lastFailure() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.failures) == 0 {
		return ""
	}
	return n.failures[len(n.failures)-1]
}

type fakeCache struct {
	mu    sync.Mutex
	plans map[string]*model.TripPlan
}

func newFakeCache() *fakeCache {
	return &fakeCache{plans: make(map[string]*model.TripPlan)}
}

func (c *fakeCache) Get(ctx context.Context, fingerprint string) (*model.TripPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	plan, ok := c.plans[fingerprint]
	return plan, ok
}

func (c *fakeCache) Set(ctx context.Context, fingerprint string, plan *model.TripPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[fingerprint] = plan
}

func samplePlan() *model.TripPlan {
	return &model.TripPlan{
		Itinerary: &model.Itinerary{
			Title:      "Tokyo Adventure",
			DailyPlans: []model.DayPlan{{Day: 1, Title: "Arrival"}},
		},
		Hotels:  []model.HotelOffer{{Name: "Park Hyatt Tokyo"}},
		Flights: []model.FlightOffer{{}, {}},
	}
}

func newTestService(planner *fakePlanner) (*TripService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	return NewTripService(planner, notifier, newFakeCache()), notifier
}

func createTrip(t *testing.T, svc *TripService) int64 {
	t.Helper()
	snap, err := svc.CreateTrip(context.Background())
	require.NoError(t, err)
	id, err := strconv.ParseInt(snap.TripID, 10, 64)
	require.NoError(t, err)
	return id
}

func fillValidForm(t *testing.T, svc *TripService, tripID int64) {
	t.Helper()
	dest, country, days := "Tokyo", "Japan", 7
	checkIn, checkOut := "2026-04-01", "2026-04-08"
	_, err := svc.UpdateForm(context.Background(), tripID, dto.UpdateFormRequest{
		Destination: &dest,
		Country:     &country,
		Days:        &days,
		CheckIn:     &checkIn,
		CheckOut:    &checkOut,
	})
	require.NoError(t, err)
}

func waitForStatus(t *testing.T, svc *TripService, tripID int64, status model.RequestStatus) *dto.TripSnapshot {
	t.Helper()
	var snap *dto.TripSnapshot
	require.Eventually(t, func() bool {
		var err error
		snap, err = svc.GetTrip(context.Background(), tripID)
		require.NoError(t, err)
		return snap.Status == string(status)
	}, 2*time.Second, 10*time.Millisecond)
	return snap
}

func TestCreateTripDefaults(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})

	snap, err := svc.CreateTrip(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "idle", snap.Status)
	assert.Equal(t, "itinerary", snap.ActiveTab)
	assert.Equal(t, 7, snap.Form.Days)
	assert.Empty(t, snap.Form.Destination)
	assert.Nil(t, snap.Summary)
	for _, selected := range snap.Form.Preferences {
		assert.False(t, selected)
	}
}

func TestGetTripNotFound(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})

	_, err := svc.GetTrip(context.Background(), 12345)
	assert.Equal(t, pkgerrors.TripNotFound, err)
}

func TestUpdateFormPartial(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)

	dest := "Tokyo"
	snap, err := svc.UpdateForm(context.Background(), tripID, dto.UpdateFormRequest{Destination: &dest})
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", snap.Form.Destination)
	// untouched fields keep their values
	assert.Equal(t, 7, snap.Form.Days)
	assert.Equal(t, "idle", snap.Status)
}

func TestTogglePreference(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)

	snap, err := svc.TogglePreference(context.Background(), tripID, "food")
	require.NoError(t, err)
	assert.True(t, snap.Form.Preferences["food"])

	snap, err = svc.TogglePreference(context.Background(), tripID, "food")
	require.NoError(t, err)
	assert.False(t, snap.Form.Preferences["food"])

	_, err = svc.TogglePreference(context.Background(), tripID, "skydiving")
	assert.Equal(t, pkgerrors.InvalidPreference, err)
}

func TestSubmitValidationLeavesStatusUntouched(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan()}
	svc, notifier := newTestService(planner)
	tripID := createTrip(t, svc)

	// empty destination
	_, err := svc.Submit(context.Background(), tripID)
	assert.Equal(t, pkgerrors.EmptyDestination, err)
	assert.Equal(t, "Please enter a destination", notifier.lastFailure())

	// out-of-range duration
	dest, days := "Tokyo", 31
	_, err = svc.UpdateForm(context.Background(), tripID, dto.UpdateFormRequest{Destination: &dest, Days: &days})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), tripID)
	assert.Equal(t, pkgerrors.InvalidDuration, err)
	assert.Equal(t, "Trip duration must be between 1 and 30 days", notifier.lastFailure())

	snap, err := svc.GetTrip(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "idle", snap.Status)
	assert.EqualValues(t, 0, planner.callCount())
}

func TestSubmitSuccess(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan()}
	svc, notifier := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	snap, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "loading", snap.Status)

	snap = waitForStatus(t, svc, tripID, model.StatusSuccess)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "itinerary", snap.ActiveTab)

	require.NotNil(t, snap.Summary)
	assert.Equal(t, "Tokyo, Japan", snap.Summary.Heading)
	assert.Equal(t, "7 days • 2026-04-01 to 2026-04-08", snap.Summary.Subheading)
	assert.Equal(t, 1, snap.Summary.HotelCount)
	assert.Equal(t, 2, snap.Summary.FlightCount)

	require.Eventually(t, func() bool {
		return notifier.lastSuccess() == "Trip plan generated!"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmitWhileLoadingRejected(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan(), block: make(chan struct{})}
	svc, _ := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), tripID)
	assert.Equal(t, pkgerrors.SubmitInFlight, err)

	// the form is locked while loading
	dest := "Osaka"
	_, err = svc.UpdateForm(context.Background(), tripID, dto.UpdateFormRequest{Destination: &dest})
	assert.Equal(t, pkgerrors.FormLocked, err)
	_, err = svc.TogglePreference(context.Background(), tripID, "food")
	assert.Equal(t, pkgerrors.FormLocked, err)

	close(planner.block)
	waitForStatus(t, svc, tripID, model.StatusSuccess)

	assert.EqualValues(t, 1, planner.callCount())
}

func TestSubmitPlannerFailure(t *testing.T) {
	planner := &fakePlanner{err: pkgerrors.PlannerFailed}
	svc, notifier := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)

	snap := waitForStatus(t, svc, tripID, model.StatusError)
	assert.Equal(t, "Failed to generate trip plan", snap.Error)
	assert.Nil(t, snap.Summary)

	require.Eventually(t, func() bool {
		return notifier.lastFailure() == "Failed to generate trip plan"
	}, 2*time.Second, 10*time.Millisecond)
}

// retryPlanner fails the first call and blocks subsequent ones until released.
type retryPlanner struct {
	calls   int32
	release chan struct{}
	plan    *model.TripPlan
}

func (p *retryPlanner) Plan(ctx context.Context, req model.TripRequest) (*model.TripPlan, error) {
	if atomic.AddInt32(&p.calls, 1) == 1 {
		return nil, pkgerrors.PlannerFailed
	}
	<-p.release
	return p.plan, nil
}

func TestLoadingRetainsPreviousError(t *testing.T) {
	planner := &retryPlanner{release: make(chan struct{}), plan: samplePlan()}
	svc := NewTripService(planner, &fakeNotifier{}, newFakeCache())
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	snap := waitForStatus(t, svc, tripID, model.StatusError)
	require.Equal(t, "Failed to generate trip plan", snap.Error)

	snap, err = svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "loading", snap.Status)
	assert.Equal(t, "Failed to generate trip plan", snap.Error)

	snap, err = svc.GetTrip(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "loading", snap.Status)
	assert.Equal(t, "Failed to generate trip plan", snap.Error)

	close(planner.release)
	snap = waitForStatus(t, svc, tripID, model.StatusSuccess)
	assert.Empty(t, snap.Error)
}

func TestErrorThenSuccessClearsError(t *testing.T) {
	planner := &fakePlanner{err: pkgerrors.PlannerUnavailable}
	svc, _ := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	snap := waitForStatus(t, svc, tripID, model.StatusError)
	assert.Equal(t, "Planning service unavailable", snap.Error)

	planner.mu.Lock()
	planner.err = nil
	planner.plan = samplePlan()
	planner.mu.Unlock()

	_, err = svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	snap = waitForStatus(t, svc, tripID, model.StatusSuccess)
	assert.Empty(t, snap.Error)
	assert.NotNil(t, snap.Summary)
}

func TestSelectTab(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)

	snap, err := svc.SelectTab(context.Background(), tripID, "hotels")
	require.NoError(t, err)
	assert.Equal(t, "hotels", snap.ActiveTab)

	// selecting the current tab is a no-op
	snap, err = svc.SelectTab(context.Background(), tripID, "hotels")
	require.NoError(t, err)
	assert.Equal(t, "hotels", snap.ActiveTab)

	_, err = svc.SelectTab(context.Background(), tripID, "beaches")
	assert.Equal(t, pkgerrors.InvalidTab, err)
}

func TestViewRequiresPlan(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)

	_, err := svc.View(context.Background(), tripID, "")
	assert.Equal(t, pkgerrors.PlanNotReady, err)
}

func TestViewTabsAndOverride(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	waitForStatus(t, svc, tripID, model.StatusSuccess)

	view, err := svc.View(context.Background(), tripID, "")
	require.NoError(t, err)
	assert.Equal(t, "itinerary", view.Tab)
	require.NotNil(t, view.Itinerary)
	assert.Nil(t, view.Hotels)
	assert.Nil(t, view.Flights)

	// override renders another tab without switching the active one
	view, err = svc.View(context.Background(), tripID, "hotels")
	require.NoError(t, err)
	assert.Equal(t, "hotels", view.Tab)
	require.NotNil(t, view.Hotels)
	require.Len(t, view.Hotels.Cards, 1)

	snap, err := svc.GetTrip(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "itinerary", snap.ActiveTab)

	_, err = svc.View(context.Background(), tripID, "beaches")
	assert.Equal(t, pkgerrors.InvalidTab, err)
}

func TestResetKeepsForm(t *testing.T) {
	svc, _ := newTestService(&fakePlanner{plan: samplePlan()})
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	waitForStatus(t, svc, tripID, model.StatusSuccess)

	_, err = svc.SelectTab(context.Background(), tripID, "flights")
	require.NoError(t, err)

	snap, err := svc.Reset(context.Background(), tripID)
	require.NoError(t, err)

	assert.Equal(t, "idle", snap.Status)
	assert.Equal(t, "itinerary", snap.ActiveTab)
	assert.Empty(t, snap.Error)
	assert.Nil(t, snap.Summary)
	assert.Equal(t, "Tokyo", snap.Form.Destination)
	assert.Equal(t, 7, snap.Form.Days)
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan(), block: make(chan struct{})}
	svc, _ := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)

	_, err = svc.Reset(context.Background(), tripID)
	require.NoError(t, err)

	close(planner.block)

	// the stale result must never surface
	time.Sleep(100 * time.Millisecond)
	snap, err := svc.GetTrip(context.Background(), tripID)
	require.NoError(t, err)
	assert.Equal(t, "idle", snap.Status)
	assert.Nil(t, snap.Summary)
}

func TestIdenticalResubmitServedFromCache(t *testing.T) {
	planner := &fakePlanner{plan: samplePlan()}
	svc, _ := newTestService(planner)
	tripID := createTrip(t, svc)
	fillValidForm(t, svc, tripID)

	_, err := svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	waitForStatus(t, svc, tripID, model.StatusSuccess)

	_, err = svc.Reset(context.Background(), tripID)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), tripID)
	require.NoError(t, err)
	waitForStatus(t, svc, tripID, model.StatusSuccess)

	assert.EqualValues(t, 1, planner.callCount())
}
