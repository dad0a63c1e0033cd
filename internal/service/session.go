package service

import (
	"sync"
	"time"

	"TripPlanner/internal/model"
)

// tripSession is one planning workflow: the editable form, the request
// lifecycle state, and the active result tab. All fields are guarded by mu;
// submitSeq invalidates in-flight planner calls after a reset or a newer
// submission.
type tripSession struct {
	mu sync.Mutex

	id         int64
	form       model.FormState
	status     model.RequestStatus
	plan       *model.TripPlan
	errMessage string
	activeTab  model.ResultTab
	submitSeq  uint64

	createdAt time.Time
	touchedAt time.Time
}

func newTripSession(id int64) *tripSession {
	now := time.Now()
	return &tripSession{
		id:        id,
		form:      model.NewFormState(),
		status:    model.StatusIdle,
		activeTab: model.TabItinerary,
		createdAt: now,
		touchedAt: now,
	}
}

// touch must be called with mu held.
func (s *tripSession) touch() {
	s.touchedAt = time.Now()
}

// sessionStore is the in-memory session registry. Sessions idle longer than
// the configured TTL are swept periodically.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*tripSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*tripSession),
	}
}

func (st *sessionStore) add(sess *tripSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.id] = sess
}

func (st *sessionStore) get(id int64) (*tripSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	return sess, ok
}

// sweep removes sessions idle longer than ttl and returns how many were
// dropped. A session stuck in Loading is kept until a later sweep sees it
// idle again, so an in-flight planner call never loses its cell mid-write.
func (st *sessionStore) sweep(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-ttl)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, sess := range st.sessions {
		sess.mu.Lock()
		expired := sess.touchedAt.Before(cutoff) && sess.status != model.StatusLoading
		sess.mu.Unlock()

		if expired {
			delete(st.sessions, id)
			removed++
		}
	}

	return removed
}
