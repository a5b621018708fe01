package assistant

import (
	"sync"
	"time"

	order_cache "github.com/Modeva-Ecommerce/ops-dashboard-backend/cache"
	"github.com/Modeva-Ecommerce/ops-dashboard-backend/models"
	"github.com/google/uuid"
)

// State is where a session stands with respect to its pending fetch.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingFetch State = "awaiting_fetch"
	StateReady         State = "ready"
)

// fetch is one in-flight order load. done is closed once err is set and the view updated.
type fetch struct {
	rng  models.DateRange
	done chan struct{}
	err  error
}

// Session is one assistant conversation with its own loaded order view.
type Session struct {
	ID        string
	CreatedAt time.Time

	exec sync.Mutex // serializes queries within the session
	view *order_cache.View

	mu       sync.RWMutex
	messages []models.Message
	state    State
	inflight map[string]*fetch
}

func newSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		view:      order_cache.NewView(),
		messages:  make([]models.Message, 0),
		state:     StateIdle,
		inflight:  make(map[string]*fetch),
	}
}

func (s *Session) append(msgs ...models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Loaded exposes the session's current order view.
func (s *Session) Loaded() (*models.DateRange, []models.Order) {
	return s.view.Loaded()
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session), now: time.Now}
}

func (st *SessionStore) Create() *Session {
	s := newSession(st.now())
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s, nil
}

// Resolve returns the session for id, creating a new one when id is empty.
func (st *SessionStore) Resolve(id string) (*Session, error) {
	if id == "" {
		return st.Create(), nil
	}
	return st.Get(id)
}

func (st *SessionStore) Messages(id string) ([]models.Message, error) {
	s, err := st.Get(id)
	if err != nil {
		return nil, err
	}
	return s.Messages(), nil
}

// Clear empties the transcript. Loaded orders are kept.
func (st *SessionStore) Clear(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.messages = make([]models.Message, 0)
	s.mu.Unlock()
	return nil
}
