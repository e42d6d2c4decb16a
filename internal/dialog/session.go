package dialog

import "sync"

// Session stores the wizard position and collected fields for one user.
type Session struct {
	UserID int64
	Step   Step
	Fields Fields
}

// Store keeps per-user sessions in memory. A missing session is
// indistinguishable from an idle session with empty fields. Transitions for
// the same user must not interleave, so the store hands out a per-user lock;
// different users never contend with each other beyond the map lookup.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewStore constructs an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		locks:    make(map[int64]*sync.Mutex),
	}
}

// GetOrCreate returns a copy of the user's session, materializing an idle one
// if the user has not been seen before.
func (s *Store) GetOrCreate(userID int64) Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return *sess
	}
	return Session{UserID: userID, Step: StepIdle}
}

// Save persists the session snapshot for its user.
func (s *Store) Save(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.sessions[sess.UserID]
	if !ok {
		stored = &Session{UserID: sess.UserID}
		s.sessions[sess.UserID] = stored
	}
	stored.Step = sess.Step
	stored.Fields = sess.Fields
}

// Clear resets the user's session to idle with empty fields. The user's lock
// entry is kept: Clear cannot know whether a transition currently holds it,
// and handing out a fresh mutex for the same user would let two transitions
// interleave. One retained mutex per user ever seen is the cost.
func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// InProgress reports whether the user is inside the wizard.
func (s *Store) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return ok && sess.Step != StepIdle
}

// Lock serializes transitions for a single user. The returned mutex is held
// for the whole load-transition-save cycle.
func (s *Store) Lock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}
