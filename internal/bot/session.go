package bot

import (
	"autoparts-bot/internal/storage"
	"sync"
)

// OrderDraft accumulates the user's answers while the dialogue runs.
// Each step handler sets exactly the fields its step collects.
type OrderDraft struct {
	City     string
	CarBrand string
	CarModel string
	CarYear  int

	// Exactly one of VINText, VINPhotoID or VINSkipped holds once the VIN
	// step is passed.
	VINSkipped bool
	VINText    string
	VINPhotoID string

	EngineVolume string
	FuelType     string

	Parts []storage.Part
	// CurrentPart is the scratch slot for the item being built; it is moved
	// into Parts when its sub-sequence completes.
	CurrentPart *storage.Part

	ContactName  string
	ContactPhone string
}

// Session is one user's conversational context.
type Session struct {
	Step string
	// Editing marks a single-field correction: the terminal handler of the
	// edited field clears it and returns to the summary instead of advancing.
	Editing bool
	Draft   OrderDraft
}

// SessionStore keeps in-progress sessions in memory, keyed by chat id.
// Sessions deliberately do not survive a process restart.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

// Start replaces any existing session with a fresh one at the first step.
func (s *SessionStore) Start(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{Step: StepCity}
	s.sessions[chatID] = sess
	return sess
}

func (s *SessionStore) Get(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	return sess, ok
}

func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}
