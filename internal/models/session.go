package models

import "time"

// SessionStatus represents the auth state of a storefront session
type SessionStatus string

const (
	SessionStatusAnonymous     SessionStatus = "ANONYMOUS"
	SessionStatusAwaitingOTP   SessionStatus = "AWAITING_OTP"
	SessionStatusAuthenticated SessionStatus = "AUTHENTICATED"
)

// SessionState holds the per-browser-session auth state machine plus the
// small client-side caches the storefront keeps for the UI (preferences,
// search history). Transitions:
//
//	ANONYMOUS -> AWAITING_OTP   login accepted, backend requires an OTP
//	ANONYMOUS -> AUTHENTICATED  login accepted without OTP
//	AWAITING_OTP -> AUTHENTICATED  OTP verified
//	any -> ANONYMOUS            logout
//
// The backend bearer token is held here server-side and attached to
// upstream calls; the browser only ever sees the opaque session ID.
type SessionState struct {
	SessionID    string        `json:"sessionId"`
	Status       SessionStatus `json:"status"`
	User         *User         `json:"user,omitempty"`
	Token        string        `json:"-"`
	TokenExpiry  *time.Time    `json:"-"`
	OTPSent      bool          `json:"otpSent"`
	RequiresOTP  bool          `json:"requiresOTP"`
	PendingEmail string        `json:"pendingEmail,omitempty"`
	Error        string        `json:"error,omitempty"`

	Preferences   Preferences `json:"preferences"`
	SearchHistory []string    `json:"searchHistory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preferences mirrors the i18n-settings blob the web UI keeps per browser.
type Preferences struct {
	Language string `json:"language,omitempty"`
	Currency string `json:"currency,omitempty"`
	Country  string `json:"country,omitempty"`
}

// NewSessionState returns a fresh anonymous session.
func NewSessionState(sessionID string) *SessionState {
	now := time.Now()
	return &SessionState{
		SessionID: sessionID,
		Status:    SessionStatusAnonymous,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAuthenticated reports whether the session holds a logged-in user.
func (s *SessionState) IsAuthenticated() bool {
	return s != nil && s.Status == SessionStatusAuthenticated && s.User != nil && s.Token != ""
}

// Reset returns the session to a clean anonymous state, keeping only the
// session ID and the UI preferences (logout should not reset language).
func (s *SessionState) Reset() {
	prefs := s.Preferences
	id := s.SessionID
	created := s.CreatedAt
	*s = SessionState{
		SessionID:   id,
		Status:      SessionStatusAnonymous,
		Preferences: prefs,
		CreatedAt:   created,
		UpdatedAt:   time.Now(),
	}
}

// RecordSearch appends a query to the session search history, most recent
// first, dropping duplicates and capping the list at maxSearchHistory.
func (s *SessionState) RecordSearch(query string) {
	const maxSearchHistory = 20

	if query == "" {
		return
	}
	history := make([]string, 0, len(s.SearchHistory)+1)
	history = append(history, query)
	for _, q := range s.SearchHistory {
		if q != query {
			history = append(history, q)
		}
	}
	if len(history) > maxSearchHistory {
		history = history[:maxSearchHistory]
	}
	s.SearchHistory = history
}
