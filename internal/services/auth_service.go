package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"storefront-service/internal/clients"
	"storefront-service/internal/models"
	"storefront-service/internal/state"
)

// ErrNotAwaitingOTP is returned when OTP verification is attempted on a
// session that has no pending OTP challenge.
var ErrNotAwaitingOTP = errors.New("no OTP verification is pending for this session")

// AuthService drives the per-session auth state machine. Transitions are
// computed from backend responses and persisted to the auth store; the
// bearer token never leaves the service tier.
type AuthService struct {
	sessions   state.AuthStore
	authClient *clients.AuthClient
	cartSvc    *CartService
}

// NewAuthService creates an auth service. cartSvc is used to merge the
// anonymous cart into the account cart after a successful login and may
// be nil in tests that do not exercise the merge.
func NewAuthService(sessions state.AuthStore, authClient *clients.AuthClient, cartSvc *CartService) *AuthService {
	return &AuthService{
		sessions:   sessions,
		authClient: authClient,
		cartSvc:    cartSvc,
	}
}

// Resolve loads the session state for an ID, returning a fresh anonymous
// session when none is stored or the stored one is unreadable. A stored
// token past its expiry downgrades the session to anonymous locally,
// without a round trip to the backend.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*models.SessionState, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			session = models.NewSessionState(sessionID)
			if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
				return nil, saveErr
			}
			return session, nil
		}
		return nil, err
	}

	if session.Status == models.SessionStatusAuthenticated &&
		session.TokenExpiry != nil && time.Now().After(*session.TokenExpiry) {
		log.WithField("sessionId", sessionID).Info("stored token expired, downgrading session to anonymous")
		session.Reset()
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// Login runs the login transition. Success moves the session to
// AWAITING_OTP (backend requested a second factor) or straight to
// AUTHENTICATED. Failure leaves the session anonymous with the error
// recorded for the UI.
func (s *AuthService) Login(ctx context.Context, session *models.SessionState, req clients.LoginRequest) error {
	if session.Status != models.SessionStatusAnonymous {
		// Re-login from any state starts the machine over.
		session.Reset()
	}

	result, err := s.authClient.Login(ctx, req)
	if err != nil {
		session.Error = userMessage(err)
		session.UpdatedAt = time.Now()
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			log.WithError(saveErr).Error("failed to persist session after login failure")
		}
		return err
	}

	session.Error = ""
	if result.RequiresOTP {
		session.Status = models.SessionStatusAwaitingOTP
		session.OTPSent = true
		session.RequiresOTP = true
		session.PendingEmail = result.Email
		if session.PendingEmail == "" {
			session.PendingEmail = req.EmailOrPhone
		}
		session.UpdatedAt = time.Now()
		return s.sessions.Save(ctx, session)
	}

	s.applyAuthenticated(ctx, session, result)
	return s.sessions.Save(ctx, session)
}

// VerifyOTP completes a pending OTP challenge. Only valid from
// AWAITING_OTP; a failed verification keeps the session in AWAITING_OTP
// with the error recorded so the user can retry.
func (s *AuthService) VerifyOTP(ctx context.Context, session *models.SessionState, req clients.VerifyOTPRequest) error {
	if session.Status != models.SessionStatusAwaitingOTP {
		return ErrNotAwaitingOTP
	}
	if req.EmailOrPhone == "" {
		req.EmailOrPhone = session.PendingEmail
	}

	result, err := s.authClient.VerifyOTP(ctx, req)
	if err != nil {
		session.Error = userMessage(err)
		session.UpdatedAt = time.Now()
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			log.WithError(saveErr).Error("failed to persist session after OTP failure")
		}
		return err
	}

	session.Error = ""
	s.applyAuthenticated(ctx, session, result)
	return s.sessions.Save(ctx, session)
}

// Register creates an account. Like login, the outcome either carries a
// token directly or flags a pending OTP verification.
func (s *AuthService) Register(ctx context.Context, session *models.SessionState, req clients.RegisterRequest) error {
	result, err := s.authClient.Register(ctx, req)
	if err != nil {
		session.Error = userMessage(err)
		session.UpdatedAt = time.Now()
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			log.WithError(saveErr).Error("failed to persist session after registration failure")
		}
		return err
	}

	session.Error = ""
	if result.RequiresOTP || result.Token == "" {
		session.Status = models.SessionStatusAwaitingOTP
		session.OTPSent = true
		session.RequiresOTP = true
		session.PendingEmail = req.Email
		session.UpdatedAt = time.Now()
		return s.sessions.Save(ctx, session)
	}

	s.applyAuthenticated(ctx, session, result)
	return s.sessions.Save(ctx, session)
}

// Logout clears the session back to anonymous. The backend token
// invalidation is best-effort; local state is cleared regardless.
func (s *AuthService) Logout(ctx context.Context, session *models.SessionState) error {
	if session.Token != "" {
		if err := s.authClient.Logout(ctx, session.Token); err != nil {
			log.WithError(err).WithField("sessionId", session.SessionID).Warn("backend logout failed, clearing session locally")
		}
	}
	session.Reset()
	return s.sessions.Save(ctx, session)
}

// UpdateProfile updates the authenticated user's profile and refreshes
// the cached user on the session.
func (s *AuthService) UpdateProfile(ctx context.Context, session *models.SessionState, updates map[string]interface{}) (*models.User, error) {
	user, err := s.authClient.UpdateProfile(ctx, session.Token, updates)
	if err != nil {
		return nil, err
	}
	session.User = user
	session.UpdatedAt = time.Now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePreferences stores the UI preferences (language, currency,
// country) on the session.
func (s *AuthService) UpdatePreferences(ctx context.Context, session *models.SessionState, prefs models.Preferences) error {
	if prefs.Language != "" {
		session.Preferences.Language = prefs.Language
	}
	if prefs.Currency != "" {
		session.Preferences.Currency = prefs.Currency
	}
	if prefs.Country != "" {
		session.Preferences.Country = prefs.Country
	}
	session.UpdatedAt = time.Now()
	return s.sessions.Save(ctx, session)
}

// Save persists the session state. Exposed for handlers that mutate
// session fields directly (search history, error clearing).
func (s *AuthService) Save(ctx context.Context, session *models.SessionState) error {
	session.UpdatedAt = time.Now()
	return s.sessions.Save(ctx, session)
}

// applyAuthenticated moves the session to AUTHENTICATED and kicks off
// the cart merge for the freshly logged-in account.
func (s *AuthService) applyAuthenticated(ctx context.Context, session *models.SessionState, result *clients.AuthResult) {
	session.Status = models.SessionStatusAuthenticated
	session.User = result.User
	session.Token = result.Token
	session.TokenExpiry = tokenExpiry(result.Token)
	session.OTPSent = false
	session.RequiresOTP = false
	session.PendingEmail = ""
	session.UpdatedAt = time.Now()

	if s.cartSvc != nil {
		if err := s.cartSvc.MergeOnLogin(ctx, session); err != nil {
			log.WithError(err).WithField("sessionId", session.SessionID).Warn("cart merge on login failed")
		}
	}
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. The token was just issued by the backend over TLS; the
// claim is only used to expire the session locally.
func tokenExpiry(token string) *time.Time {
	if token == "" {
		return nil
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	return &exp.Time
}

// userMessage extracts a message safe to show the user from a client
// error. Backend error bodies come through as-is; transport failures
// collapse to a generic message.
func userMessage(err error) string {
	var apiErr *clients.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "service temporarily unavailable, please try again"
}
