package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/clients"
	"storefront-service/internal/models"
	"storefront-service/internal/state"
)

// newTestAuthService wires an auth service against a fake marketplace
// API and the in-memory store.
func newTestAuthService(t *testing.T, handler http.Handler) (*AuthService, *state.MemoryStore) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := clients.NewBackend(server.URL, 5*time.Second)
	store := state.NewMemoryStore(time.Hour)
	cartSvc := NewCartService(store.CartStore(), store.WishlistStore(), clients.NewCartClient(backend), clients.NewProductsClient(backend))
	authSvc := NewAuthService(store, clients.NewAuthClient(backend), cartSvc)
	return authSvc, store
}

func TestLoginWithOTPChallenge(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"requiresOTP": true,
			"otpSent":     true,
			"email":       "buyer@example.com",
		})
	})
	authSvc, _ := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	err := authSvc.Login(context.Background(), session, clients.LoginRequest{EmailOrPhone: "buyer@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAwaitingOTP, session.Status)
	assert.True(t, session.OTPSent)
	assert.Equal(t, "buyer@example.com", session.PendingEmail)
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, session.Token)
}

func TestLoginDirectAuthentication(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "backend-jwt",
			"user": map[string]interface{}{
				"id":    "u1",
				"email": "buyer@example.com",
				"name":  "Buyer",
				"role":  "ROLE_USER",
			},
		})
	})
	authSvc, store := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	err := authSvc.Login(context.Background(), session, clients.LoginRequest{EmailOrPhone: "buyer@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAuthenticated, session.Status)
	assert.True(t, session.IsAuthenticated())
	require.NotNil(t, session.User)
	assert.Equal(t, models.RoleUser, session.User.Role)
	assert.Equal(t, "backend-jwt", session.Token)

	// The token must survive the round trip through the store.
	stored, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "backend-jwt", stored.Token)
}

func TestLoginFailureStaysAnonymousWithError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
	})
	authSvc, _ := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	err := authSvc.Login(context.Background(), session, clients.LoginRequest{EmailOrPhone: "buyer@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.Equal(t, models.SessionStatusAnonymous, session.Status)
	assert.Equal(t, "invalid credentials", session.Error)
	assert.False(t, session.IsAuthenticated())
}

func TestVerifyOTPRequiresPendingChallenge(t *testing.T) {
	authSvc, _ := newTestAuthService(t, http.NewServeMux())

	session := models.NewSessionState("sess-1")
	err := authSvc.VerifyOTP(context.Background(), session, clients.VerifyOTPRequest{OTP: "123456"})

	assert.ErrorIs(t, err, ErrNotAwaitingOTP)
	assert.Equal(t, models.SessionStatusAnonymous, session.Status)
}

func TestVerifyOTPFailureKeepsAwaitingState(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid OTP"})
	})
	authSvc, _ := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	session.Status = models.SessionStatusAwaitingOTP
	session.OTPSent = true
	session.PendingEmail = "buyer@example.com"

	err := authSvc.VerifyOTP(context.Background(), session, clients.VerifyOTPRequest{OTP: "000000"})

	require.Error(t, err)
	assert.Equal(t, models.SessionStatusAwaitingOTP, session.Status)
	assert.Equal(t, "invalid OTP", session.Error)
	assert.Equal(t, "buyer@example.com", session.PendingEmail)
}

func TestVerifyOTPSuccessAuthenticates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		// The pending email is filled in when the client omits it.
		assert.Equal(t, "buyer@example.com", req["emailOrPhone"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "backend-jwt",
			"user":  map[string]interface{}{"id": "u1", "email": "buyer@example.com", "role": "user"},
		})
	})
	authSvc, _ := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	session.Status = models.SessionStatusAwaitingOTP
	session.OTPSent = true
	session.RequiresOTP = true
	session.PendingEmail = "buyer@example.com"

	err := authSvc.VerifyOTP(context.Background(), session, clients.VerifyOTPRequest{OTP: "123456"})

	require.NoError(t, err)
	assert.True(t, session.IsAuthenticated())
	assert.False(t, session.OTPSent)
	assert.False(t, session.RequiresOTP)
	assert.Empty(t, session.PendingEmail)
	assert.Empty(t, session.Error)
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	authSvc, store := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	session.Status = models.SessionStatusAuthenticated
	session.User = &models.User{ID: "u1"}
	session.Token = "backend-jwt"
	session.Preferences.Language = "fr"

	err := authSvc.Logout(context.Background(), session)

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAnonymous, session.Status)
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
	assert.Equal(t, "fr", session.Preferences.Language)

	stored, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAnonymous, stored.Status)
}

func TestResolveCreatesAnonymousSession(t *testing.T) {
	authSvc, store := newTestAuthService(t, http.NewServeMux())

	session, err := authSvc.Resolve(context.Background(), "fresh-id")

	require.NoError(t, err)
	assert.Equal(t, "fresh-id", session.SessionID)
	assert.Equal(t, models.SessionStatusAnonymous, session.Status)

	// The fresh session is persisted so the next request finds it.
	stored, err := store.Get(context.Background(), "fresh-id")
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAnonymous, stored.Status)
}

func TestResolveDowngradesExpiredToken(t *testing.T) {
	authSvc, store := newTestAuthService(t, http.NewServeMux())

	expired := time.Now().Add(-time.Minute)
	session := models.NewSessionState("sess-1")
	session.Status = models.SessionStatusAuthenticated
	session.User = &models.User{ID: "u1"}
	session.Token = "stale-jwt"
	session.TokenExpiry = &expired
	require.NoError(t, store.Save(context.Background(), session))

	resolved, err := authSvc.Resolve(context.Background(), "sess-1")

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAnonymous, resolved.Status)
	assert.Empty(t, resolved.Token)
}

func TestRegisterWithoutTokenAwaitsVerification(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"otpSent": true})
	})
	authSvc, _ := newTestAuthService(t, mux)

	session := models.NewSessionState("sess-1")
	err := authSvc.Register(context.Background(), session, clients.RegisterRequest{
		Email: "new@example.com", Name: "New User", Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusAwaitingOTP, session.Status)
	assert.Equal(t, "new@example.com", session.PendingEmail)
}
