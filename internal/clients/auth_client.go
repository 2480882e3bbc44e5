package clients

import (
	"context"
	"net/http"

	"storefront-service/internal/models"
)

// AuthClient wraps the /api/auth endpoints. All operations here are
// user-initiated writes: errors are returned to the caller so the UI can
// surface them, and nothing is retried.
type AuthClient struct {
	backend *Backend
}

// NewAuthClient creates an auth client.
func NewAuthClient(backend *Backend) *AuthClient {
	return &AuthClient{backend: backend}
}

// LoginRequest is the credentials payload for login.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// VerifyOTPRequest is the payload for OTP verification.
type VerifyOTPRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	OTP          string `json:"otp"`
}

// backendUser is the raw user shape the auth API returns. Role strings
// arrive in several historical spellings and are normalized in ToUser.
type backendUser struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Role       string   `json:"role"`
	Roles      []string `json:"roles"`
	IsVerified bool     `json:"isVerified"`
}

func (u *backendUser) toUser() *models.User {
	if u == nil {
		return nil
	}
	user := &models.User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Role:       models.NormalizeRole(u.Role),
		IsVerified: u.IsVerified,
	}
	if len(u.Roles) > 0 {
		user.Roles = models.NormalizeRoles(u.Roles)
		if user.Role == models.RoleUnknown {
			user.Role = user.Roles[0]
		}
	}
	return user
}

// AuthResult is the normalized outcome of login, OTP verification and
// registration calls.
type AuthResult struct {
	RequiresOTP bool
	Email       string
	Token       string
	User        *models.User
}

type authResponse struct {
	RequiresOTP bool         `json:"requiresOTP"`
	OTPSent     bool         `json:"otpSent"`
	Email       string       `json:"email"`
	Token       string       `json:"token"`
	User        *backendUser `json:"user"`
}

func (r *authResponse) toResult() *AuthResult {
	return &AuthResult{
		RequiresOTP: r.RequiresOTP,
		Email:       r.Email,
		Token:       r.Token,
		User:        r.User.toUser(),
	}
}

// Login authenticates credentials. A response flagged requiresOTP carries
// no token yet; the pending email identifies the OTP challenge.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	var resp authResponse
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

// VerifyOTP completes an OTP challenge and returns the issued token.
func (c *AuthClient) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResult, error) {
	var resp authResponse
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/auth/verify-otp", "", req, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

// Register creates an account. Depending on backend policy the response
// either carries a token directly or flags an OTP verification step.
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var resp authResponse
	if err := c.backend.DoJSON(ctx, http.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return resp.toResult(), nil
}

// Logout invalidates the token server-side. Best-effort: the session is
// cleared locally regardless, so callers may log and ignore the error.
func (c *AuthClient) Logout(ctx context.Context, token string) error {
	return c.backend.DoJSON(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

// UpdateProfile updates the authenticated user's profile. User-initiated
// write: errors surface.
func (c *AuthClient) UpdateProfile(ctx context.Context, token string, updates map[string]interface{}) (*models.User, error) {
	var resp struct {
		User *backendUser `json:"user"`
	}
	if err := c.backend.DoJSON(ctx, http.MethodPut, "/api/auth/profile", token, updates, &resp); err != nil {
		return nil, err
	}
	return resp.User.toUser(), nil
}
