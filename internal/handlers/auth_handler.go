package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/clients"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// AuthHandler handles login, OTP verification, registration and session
// introspection. Every response returns the full session state so the
// UI can render directly from it; the backend token is never included.
type AuthHandler struct {
	authSvc *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *services.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	EmailOrPhone string `json:"emailOrPhone" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	session := middleware.GetSession(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "emailOrPhone and password are required"})
		return
	}

	err := h.authSvc.Login(c.Request.Context(), session, clients.LoginRequest{
		EmailOrPhone: req.EmailOrPhone,
		Password:     req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

type verifyOTPRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	OTP          string `json:"otp" binding:"required"`
}

// VerifyOTP handles POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	session := middleware.GetSession(c)

	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "otp is required"})
		return
	}

	err := h.authSvc.VerifyOTP(c.Request.Context(), session, clients.VerifyOTPRequest{
		EmailOrPhone: req.EmailOrPhone,
		OTP:          req.OTP,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	session := middleware.GetSession(c)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload: " + err.Error()})
		return
	}

	err := h.authSvc.Register(c.Request.Context(), session, clients.RegisterRequest{
		Email:    req.Email,
		Phone:    req.Phone,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.GetSession(c)

	if err := h.authSvc.Logout(c.Request.Context(), session); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession handles GET /api/v1/auth/session. This is the hydrate
// call the UI makes on page load to restore its state.
func (h *AuthHandler) GetSession(c *gin.Context) {
	session := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	session := middleware.GetSession(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), session, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdatePreferences handles PUT /api/v1/preferences
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	session := middleware.GetSession(c)

	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences payload"})
		return
	}

	if err := h.authSvc.UpdatePreferences(c.Request.Context(), session, prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": session.Preferences})
}
