package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// SessionKey is the gin context key the resolved session is stored under.
const SessionKey = "storefront_session"

// SessionMiddleware resolves the caller's session from the Authorization
// bearer value or the X-Session-ID header and stores it on the request
// context. A request with no session ID gets a fresh anonymous session;
// the assigned ID is echoed back in X-Session-ID so the browser can keep
// it. The bearer value here is the opaque session ID, never the backend
// JWT, which stays server-side.
func SessionMiddleware(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := extractSessionID(c)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		session, err := authSvc.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			log.WithError(err).WithField("sessionId", sessionID).Error("failed to resolve session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			c.Abort()
			return
		}

		c.Header("X-Session-ID", session.SessionID)
		c.Set(SessionKey, session)
		c.Next()
	}
}

// extractSessionID pulls the session ID from the Authorization header
// ("Bearer <id>") or the X-Session-ID header.
func extractSessionID(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}
	return c.GetHeader("X-Session-ID")
}

// GetSession returns the session resolved by SessionMiddleware.
func GetSession(c *gin.Context) *models.SessionState {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.SessionState)
	if !ok {
		return nil
	}
	return session
}

// RequireAuthenticated rejects requests whose session is not in the
// AUTHENTICATED state.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil || !session.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects authenticated sessions whose user lacks the role.
// Admins pass every role gate.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil || !session.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !session.User.HasRole(role) && !session.User.HasRole(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
