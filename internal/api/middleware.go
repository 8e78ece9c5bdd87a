package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"justfit/tracker/internal/identity"
)

// Header carrying the identity-provider access token on every protected route.
const accessTokenHeader = "x-access-token"

// Constants for context keys
const (
	ContextUserIDKey    = "userID"
	ContextUserEmailKey = "userEmail"
)

// AuthMiddleware gates a route group behind the identity provider. A missing
// token fails immediately, before the verifier is consulted; all verifier
// failures collapse into the same generic 401.
func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(accessTokenHeader)
		if token == "" {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		// The derived identity is the only request-scoped state handlers read.
		c.Set(ContextUserIDKey, ident.UserID)
		c.Set(ContextUserEmailKey, ident.Email)

		c.Next()
	}
}

// RequestID tags every response with a correlation id for log greps.
// An id supplied by the caller is echoed back unchanged.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// Helper function to get the verified user ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok || idStr == "" {
		return "", errors.New("invalid user ID in context")
	}
	return idStr, nil
}

// Helper function to get the verified user email from context
func getUserEmailFromContext(c *gin.Context) (string, error) {
	emailRaw, exists := c.Get(ContextUserEmailKey)
	if !exists {
		return "", errors.New("user email not found in context")
	}
	email, ok := emailRaw.(string)
	if !ok {
		return "", errors.New("invalid user email in context")
	}
	return email, nil
}
