package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rzkmak/auth-service/internal/interface/transport"
	"github.com/rzkmak/auth-service/pkg/helpers"
	"github.com/rzkmak/auth-service/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// RequireAuth validates the bearer access token and injects the subject and
// email into the Gin context. Every failure mode (missing header, bad
// signature, expiry) produces the same 401 body.
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := transport.NewGinContext(c).BearerToken()
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims := jwt.VerifyAccessToken(token)
		if claims == nil {
			response.AbortError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Set(CtxUserIDKey, claims.Subject)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}
