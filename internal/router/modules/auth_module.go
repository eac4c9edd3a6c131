package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rzkmak/auth-service/internal/container"
	handlers "github.com/rzkmak/auth-service/internal/interface/http"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

// AuthModule wires the credential and token-lifecycle routes.
// Public: POST /api/signup, POST /api/signin, PATCH /api/refresh-token
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public with per-IP rate limits. Credential endpoints are throttled
	// harder than refresh.
	signUpLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	signInLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/signup", signUpLimiter, m.Handler.SignUp)
	rg.POST("/signin", signInLimiter, m.Handler.SignIn)
	rg.PATCH("/refresh-token", refreshLimiter, m.Handler.Refresh)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
