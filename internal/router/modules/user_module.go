package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rzkmak/auth-service/internal/container"
	gql "github.com/rzkmak/auth-service/internal/interface/graphql"
	handlers "github.com/rzkmak/auth-service/internal/interface/http"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

// UserModule wires profile retrieval over both transports.
// Protected: GET /api/me, POST /api/graphql
type UserModule struct {
	Handler *handlers.UserHandler
	GraphQL *gql.Handler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, g *gql.Handler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, GraphQL: g, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/graphql", m.GraphQL.Handle)
	}
}
