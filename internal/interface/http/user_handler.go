package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rzkmak/auth-service/internal/application"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/pkg/response"
)

type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Me handles GET /me and returns the authenticated profile.
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		// Token subject no longer resolves to a user.
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	c.JSON(http.StatusOK, NewProfileBody(u))
}
