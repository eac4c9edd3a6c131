package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rzkmak/auth-service/internal/application"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/internal/interface/transport"
	"github.com/rzkmak/auth-service/pkg/response"
	"github.com/rzkmak/auth-service/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,min=2"`
	LastName  string `json:"lastName" binding:"required,min=2"`
	Password  string `json:"password" binding:"required,max=72,strongpwd"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignUp handles POST /signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, err := h.Svc.SignUp(c.Request.Context(), application.SignUpInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicateEmail):
			// Same message as other sign-up failures; no enumeration.
			response.Error(c, http.StatusBadRequest, "User registration failed", nil)
		case errors.Is(err, application.ErrSecretTooLong):
			// Generic 500 so the hasher's input limit is not leaked.
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		default:
			h.Logger.WithError(err).Error("sign up failed")
			response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, response.MessageBody{Message: "User successfully created"})
}

// SignIn handles POST /signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.ValidateCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	pair, err := h.Svc.GenerateAndSaveTokens(c.Request.Context(), u)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("token issuance failed")
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	c.JSON(http.StatusOK, response.TokenPairBody{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh handles PATCH /refresh-token. The bearer credential here is the
// REFRESH token, not the access token, so the route sits outside the auth
// middleware and verifies the token itself.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := transport.NewGinContext(c).BearerToken()
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	claims := h.Svc.JWT.VerifyRefreshToken(token)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	u, err := h.Svc.GetProfile(c.Request.Context(), claims.Subject)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	pair, err := h.Svc.RefreshTokens(c.Request.Context(), u, token)
	if err != nil {
		if errors.Is(err, application.ErrAccessDenied) {
			response.Error(c, http.StatusForbidden, "Access Denied", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("token rotation failed")
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}

	c.JSON(http.StatusOK, response.TokenPairBody{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout handles POST /logout (access token required)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("logout failed")
		response.Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
