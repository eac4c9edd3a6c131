package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rzkmak/auth-service/internal/application"
	"github.com/rzkmak/auth-service/internal/infrastructure/memory"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

func newTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwtm := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	svc := application.NewService(memory.NewUserRepository(), jwtm, &helpers.Hasher{Cost: bcrypt.MinCost}, logger)

	u, err := svc.SignUp(context.Background(), application.SignUpInput{
		Email: "a@b.com", FirstName: "A", LastName: "B", Password: "Str0ng!Pass",
	})
	require.NoError(t, err)
	access, _, err := jwtm.GenerateAccessToken(u.ID, u.Email)
	require.NoError(t, err)

	h, err := NewHandler(svc, logger)
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api")
	auth := api.Group("/")
	auth.Use(middleware.RequireAuth(jwtm))
	auth.POST("/graphql", h.Handle)

	return r, access
}

func post(t *testing.T, r *gin.Engine, query, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(map[string]string{"query": query}))
	req := httptest.NewRequest(http.MethodPost, "/api/graphql", &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMeQuery(t *testing.T) {
	r, access := newTestServer(t)

	w := post(t, r, "{ me { id email firstName lastName } }", access)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Me map[string]any `json:"me"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Errors)
	assert.Equal(t, "a@b.com", resp.Data.Me["email"])
	assert.Equal(t, "A", resp.Data.Me["firstName"])
	assert.Equal(t, "B", resp.Data.Me["lastName"])
	assert.NotEmpty(t, resp.Data.Me["id"])
	assert.NotContains(t, resp.Data.Me, "password")
}

func TestMeQueryWithoutToken(t *testing.T) {
	r, _ := newTestServer(t)
	w := post(t, r, "{ me { id } }", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownField(t *testing.T) {
	r, access := newTestServer(t)
	w := post(t, r, "{ me { password } }", access)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Errors, "schema must not expose a password field")
}
