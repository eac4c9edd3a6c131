package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpwd"`
}

func bindErr(t *testing.T, payload string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Init()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	var s sample
	return c.ShouldBindJSON(&s)
}

func TestToDetailsFieldErrors(t *testing.T) {
	err := bindErr(t, `{"email":"nope","password":"weak"}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Contains(t, details, "password")
}

func TestToDetailsUsesJSONTagNames(t *testing.T) {
	err := bindErr(t, `{}`)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.NotContains(t, details, "Email")
}

func TestToDetailsInvalidJSON(t *testing.T) {
	err := bindErr(t, `{not json`)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsNil(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestStrongPasswordAlias(t *testing.T) {
	assert.NoError(t, bindErr(t, `{"email":"a@b.com","password":"Str0ng!Pass"}`))
}
