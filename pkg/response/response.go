package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire shape of every failed request. Secrets never pass
// through here: success payloads are shaped by explicit whitelists at the
// handler level, not by field exclusion.
type ErrorBody struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

// TokenPairBody is the sign-in and refresh success payload.
type TokenPairBody struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// MessageBody is a bare informational payload.
type MessageBody struct {
	Message string `json:"message"`
}

// Error writes an ErrorBody without aborting the handler chain.
func Error(c *gin.Context, status int, message string, details map[string]string) {
	c.JSON(status, ErrorBody{StatusCode: status, Message: message, Details: details})
}

// AbortError writes an ErrorBody and aborts the handler chain. Used by
// middleware so later handlers never run on an unauthenticated request.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{StatusCode: status, Message: message})
}
