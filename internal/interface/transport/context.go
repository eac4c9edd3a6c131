// Package transport abstracts where a request came from. Handlers and
// middleware depend on RequestContext instead of a concrete transport, so
// the same bearer-token extraction serves the REST and GraphQL surfaces.
package transport

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequestContext is the capability a transport adapter must provide.
type RequestContext interface {
	// BearerToken returns the credential from the Authorization header,
	// or false when the header is absent or not a bearer scheme.
	BearerToken() (string, bool)
}

// GinContext adapts a gin request.
type GinContext struct {
	c *gin.Context
}

func NewGinContext(c *gin.Context) GinContext {
	return GinContext{c: c}
}

func (g GinContext) BearerToken() (string, bool) {
	return bearerFromHeader(g.c.GetHeader("Authorization"))
}

// HTTPRequest adapts a plain http.Request, which is how the GraphQL
// executor sees the transport.
type HTTPRequest struct {
	r *http.Request
}

func NewHTTPRequest(r *http.Request) HTTPRequest {
	return HTTPRequest{r: r}
}

func (h HTTPRequest) BearerToken() (string, bool) {
	return bearerFromHeader(h.r.Header.Get("Authorization"))
}

func bearerFromHeader(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

var (
	_ RequestContext = GinContext{}
	_ RequestContext = HTTPRequest{}
)
