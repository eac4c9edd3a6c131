// Package graphql serves the query surface of the service. It reuses the
// same bearer middleware as the REST routes; only the transport shape
// differs.
package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"

	"github.com/rzkmak/auth-service/internal/application"
	"github.com/rzkmak/auth-service/internal/interface/middleware"
	"github.com/rzkmak/auth-service/pkg/response"
	"github.com/rzkmak/auth-service/pkg/validation"
)

type Handler struct {
	Svc    *application.Service
	Logger *logrus.Logger
	schema graphql.Schema
}

func NewHandler(svc *application.Service, logger *logrus.Logger) (*Handler, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					root, _ := p.Info.RootValue.(map[string]interface{})
					return root["me"], nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query})
	if err != nil {
		return nil, err
	}
	return &Handler{Svc: svc, Logger: logger, schema: schema}, nil
}

type request struct {
	Query         string                 `json:"query" binding:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handle serves POST /graphql. The route sits behind RequireAuth, so the
// resolved user is passed to the executor explicitly as the root value.
func (h *Handler) Handle(c *gin.Context) {
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
		RootObject: map[string]interface{}{
			// Whitelisted shape; hash fields are never copied in.
			"me": map[string]interface{}{
				"id":        u.ID,
				"email":     u.Email,
				"firstName": u.FirstName,
				"lastName":  u.LastName,
			},
		},
	})
	c.JSON(http.StatusOK, result)
}
