package router

import (
	"github.com/rzkmak/auth-service/internal/application"
	"github.com/rzkmak/auth-service/internal/container"
	pginfra "github.com/rzkmak/auth-service/internal/infrastructure/postgres"
	gql "github.com/rzkmak/auth-service/internal/interface/graphql"
	handlers "github.com/rzkmak/auth-service/internal/interface/http"
	"github.com/rzkmak/auth-service/internal/router/modules"
	"github.com/rzkmak/auth-service/pkg/helpers"
)

type authDeps struct {
	Service     *application.Service
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	GraphQL     *gql.Handler
}

func buildAuthDeps() (authDeps, error) {
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := application.NewService(
		repo,
		container.GetJWT(),
		helpers.NewHasher(),
		container.GetLogger(),
	)

	graphqlHandler, err := gql.NewHandler(service, container.GetLogger())
	if err != nil {
		return authDeps{}, err
	}

	return authDeps{
		Service:     service,
		AuthHandler: handlers.NewAuthHandler(service, container.GetLogger()),
		UserHandler: handlers.NewUserHandler(service, container.GetLogger()),
		GraphQL:     graphqlHandler,
	}, nil
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) error {
	deps, err := buildAuthDeps()
	if err != nil {
		return err
	}
	r.Add(modules.NewAuthModule(deps.AuthHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(deps.UserHandler, deps.GraphQL, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
