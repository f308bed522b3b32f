package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/gatehouse/authengine/api/handler"
)

type Handlers struct {
	Auth       *apiHandler.AuthHandler
	Permission *apiHandler.PermissionHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, sessionAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/login", handlers.Auth.Login)
	r.POST("/api/v1/auth/token", handlers.Auth.Token)
	r.POST("/api/v1/auth/verify", handlers.Auth.Verify)

	// Protected routes
	r.GET("/api/v1/permissions", sessionAuth(handlers.Permission.GetEffective))

	return r
}
