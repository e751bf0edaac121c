package routes

import (
	"placement-prep/internal/delivery/http/handler"
	"placement-prep/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Course     *handler.CourseHandler
	Catalog    *handler.CatalogHandler
	Resume     *handler.ResumeHandler
	Submission *handler.SubmissionHandler
	Chat       *handler.ChatHandler
	Interview  *handler.InterviewHandler
}

type Registry struct {
	handlers Handlers
	auth     *middleware.AuthMiddleware
}

func NewRegistry(handlers Handlers, auth *middleware.AuthMiddleware) *Registry {
	return &Registry{handlers: handlers, auth: auth}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app.Group("/api"))
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.handlers.Health != nil {
		r.handlers.Health.RegisterRoutes(app)
	}
}
