package routes

import (
	"placement-prep/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func (r *Registry) guards() handler.Guards {
	if r.auth == nil {
		return handler.Guards{}
	}
	return handler.Guards{Auth: r.auth.Middleware(), Admin: r.auth.RequireAdmin()}
}

func (r *Registry) registerAPI(api fiber.Router) {
	h := r.handlers
	g := r.guards()

	if h.Auth != nil {
		h.Auth.RegisterRoutes(api.Group("/auth"))
	}
	if h.User != nil {
		h.User.RegisterRoutes(api, g)
	}
	if h.Course != nil {
		h.Course.RegisterRoutes(api, g)
	}
	if h.Catalog != nil {
		h.Catalog.RegisterRoutes(api, g)
	}
	if h.Resume != nil {
		h.Resume.RegisterRoutes(api, g)
	}
	if h.Submission != nil {
		h.Submission.RegisterRoutes(api, g)
	}
	if h.Chat != nil {
		h.Chat.RegisterRoutes(api, g)
	}
	if h.Interview != nil {
		h.Interview.RegisterRoutes(api, g)
	}
}
