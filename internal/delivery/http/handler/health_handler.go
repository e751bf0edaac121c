package handler

import (
	"context"
	"time"

	"placement-prep/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthProbeTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
	now   func() time.Time
}

type healthResponse struct {
	DatabaseHealthy bool   `json:"database_healthy"`
	RedisHealthy    bool   `json:"redis_healthy"`
	ServerTime      string `json:"server_time"`
}

// NewHealthHandler reports a nil dependency as unhealthy.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthProbeTimeout)
	defer cancel()

	out := healthResponse{
		DatabaseHealthy: probe(ctx, h.db),
		RedisHealthy:    probe(ctx, h.cache),
		ServerTime:      h.now().UTC().Format(time.RFC3339),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func probe(ctx context.Context, p Pinger) bool {
	if p == nil {
		return false
	}
	return p.Ping(ctx) == nil
}
