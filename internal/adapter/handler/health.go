package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const healthTimeout = 3 * time.Second

// Pinger is a dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health reports liveness and the reachability of backing services
type Health struct {
	environment string
	deps        map[string]Pinger
	logger      *zap.Logger
}

func NewHealthHandler(environment string, deps map[string]Pinger, logger *zap.Logger) *Health {
	return &Health{environment: environment, deps: deps, logger: logger}
}

// Check handles GET /health
// @Summary      Health check
// @Description  Pings the store, Redis and object storage
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *Health) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			checks[name] = err.Error()
			if h.logger != nil {
				h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			}
			continue
		}
		checks[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	return c.JSON(status, map[string]interface{}{
		"status":      overall,
		"environment": h.environment,
		"checks":      checks,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
