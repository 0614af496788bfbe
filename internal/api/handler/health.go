package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler handles GET /health: liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// DependencyCheck pings one backing service.
type DependencyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// ReadinessHandler handles GET /health/ready: readiness probe.
// Only dependencies that are configured are checked.
type ReadinessHandler struct {
	checks  []DependencyCheck
	timeout time.Duration
}

func NewReadinessHandler(checks ...DependencyCheck) *ReadinessHandler {
	return &ReadinessHandler{checks: checks, timeout: 3 * time.Second}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *ReadinessHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			deps[check.Name] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
			continue
		}
		deps[check.Name] = dependencyStatus{Status: "ok"}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
