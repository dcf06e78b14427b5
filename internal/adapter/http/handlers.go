package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Health answers liveness probes. No dependencies are touched.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "adaptive-lending",
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
