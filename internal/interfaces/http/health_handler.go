package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
)

// BackendPinger verifica que el backend REST responda.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde el estado del servicio.
type HealthHandler struct {
	service string
	backend BackendPinger
}

// NewHealthHandler construye el handler. backend nil se informa como "down".
func NewHealthHandler(service string, backend BackendPinger) *HealthHandler {
	return &HealthHandler{service: service, backend: backend}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	out := dto.HealthResponse{Status: "ok", Service: h.service, Backend: "down"}
	if h.backend != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()
		if err := h.backend.Ping(ctx); err == nil {
			out.Backend = "ok"
		}
	}
	return c.JSON(out)
}
