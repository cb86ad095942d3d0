package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
)

// HistorialHandler expone el historial de cambios del catálogo.
type HistorialHandler struct {
	uc *usecase.HistorialUseCase
}

// NewHistorialHandler construye el handler.
func NewHistorialHandler(uc *usecase.HistorialUseCase) *HistorialHandler {
	return &HistorialHandler{uc: uc}
}

// List godoc
// @Summary      Historial de cambios
// @Tags         historial
// @Produce      json
// @Param        entidad_tipo  path  string  true  "Producto, Receta o Area"
// @Success      200           {array}   entity.HistorialCambio
// @Failure      400           {object}  dto.ErrorResponse
// @Router       /api/historial/{entidad_tipo} [get]
func (h *HistorialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Params("entidad_tipo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
