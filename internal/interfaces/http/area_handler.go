package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// AreaHandler CRUD de áreas.
type AreaHandler struct {
	uc       *usecase.AreaUseCase
	validate *validator.Validate
}

// NewAreaHandler construye el handler.
func NewAreaHandler(uc *usecase.AreaUseCase) *AreaHandler {
	return &AreaHandler{uc: uc, validate: newValidator()}
}

// List godoc
// @Summary      Listar áreas
// @Tags         areas
// @Produce      json
// @Success      200  {array}   entity.Area
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/areas [get]
func (h *AreaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener área por ID
// @Tags         areas
// @Produce      json
// @Param        id   path  string  true  "ID del área"
// @Success      200  {object}  entity.Area
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [get]
func (h *AreaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear área
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      201   {object}  entity.Area
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *AreaHandler) Create(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), entity.Area{Nombre: in.Nombre, Codigo: in.Codigo})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar área
// @Tags         areas
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del área"
// @Param        body  body  dto.AreaRequest  true  "Datos del área"
// @Success      200   {object}  entity.Area
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/areas/{id} [put]
func (h *AreaHandler) Update(c *fiber.Ctx) error {
	var in dto.AreaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), entity.Area{Nombre: in.Nombre, Codigo: in.Codigo})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar área
// @Tags         areas
// @Param        id   path  string  true  "ID del área"
// @Success      204
// @Router       /api/areas/{id} [delete]
func (h *AreaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
