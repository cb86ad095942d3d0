package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// VentaHandler consulta, corrige e importa ventas.
type VentaHandler struct {
	uc       *usecase.VentaUseCase
	validate *validator.Validate
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *usecase.VentaUseCase) *VentaHandler {
	return &VentaHandler{uc: uc, validate: newValidator()}
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Param        fecha  query  string  false  "Fecha YYYY-MM-DD"
// @Param        q      query  string  false  "Búsqueda por receta (ignora tildes)"
// @Success      200    {array}   entity.Venta
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("fecha"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir una venta
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la venta"
// @Param        body  body  dto.VentaRequest  true  "Receta, cantidad y fecha"
// @Success      200   {object}  entity.Venta
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *VentaHandler) Update(c *fiber.Ctx) error {
	var in dto.VentaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), entity.Venta{
		RecetaNombre: in.RecetaNombre, Cantidad: in.Cantidad, Fecha: in.Fecha,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una venta
// @Tags         ventas
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Router       /api/ventas/{id} [delete]
func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMultiple godoc
// @Summary      Eliminar varias ventas
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeleteMultipleRequest  true  "IDs"
// @Success      200   {object}  dto.DeleteMultipleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ventas/delete-multiple [post]
func (h *VentaHandler) DeleteMultiple(c *fiber.Ctx) error {
	var in dto.DeleteMultipleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	ids, err := h.uc.DeleteMany(c.Context(), in.IDs)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteMultipleResponse{Message: "Ventas eliminadas correctamente", IDs: ids})
}

// Importar godoc
// @Summary      Importar ventas desde Excel
// @Description  Las recetas que no existan se crean sin ingredientes y se devuelven en nuevas_recetas.
// @Tags         ventas
// @Accept       multipart/form-data
// @Produce      json
// @Param        file   formData  file    true   "Planilla .xlsx o .xls"
// @Param        fecha  formData  string  false  "Fecha YYYY-MM-DD de todas las filas"
// @Success      200    {object}  entity.ImportacionVentas
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/ventas/importar [post]
func (h *VentaHandler) Importar(c *fiber.Ctx) error {
	f, closer, err := archivoSubido(c)
	if closer == nil {
		return err
	}
	defer closer.Close()
	out, err := h.uc.Import(c.Context(), f, c.FormValue("fecha"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
