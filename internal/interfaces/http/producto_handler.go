package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// ProductoHandler maneja las peticiones HTTP del catálogo de productos.
type ProductoHandler struct {
	uc       *usecase.ProductoUseCase
	validate *validator.Validate
}

// NewProductoHandler construye el handler.
func NewProductoHandler(uc *usecase.ProductoUseCase) *ProductoHandler {
	return &ProductoHandler{uc: uc, validate: newValidator()}
}

// List godoc
// @Summary      Listar productos
// @Tags         productos
// @Produce      json
// @Param        sort_by  query  string  false  "Campo de orden"  default(nombre)
// @Param        q        query  string  false  "Búsqueda por nombre (ignora tildes)"
// @Success      200      {array}   entity.Producto
// @Failure      502      {object}  dto.ErrorResponse
// @Router       /api/productos [get]
func (h *ProductoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("sort_by"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         productos
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Producto
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [get]
func (h *ProductoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      201   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos [post]
func (h *ProductoHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), entity.Producto{Nombre: in.Nombre, UnidadMedida: in.UnidadMedida})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         productos
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del producto"
// @Param        body  body  dto.ProductoRequest  true  "Datos del producto"
// @Success      200   {object}  entity.Producto
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [put]
func (h *ProductoHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), entity.Producto{Nombre: in.Nombre, UnidadMedida: in.UnidadMedida})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         productos
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/productos/{id} [delete]
func (h *ProductoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar productos a Excel
// @Tags         productos
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/productos/export [get]
func (h *ProductoHandler) Export(c *fiber.Ctx) error {
	a, err := h.uc.Export(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendArchivo(c, a, "productos.xlsx")
}

// Import godoc
// @Summary      Importar productos desde Excel
// @Tags         productos
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx o .xls"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/productos/import [post]
func (h *ProductoHandler) Import(c *fiber.Ctx) error {
	f, closer, err := archivoSubido(c)
	if closer == nil {
		return err
	}
	defer closer.Close()
	out, err := h.uc.Import(c.Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: out.Message})
}
