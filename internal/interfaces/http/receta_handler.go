package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// RecetaHandler CRUD de recetas con sus ingredientes.
type RecetaHandler struct {
	uc       *usecase.RecetaUseCase
	validate *validator.Validate
}

// NewRecetaHandler construye el handler.
func NewRecetaHandler(uc *usecase.RecetaUseCase) *RecetaHandler {
	return &RecetaHandler{uc: uc, validate: newValidator()}
}

func recetaDesde(in dto.RecetaRequest) entity.Receta {
	r := entity.Receta{Nombre: in.Nombre, Activa: true, Ingredientes: make([]entity.Ingrediente, len(in.Ingredientes))}
	if in.Activa != nil {
		r.Activa = *in.Activa
	}
	for i, ing := range in.Ingredientes {
		r.Ingredientes[i] = entity.Ingrediente{ProductoID: ing.ProductoID, AreaID: ing.AreaID, Cantidad: ing.Cantidad}
	}
	return r
}

// List godoc
// @Summary      Listar recetas
// @Tags         recetas
// @Produce      json
// @Param        sort_by    query  string  false  "Campo de orden"  default(nombre)
// @Param        filter_by  query  string  false  "sin_ingredientes"
// @Param        q          query  string  false  "Búsqueda por nombre (ignora tildes)"
// @Success      200        {array}   entity.Receta
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/recetas [get]
func (h *RecetaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("sort_by"), c.Query("filter_by"), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener receta por ID
// @Tags         recetas
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  entity.Receta
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [get]
func (h *RecetaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear receta
// @Description  Cada ingrediente necesita producto, área y cantidad mayor que cero.
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecetaRequest  true  "Receta e ingredientes"
// @Success      201   {object}  entity.Receta
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recetas [post]
func (h *RecetaHandler) Create(c *fiber.Ctx) error {
	var in dto.RecetaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), recetaDesde(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar receta
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la receta"
// @Param        body  body  dto.RecetaRequest  true  "Receta e ingredientes"
// @Success      200   {object}  entity.Receta
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [put]
func (h *RecetaHandler) Update(c *fiber.Ctx) error {
	var in dto.RecetaRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), recetaDesde(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar receta
// @Tags         recetas
// @Param        id   path  string  true  "ID de la receta"
// @Success      204
// @Router       /api/recetas/{id} [delete]
func (h *RecetaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar recetas a Excel
// @Tags         recetas
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/recetas/export [get]
func (h *RecetaHandler) Export(c *fiber.Ctx) error {
	a, err := h.uc.Export(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return sendArchivo(c, a, "recetas.xlsx")
}

// Import godoc
// @Summary      Importar recetas desde Excel
// @Tags         recetas
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilla .xlsx o .xls"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recetas/import [post]
func (h *RecetaHandler) Import(c *fiber.Ctx) error {
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
