package http

import (
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
)

// ModeloIPVHandler expone los modelos IPV por área y las fechas con registro guardado.
type ModeloIPVHandler struct {
	uc       *usecase.ModeloIPVUseCase
	validate *validator.Validate
}

// NewModeloIPVHandler construye el handler.
func NewModeloIPVHandler(uc *usecase.ModeloIPVUseCase) *ModeloIPVHandler {
	return &ModeloIPVHandler{uc: uc, validate: newValidator()}
}

// Obtener godoc
// @Summary      Modelos IPV de todas las áreas
// @Tags         ipv
// @Produce      json
// @Success      200  {object}  entity.ModelosIPV
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/ipv/modelos [get]
func (h *ModeloIPVHandler) Obtener(c *fiber.Ctx) error {
	out, err := h.uc.Obtener(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Guardar godoc
// @Summary      Guardar el modelo IPV de un área
// @Description  Los productos se guardan en el orden recibido (campo orden), sin repetidos.
// @Tags         ipv
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ModeloRequest  true  "Área y productos"
// @Success      200   {object}  entity.ModeloArea
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ipv/modelos [post]
func (h *ModeloIPVHandler) Guardar(c *fiber.Ctx) error {
	var in dto.ModeloRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	sort.SliceStable(in.Productos, func(i, j int) bool { return in.Productos[i].Orden < in.Productos[j].Orden })
	ids := make([]string, len(in.Productos))
	for i, p := range in.Productos {
		ids[i] = p.ID
	}
	out, err := h.uc.Guardar(c.Context(), in.AreaID, ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Registros godoc
// @Summary      Fechas con registro IPV guardado
// @Tags         ipv
// @Produce      json
// @Success      200  {array}   entity.RegistroIPV
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/ipv/registros [get]
func (h *ModeloIPVHandler) Registros(c *fiber.Ctx) error {
	out, err := h.uc.Registros(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
