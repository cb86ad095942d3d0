package http

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// IPVHandler maneja las sesiones de inventario IPV: carga, edición, consumo, guardado y reporte.
type IPVHandler struct {
	sessions *appipv.Registry
	report   *appipv.ReportUseCase
	validate *validator.Validate
}

// NewIPVHandler construye el handler.
func NewIPVHandler(sessions *appipv.Registry, report *appipv.ReportUseCase) *IPVHandler {
	return &IPVHandler{sessions: sessions, report: report, validate: newValidator()}
}

// Create godoc
// @Summary      Crear sesión IPV
// @Tags         ipv
// @Produce      json
// @Success      201  {object}  dto.SesionCreadaResponse
// @Router       /api/ipv/sesiones [post]
func (h *IPVHandler) Create(c *fiber.Ctx) error {
	s := h.sessions.Create()
	return c.Status(fiber.StatusCreated).JSON(dto.SesionCreadaResponse{ID: s.ID()})
}

// Get godoc
// @Summary      Estado de la sesión
// @Description  Fecha, matriz área → líneas, si hay datos del día anterior, último error y aviso.
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  appipv.Snapshot
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id} [get]
func (h *IPVHandler) Get(c *fiber.Ctx) error {
	return c.JSON(GetSession(c).Snapshot())
}

// Delete godoc
// @Summary      Descartar sesión
// @Tags         ipv
// @Param        id   path  string  true  "ID de la sesión"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id} [delete]
func (h *IPVHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cargar godoc
// @Summary      Cargar el inventario de una fecha
// @Description  Trae el estado del día y el del día anterior. Si llega una carga más nueva
// @Description  antes de terminar, esta responde 409 y no modifica la sesión.
// @Tags         ipv
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la sesión"
// @Param        body  body  dto.CargarRequest  true  "Fecha YYYY-MM-DD"
// @Success      200   {object}  appipv.Snapshot
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/cargar [post]
func (h *IPVHandler) Cargar(c *fiber.Ctx) error {
	var in dto.CargarRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	s := GetSession(c)
	if err := s.Load(c.Context(), in.Fecha); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Snapshot())
}

// SetValor godoc
// @Summary      Escribir una celda
// @Description  El valor se interpreta como cantidad no negativa; texto no numérico vale 0.
// @Description  Con evaluar=true se calcula como expresión aritmética y se redondea a 3 decimales.
// @Tags         ipv
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID de la sesión"
// @Param        body  body  dto.ValorRequest  true  "Celda y valor"
// @Success      200   {object}  dto.ActualizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/valor [put]
func (h *IPVHandler) SetValor(c *fiber.Ctx) error {
	var in dto.ValorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	s := GetSession(c)
	var (
		updated bool
		err     error
	)
	if in.Evaluar {
		updated, err = s.SetFieldExpression(c.Context(), in.Area, in.ProductoID, ipv.Campo(in.Campo), string(in.Valor))
	} else {
		updated, err = s.SetField(c.Context(), in.Area, in.ProductoID, ipv.Campo(in.Campo), string(in.Valor))
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ActualizacionResponse{Actualizado: updated})
}

// SetComentario godoc
// @Summary      Anotar una celda
// @Tags         ipv
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la sesión"
// @Param        body  body  dto.ComentarioRequest  true  "Celda y texto (vacío borra)"
// @Success      200   {object}  dto.ActualizacionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/comentario [put]
func (h *IPVHandler) SetComentario(c *fiber.Ctx) error {
	var in dto.ComentarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	updated, err := GetSession(c).SetComment(c.Context(), in.Area, in.ProductoID, ipv.Campo(in.Campo), in.Texto)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ActualizacionResponse{Actualizado: updated})
}

// Consumo godoc
// @Summary      Calcular y fusionar el consumo del día
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.ConsumoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/consumo [post]
func (h *IPVHandler) Consumo(c *fiber.Ctx) error {
	s := GetSession(c)
	res, err := s.MergeConsumption(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ConsumoResponse{MergeResult: res}
	if res.Claves == 0 {
		out.Aviso = appipv.AvisoSinVentas
	}
	return c.JSON(out)
}

// Diferencias godoc
// @Summary      Recalcular final teórico y diferencia
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.DiferenciasResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/diferencias [post]
func (h *IPVHandler) Diferencias(c *fiber.Ctx) error {
	n, err := GetSession(c).Recompute(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DiferenciasResponse{Lineas: n})
}

// Limpiar godoc
// @Summary      Poner todas las cantidades en cero
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  appipv.Snapshot
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/limpiar [post]
func (h *IPVHandler) Limpiar(c *fiber.Ctx) error {
	s := GetSession(c)
	if err := s.ResetAll(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(s.Snapshot())
}

// Guardar godoc
// @Summary      Guardar el registro IPV del día
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  dto.GuardarResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/guardar [post]
func (h *IPVHandler) Guardar(c *fiber.Ctx) error {
	s := GetSession(c)
	n, err := s.Save(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.GuardarResponse{
		Message: "Registro guardado correctamente.",
		Fecha:   s.Snapshot().Fecha,
		Lineas:  n,
	})
}

// Reporte godoc
// @Summary      Reporte IPV en JSON
// @Tags         ipv
// @Produce      json
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {object}  appipv.Reporte
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/reporte [get]
func (h *IPVHandler) Reporte(c *fiber.Ctx) error {
	rep, err := h.report.Build(c.Context(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rep)
}

// ReportePDF godoc
// @Summary      Reporte IPV en PDF
// @Tags         ipv
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la sesión"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/ipv/sesiones/{id}/reporte.pdf [get]
func (h *IPVHandler) ReportePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.PDF(c.Context(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(pdfBytes)
}

// Evaluar godoc
// @Summary      Evaluar una expresión de celda
// @Description  Solo números, + - * / y paréntesis. Resultado redondeado a 3 decimales.
// @Tags         ipv
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EvaluarRequest  true  "Expresión"
// @Success      200   {object}  dto.EvaluarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ipv/evaluar [post]
func (h *IPVHandler) Evaluar(c *fiber.Ctx) error {
	var in dto.EvaluarRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if ok, err := validate(c, h.validate, in); !ok {
		return err
	}
	v, err := ipv.EvaluateCell(in.Expresion)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.EvaluarResponse{Resultado: json.Number(v.String())})
}
