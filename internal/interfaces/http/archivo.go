package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// archivoSubido toma el campo multipart "file". El llamador debe cerrar el io.Closer;
// si es nil ya se respondió 400 y el handler devuelve el error recibido.
func archivoSubido(c *fiber.Ctx) (entity.ArchivoSubido, io.Closer, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return entity.ArchivoSubido{}, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "no se encontró el archivo en la petición",
		})
	}
	f, err := fh.Open()
	if err != nil {
		return entity.ArchivoSubido{}, nil, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "no se pudo leer el archivo",
		})
	}
	return entity.ArchivoSubido{Nombre: fh.Filename, Contenido: f}, f, nil
}

// sendArchivo devuelve la planilla generada por el backend como descarga.
func sendArchivo(c *fiber.Ctx, a *entity.Archivo, fallback string) error {
	ct := a.ContentType
	if ct == "" {
		ct = contentTypeXLSX
	}
	nombre := a.Nombre
	if nombre == "" {
		nombre = fallback
	}
	c.Set(fiber.HeaderContentType, ct)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", nombre))
	return c.Send(a.Datos)
}
