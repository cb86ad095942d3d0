package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
)

// LocalSession es la clave de Locals donde queda la sesión IPV resuelta.
const LocalSession = "ipv_session"

// sessionResolver es el contrato mínimo que necesita el middleware para ubicar una sesión.
// Lo implementa *ipv.Registry.
type sessionResolver interface {
	Get(ctx context.Context, id string) (*appipv.Store, error)
}

// RequireSession devuelve un middleware Fiber que resuelve la sesión del parámetro :id
// (en memoria o desde su borrador) y la deja en Locals.
//
// Comportamiento:
//   - 404 SESSION_NOT_FOUND → la sesión no existe o expiró sin borrador.
func RequireSession(sessions sessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Params comparte memoria con el buffer de la petición
		s, err := sessions.Get(c.Context(), utils.CopyString(c.Params("id")))
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalSession, s)
		return c.Next()
	}
}

// GetSession devuelve la sesión que dejó RequireSession.
func GetSession(c *fiber.Ctx) *appipv.Store {
	s, _ := c.Locals(LocalSession).(*appipv.Store)
	return s
}
