package repository

import (
	"context"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// ModeloIPVRepository define el puerto hacia los modelos y registros IPV (DIP).
type ModeloIPVRepository interface {
	ObtenerModelos(ctx context.Context) (entity.ModelosIPV, error)
	GuardarModelo(ctx context.Context, m entity.ModeloArea) (*entity.ModeloArea, error)
	ListRegistros(ctx context.Context) ([]entity.RegistroIPV, error)
}

// HistorialRepository define el puerto hacia el historial de cambios.
type HistorialRepository interface {
	ListHistorial(ctx context.Context, entidadTipo string) ([]entity.HistorialCambio, error)
}
