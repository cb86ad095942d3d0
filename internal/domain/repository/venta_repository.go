package repository

import (
	"context"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// VentaRepository define el puerto hacia las ventas importadas (DIP).
type VentaRepository interface {
	ListVentas(ctx context.Context) ([]entity.Venta, error)
	UpdateVenta(ctx context.Context, id string, v entity.Venta) (*entity.Venta, error)
	DeleteVenta(ctx context.Context, id string) error
	DeleteVentas(ctx context.Context, ids []string) error
	ImportVentas(ctx context.Context, f entity.ArchivoSubido) (*entity.ImportacionVentas, error)
}
