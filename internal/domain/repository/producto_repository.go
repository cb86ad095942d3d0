package repository

import (
	"context"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// ProductoRepository define el puerto hacia el catálogo de productos del backend (DIP).
type ProductoRepository interface {
	ListProductos(ctx context.Context, sortBy string) ([]entity.Producto, error)
	GetProducto(ctx context.Context, id string) (*entity.Producto, error)
	CreateProducto(ctx context.Context, p entity.Producto) (*entity.Producto, error)
	UpdateProducto(ctx context.Context, id string, p entity.Producto) (*entity.Producto, error)
	DeleteProducto(ctx context.Context, id string) error
	ExportProductos(ctx context.Context) (*entity.Archivo, error)
	ImportProductos(ctx context.Context, f entity.ArchivoSubido) (*entity.Mensaje, error)
}
