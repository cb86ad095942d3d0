package repository

import (
	"context"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// RecetaRepository define el puerto hacia las recetas del backend (DIP).
type RecetaRepository interface {
	ListRecetas(ctx context.Context, sortBy, filterBy string) ([]entity.Receta, error)
	GetReceta(ctx context.Context, id string) (*entity.Receta, error)
	CreateReceta(ctx context.Context, r entity.Receta) (*entity.Receta, error)
	UpdateReceta(ctx context.Context, id string, r entity.Receta) (*entity.Receta, error)
	DeleteReceta(ctx context.Context, id string) error
	ExportRecetas(ctx context.Context) (*entity.Archivo, error)
	ImportRecetas(ctx context.Context, f entity.ArchivoSubido) (*entity.Mensaje, error)
}
