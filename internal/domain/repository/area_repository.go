package repository

import (
	"context"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// AreaRepository define el puerto hacia las áreas del backend (DIP).
type AreaRepository interface {
	ListAreas(ctx context.Context) ([]entity.Area, error)
	GetArea(ctx context.Context, id string) (*entity.Area, error)
	CreateArea(ctx context.Context, a entity.Area) (*entity.Area, error)
	UpdateArea(ctx context.Context, id string, a entity.Area) (*entity.Area, error)
	DeleteArea(ctx context.Context, id string) error
}
