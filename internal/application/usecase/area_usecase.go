package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// AreaUseCase CRUD de áreas.
type AreaUseCase struct {
	repo repository.AreaRepository
}

// NewAreaUseCase construye el caso de uso.
func NewAreaUseCase(repo repository.AreaRepository) *AreaUseCase {
	return &AreaUseCase{repo: repo}
}

// List devuelve las áreas ordenadas por nombre.
func (uc *AreaUseCase) List(ctx context.Context) ([]entity.Area, error) {
	list, err := uc.repo.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []entity.Area{}, nil
	}
	ordenarPorNombre(list, func(a entity.Area) string { return a.Nombre })
	return list, nil
}

func (uc *AreaUseCase) GetByID(ctx context.Context, id string) (*entity.Area, error) {
	return uc.repo.GetArea(ctx, id)
}

func (uc *AreaUseCase) Create(ctx context.Context, a entity.Area) (*entity.Area, error) {
	a, err := validarArea(a)
	if err != nil {
		return nil, err
	}
	a.ID = ""
	return uc.repo.CreateArea(ctx, a)
}

func (uc *AreaUseCase) Update(ctx context.Context, id string, a entity.Area) (*entity.Area, error) {
	a, err := validarArea(a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return uc.repo.UpdateArea(ctx, id, a)
}

func (uc *AreaUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteArea(ctx, id)
}

func validarArea(a entity.Area) (entity.Area, error) {
	a.Nombre = strings.TrimSpace(a.Nombre)
	a.Codigo = strings.TrimSpace(a.Codigo)
	if a.Nombre == "" {
		return a, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	return a, nil
}
