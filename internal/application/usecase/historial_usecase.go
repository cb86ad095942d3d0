package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// Tipos de entidad con historial de cambios.
const (
	EntidadProducto = "Producto"
	EntidadReceta   = "Receta"
	EntidadArea     = "Area"
)

// HistorialUseCase consulta el historial de cambios del catálogo.
type HistorialUseCase struct {
	repo repository.HistorialRepository
}

// NewHistorialUseCase construye el caso de uso.
func NewHistorialUseCase(repo repository.HistorialRepository) *HistorialUseCase {
	return &HistorialUseCase{repo: repo}
}

// List devuelve los cambios de un tipo de entidad, el más reciente primero.
func (uc *HistorialUseCase) List(ctx context.Context, entidadTipo string) ([]entity.HistorialCambio, error) {
	switch entidadTipo {
	case EntidadProducto, EntidadReceta, EntidadArea:
	default:
		return nil, fmt.Errorf("%w: tipo de entidad %q", domain.ErrInvalidInput, entidadTipo)
	}
	list, err := uc.repo.ListHistorial(ctx, entidadTipo)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []entity.HistorialCambio{}, nil
	}
	sort.SliceStable(list, func(i, j int) bool {
		return fechaCambio(list[i]) > fechaCambio(list[j])
	})
	return list, nil
}

func fechaCambio(h entity.HistorialCambio) string {
	if h.FechaCambio == nil {
		return ""
	}
	return *h.FechaCambio
}
