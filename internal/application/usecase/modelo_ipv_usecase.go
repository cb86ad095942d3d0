package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// ModeloIPVUseCase administra qué productos se cuentan en cada área y en qué orden.
type ModeloIPVUseCase struct {
	repo repository.ModeloIPVRepository
}

// NewModeloIPVUseCase construye el caso de uso.
func NewModeloIPVUseCase(repo repository.ModeloIPVRepository) *ModeloIPVUseCase {
	return &ModeloIPVUseCase{repo: repo}
}

// Obtener devuelve los modelos de todas las áreas, cada uno ordenado por orden.
func (uc *ModeloIPVUseCase) Obtener(ctx context.Context) (entity.ModelosIPV, error) {
	m, err := uc.repo.ObtenerModelos(ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return entity.ModelosIPV{}, nil
	}
	for _, ps := range m {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].Orden < ps[j].Orden })
	}
	return m, nil
}

// Guardar reemplaza el modelo del área con productoIDs en el orden dado.
// Se quitan repetidos y el orden se renumera desde 0.
func (uc *ModeloIPVUseCase) Guardar(ctx context.Context, areaID string, productoIDs []string) (*entity.ModeloArea, error) {
	areaID = strings.TrimSpace(areaID)
	if areaID == "" {
		return nil, fmt.Errorf("%w: area_id es requerido", domain.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(productoIDs))
	productos := make([]entity.ModeloProducto, 0, len(productoIDs))
	for _, id := range productoIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		productos = append(productos, entity.ModeloProducto{ID: id, Orden: len(productos)})
	}
	return uc.repo.GuardarModelo(ctx, entity.ModeloArea{AreaID: areaID, Productos: productos})
}

// Registros lista las fechas con inventario guardado, la más reciente primero.
func (uc *ModeloIPVUseCase) Registros(ctx context.Context) ([]entity.RegistroIPV, error) {
	list, err := uc.repo.ListRegistros(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []entity.RegistroIPV{}, nil
	}
	// YYYY-MM-DD ordena igual como texto que como fecha
	sort.SliceStable(list, func(i, j int) bool { return list[i].Fecha > list[j].Fecha })
	return list, nil
}
