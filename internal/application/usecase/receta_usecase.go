package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// FiltroSinIngredientes lista solo las recetas que aún no tienen ingredientes.
const FiltroSinIngredientes = "sin_ingredientes"

// RecetaUseCase CRUD de recetas con validación de ingredientes.
type RecetaUseCase struct {
	repo repository.RecetaRepository
}

// NewRecetaUseCase construye el caso de uso.
func NewRecetaUseCase(repo repository.RecetaRepository) *RecetaUseCase {
	return &RecetaUseCase{repo: repo}
}

// List lista recetas; sortBy y filterBy se delegan al backend, q filtra por nombre.
func (uc *RecetaUseCase) List(ctx context.Context, sortBy, filterBy, q string) ([]entity.Receta, error) {
	if filterBy != "" && filterBy != FiltroSinIngredientes {
		return nil, fmt.Errorf("%w: filtro %q desconocido", domain.ErrInvalidInput, filterBy)
	}
	list, err := uc.repo.ListRecetas(ctx, sortBy, filterBy)
	if err != nil {
		return nil, err
	}
	list = filtrar(list, q, func(r entity.Receta) string { return r.Nombre })
	if sortBy == "" || sortBy == "nombre" {
		ordenarPorNombre(list, func(r entity.Receta) string { return r.Nombre })
	}
	if list == nil {
		list = []entity.Receta{}
	}
	return list, nil
}

func (uc *RecetaUseCase) GetByID(ctx context.Context, id string) (*entity.Receta, error) {
	return uc.repo.GetReceta(ctx, id)
}

func (uc *RecetaUseCase) Create(ctx context.Context, r entity.Receta) (*entity.Receta, error) {
	r, err := validarReceta(r)
	if err != nil {
		return nil, err
	}
	r.ID = ""
	return uc.repo.CreateReceta(ctx, r)
}

func (uc *RecetaUseCase) Update(ctx context.Context, id string, r entity.Receta) (*entity.Receta, error) {
	r, err := validarReceta(r)
	if err != nil {
		return nil, err
	}
	r.ID = id
	return uc.repo.UpdateReceta(ctx, id, r)
}

func (uc *RecetaUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteReceta(ctx, id)
}

func (uc *RecetaUseCase) Export(ctx context.Context) (*entity.Archivo, error) {
	return uc.repo.ExportRecetas(ctx)
}

func (uc *RecetaUseCase) Import(ctx context.Context, f entity.ArchivoSubido) (*entity.Mensaje, error) {
	if err := validarPlanilla(f.Nombre); err != nil {
		return nil, err
	}
	return uc.repo.ImportRecetas(ctx, f)
}

// validarReceta exige nombre y, por ingrediente, producto, área y cantidad positiva.
// Un mismo producto no puede repetirse en la misma área.
func validarReceta(r entity.Receta) (entity.Receta, error) {
	r.Nombre = strings.TrimSpace(r.Nombre)
	if r.Nombre == "" {
		return r, fmt.Errorf("%w: nombre es requerido", domain.ErrInvalidInput)
	}
	if r.Ingredientes == nil {
		r.Ingredientes = []entity.Ingrediente{}
	}
	seen := make(map[[2]string]struct{}, len(r.Ingredientes))
	for i, ing := range r.Ingredientes {
		if ing.ProductoID == "" || ing.AreaID == "" {
			return r, fmt.Errorf("%w: ingrediente %d sin producto o área", domain.ErrInvalidInput, i+1)
		}
		if !ing.Cantidad.IsPositive() {
			return r, fmt.Errorf("%w: ingrediente %d con cantidad no positiva", domain.ErrInvalidInput, i+1)
		}
		k := [2]string{ing.ProductoID, ing.AreaID}
		if _, dup := seen[k]; dup {
			return r, fmt.Errorf("%w: ingrediente %d repetido", domain.ErrInvalidInput, i+1)
		}
		seen[k] = struct{}{}
	}
	return r, nil
}
