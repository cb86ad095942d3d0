package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// ProductoUseCase casos de uso del catálogo de productos (el backend es el dueño de los datos).
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// List lista productos. Ordenados por nombre se usa la colación del español;
// q filtra por nombre sin distinguir tildes.
func (uc *ProductoUseCase) List(ctx context.Context, sortBy, q string) ([]entity.Producto, error) {
	list, err := uc.repo.ListProductos(ctx, sortBy)
	if err != nil {
		return nil, err
	}
	list = filtrar(list, q, func(p entity.Producto) string { return p.Nombre })
	if sortBy == "" || sortBy == "nombre" {
		ordenarPorNombre(list, func(p entity.Producto) string { return p.Nombre })
	}
	if list == nil {
		list = []entity.Producto{}
	}
	return list, nil
}

func (uc *ProductoUseCase) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	return uc.repo.GetProducto(ctx, id)
}

// Create valida y crea un producto.
func (uc *ProductoUseCase) Create(ctx context.Context, p entity.Producto) (*entity.Producto, error) {
	p, err := validarProducto(p)
	if err != nil {
		return nil, err
	}
	p.ID = ""
	return uc.repo.CreateProducto(ctx, p)
}

// Update valida y actualiza un producto.
func (uc *ProductoUseCase) Update(ctx context.Context, id string, p entity.Producto) (*entity.Producto, error) {
	p, err := validarProducto(p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return uc.repo.UpdateProducto(ctx, id, p)
}

func (uc *ProductoUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteProducto(ctx, id)
}

// Export devuelve la planilla de productos que arma el backend.
func (uc *ProductoUseCase) Export(ctx context.Context) (*entity.Archivo, error) {
	return uc.repo.ExportProductos(ctx)
}

// Import reenvía la planilla al backend.
func (uc *ProductoUseCase) Import(ctx context.Context, f entity.ArchivoSubido) (*entity.Mensaje, error) {
	if err := validarPlanilla(f.Nombre); err != nil {
		return nil, err
	}
	return uc.repo.ImportProductos(ctx, f)
}

func validarProducto(p entity.Producto) (entity.Producto, error) {
	p.Nombre = strings.TrimSpace(p.Nombre)
	p.UnidadMedida = strings.TrimSpace(p.UnidadMedida)
	if p.Nombre == "" || p.UnidadMedida == "" {
		return p, fmt.Errorf("%w: nombre y unidad_medida son requeridos", domain.ErrInvalidInput)
	}
	return p, nil
}

// validarPlanilla exige un nombre de archivo Excel.
func validarPlanilla(nombre string) error {
	n := strings.ToLower(strings.TrimSpace(nombre))
	if n == "" {
		return fmt.Errorf("%w: no se seleccionó ningún archivo", domain.ErrInvalidInput)
	}
	if !strings.HasSuffix(n, ".xlsx") && !strings.HasSuffix(n, ".xls") {
		return fmt.Errorf("%w: formato de archivo no soportado", domain.ErrInvalidInput)
	}
	return nil
}
