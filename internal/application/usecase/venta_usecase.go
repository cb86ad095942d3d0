package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

// VentaUseCase consulta y corrige las ventas importadas.
type VentaUseCase struct {
	repo repository.VentaRepository
}

// NewVentaUseCase construye el caso de uso.
func NewVentaUseCase(repo repository.VentaRepository) *VentaUseCase {
	return &VentaUseCase{repo: repo}
}

// List devuelve las ventas de fecha (todas si fecha está vacía) cuyo nombre de receta coincide con q.
func (uc *VentaUseCase) List(ctx context.Context, fecha, q string) ([]entity.Venta, error) {
	if fecha != "" {
		if _, err := ipv.ParseFecha(fecha); err != nil {
			return nil, err
		}
	}
	all, err := uc.repo.ListVentas(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Venta, 0, len(all))
	for _, v := range all {
		if fecha != "" && v.Fecha != fecha {
			continue
		}
		if !coincide(v.RecetaNombre, q) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Update corrige una venta.
func (uc *VentaUseCase) Update(ctx context.Context, id string, v entity.Venta) (*entity.Venta, error) {
	v.RecetaNombre = strings.TrimSpace(v.RecetaNombre)
	if v.RecetaNombre == "" {
		return nil, fmt.Errorf("%w: receta_nombre es requerido", domain.ErrInvalidInput)
	}
	if v.Cantidad < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	if v.Fecha != "" {
		if _, err := ipv.ParseFecha(v.Fecha); err != nil {
			return nil, err
		}
	}
	v.ID = id
	return uc.repo.UpdateVenta(ctx, id, v)
}

func (uc *VentaUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteVenta(ctx, id)
}

// DeleteMany borra varias ventas; ignora ids vacíos o repetidos. Devuelve los ids enviados.
func (uc *VentaUseCase) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, id)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("%w: no se proporcionaron IDs para eliminar", domain.ErrInvalidInput)
	}
	if err := uc.repo.DeleteVentas(ctx, clean); err != nil {
		return nil, err
	}
	return clean, nil
}

// Import reenvía la planilla de ventas; fecha (opcional) fija la fecha de todas las filas.
func (uc *VentaUseCase) Import(ctx context.Context, f entity.ArchivoSubido, fecha string) (*entity.ImportacionVentas, error) {
	if err := validarPlanilla(f.Nombre); err != nil {
		return nil, err
	}
	if fecha != "" {
		if _, err := ipv.ParseFecha(fecha); err != nil {
			return nil, err
		}
		if f.Campos == nil {
			f.Campos = map[string]string{}
		}
		f.Campos["fecha"] = fecha
	}
	return uc.repo.ImportVentas(ctx, f)
}
