package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/repository"
)

func sortQuery(sortBy, filterBy string) url.Values {
	q := url.Values{}
	if sortBy != "" {
		q.Set("sort_by", sortBy)
	}
	if filterBy != "" {
		q.Set("filter_by", filterBy)
	}
	return q
}

func itemPath(resource, id string) string {
	return resource + "/" + url.PathEscape(id) + "/"
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ListProductos GET productos/?sort_by=.
func (c *Client) ListProductos(ctx context.Context, sortBy string) ([]entity.Producto, error) {
	var out []entity.Producto
	err := c.doJSON(ctx, http.MethodGet, "productos/", sortQuery(sortBy, ""), nil, &out)
	return out, err
}

func (c *Client) GetProducto(ctx context.Context, id string) (*entity.Producto, error) {
	var out entity.Producto
	if err := c.doJSON(ctx, http.MethodGet, itemPath("productos", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProducto(ctx context.Context, p entity.Producto) (*entity.Producto, error) {
	var out entity.Producto
	if err := c.doJSON(ctx, http.MethodPost, "productos/", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProducto(ctx context.Context, id string, p entity.Producto) (*entity.Producto, error) {
	var out entity.Producto
	if err := c.doJSON(ctx, http.MethodPut, itemPath("productos", id), nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProducto(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath("productos", id), nil, nil, nil)
}

// ExportProductos GET productos/export/ (planilla generada por el backend).
func (c *Client) ExportProductos(ctx context.Context) (*entity.Archivo, error) {
	return c.download(ctx, "productos/export/", nil)
}

// ImportProductos POST productos/import/ (multipart, campo file).
func (c *Client) ImportProductos(ctx context.Context, up entity.ArchivoSubido) (*entity.Mensaje, error) {
	var out entity.Mensaje
	if err := c.upload(ctx, "productos/import/", up, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Áreas ─────────────────────────────────────────────────────────────────────

func (c *Client) ListAreas(ctx context.Context) ([]entity.Area, error) {
	var out []entity.Area
	err := c.doJSON(ctx, http.MethodGet, "areas/", nil, nil, &out)
	return out, err
}

func (c *Client) GetArea(ctx context.Context, id string) (*entity.Area, error) {
	var out entity.Area
	if err := c.doJSON(ctx, http.MethodGet, itemPath("areas", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateArea(ctx context.Context, a entity.Area) (*entity.Area, error) {
	var out entity.Area
	if err := c.doJSON(ctx, http.MethodPost, "areas/", nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArea(ctx context.Context, id string, a entity.Area) (*entity.Area, error) {
	var out entity.Area
	if err := c.doJSON(ctx, http.MethodPut, itemPath("areas", id), nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArea(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath("areas", id), nil, nil, nil)
}

// ── Recetas ───────────────────────────────────────────────────────────────────

// ListRecetas GET recetas/?sort_by=&filter_by=.
func (c *Client) ListRecetas(ctx context.Context, sortBy, filterBy string) ([]entity.Receta, error) {
	var out []entity.Receta
	err := c.doJSON(ctx, http.MethodGet, "recetas/", sortQuery(sortBy, filterBy), nil, &out)
	return out, err
}

func (c *Client) GetReceta(ctx context.Context, id string) (*entity.Receta, error) {
	var out entity.Receta
	if err := c.doJSON(ctx, http.MethodGet, itemPath("recetas", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReceta(ctx context.Context, r entity.Receta) (*entity.Receta, error) {
	var out entity.Receta
	if err := c.doJSON(ctx, http.MethodPost, "recetas/", nil, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateReceta(ctx context.Context, id string, r entity.Receta) (*entity.Receta, error) {
	var out entity.Receta
	if err := c.doJSON(ctx, http.MethodPut, itemPath("recetas", id), nil, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteReceta(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath("recetas", id), nil, nil, nil)
}

func (c *Client) ExportRecetas(ctx context.Context) (*entity.Archivo, error) {
	return c.download(ctx, "recetas/export/", nil)
}

func (c *Client) ImportRecetas(ctx context.Context, up entity.ArchivoSubido) (*entity.Mensaje, error) {
	var out entity.Mensaje
	if err := c.upload(ctx, "recetas/import/", up, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func (c *Client) ListVentas(ctx context.Context) ([]entity.Venta, error) {
	var out []entity.Venta
	err := c.doJSON(ctx, http.MethodGet, "ventas/", nil, nil, &out)
	return out, err
}

func (c *Client) UpdateVenta(ctx context.Context, id string, v entity.Venta) (*entity.Venta, error) {
	var out entity.Venta
	if err := c.doJSON(ctx, http.MethodPut, itemPath("ventas", id), nil, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVenta(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, itemPath("ventas", id), nil, nil, nil)
}

// DeleteVentas POST ventas/delete-multiple/ {ids}.
func (c *Client) DeleteVentas(ctx context.Context, ids []string) error {
	return c.doJSON(ctx, http.MethodPost, "ventas/delete-multiple/", nil, map[string][]string{"ids": ids}, nil)
}

// ImportVentas POST ventas/importar/ (multipart: file + fecha opcional).
func (c *Client) ImportVentas(ctx context.Context, up entity.ArchivoSubido) (*entity.ImportacionVentas, error) {
	var out entity.ImportacionVentas
	if err := c.upload(ctx, "ventas/importar/", up, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Historial ─────────────────────────────────────────────────────────────────

// ListHistorial GET historial/<entidad_tipo>/.
func (c *Client) ListHistorial(ctx context.Context, entidadTipo string) ([]entity.HistorialCambio, error) {
	var out []entity.HistorialCambio
	err := c.doJSON(ctx, http.MethodGet, itemPath("historial", entidadTipo), nil, nil, &out)
	return out, err
}

var (
	_ repository.ProductoRepository  = (*Client)(nil)
	_ repository.AreaRepository      = (*Client)(nil)
	_ repository.RecetaRepository    = (*Client)(nil)
	_ repository.VentaRepository     = (*Client)(nil)
	_ repository.ModeloIPVRepository = (*Client)(nil)
	_ repository.HistorialRepository = (*Client)(nil)
)
