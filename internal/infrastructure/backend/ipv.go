package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

var _ appipv.Backend = (*Client)(nil)

// ObtenerEstado GET ipv/estado?fecha=.
func (c *Client) ObtenerEstado(ctx context.Context, fecha string) (*ipv.Matrix, error) {
	m := ipv.NewMatrix()
	if err := c.doJSON(ctx, http.MethodGet, "ipv/estado", url.Values{"fecha": {fecha}}, nil, m); err != nil {
		return nil, err
	}
	return m, nil
}

// CalcularConsumo GET ipv/calcular-consumo?fecha=. Las claves que no tengan la forma
// "productoId|areaId" se registran y se descartan.
func (c *Client) CalcularConsumo(ctx context.Context, fecha string) (ipv.ConsumptionMap, error) {
	var raw map[string]decimal.Decimal
	if err := c.doJSON(ctx, http.MethodGet, "ipv/calcular-consumo", url.Values{"fecha": {fecha}}, nil, &raw); err != nil {
		return nil, err
	}
	out := make(ipv.ConsumptionMap, len(raw))
	for k, v := range raw {
		key, err := ipv.ParseConsumptionKey(k)
		if err != nil {
			c.log.Warn().Str("clave", k).Str("fecha", fecha).Msg("clave de consumo inválida, se ignora")
			continue
		}
		out[key] = v
	}
	return out, nil
}

// GuardarInventario POST ipv/guardar.
func (c *Client) GuardarInventario(ctx context.Context, lineas []ipv.InventoryLine) error {
	if lineas == nil {
		lineas = []ipv.InventoryLine{}
	}
	return c.doJSON(ctx, http.MethodPost, "ipv/guardar", nil, lineas, nil)
}

// ObtenerModelos GET ipv/modelos.
func (c *Client) ObtenerModelos(ctx context.Context) (entity.ModelosIPV, error) {
	out := entity.ModelosIPV{}
	if err := c.doJSON(ctx, http.MethodGet, "ipv/modelos", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GuardarModelo POST ipv/modelos.
func (c *Client) GuardarModelo(ctx context.Context, m entity.ModeloArea) (*entity.ModeloArea, error) {
	var out entity.ModeloArea
	if err := c.doJSON(ctx, http.MethodPost, "ipv/modelos", nil, m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRegistros GET ipv/registros.
func (c *Client) ListRegistros(ctx context.Context) ([]entity.RegistroIPV, error) {
	var out []entity.RegistroIPV
	if err := c.doJSON(ctx, http.MethodGet, "ipv/registros", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
