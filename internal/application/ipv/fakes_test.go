package ipv_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

var errBackend = errors.New("backend caído")

type fakeBackend struct {
	mu       sync.Mutex
	estados  map[string]*ipv.Matrix
	gates    map[string]chan struct{}
	entered  chan string
	consumos ipv.ConsumptionMap
	consErr  error
	// consGate, si no es nil, retiene CalcularConsumo después de avisar la fecha en consPedido
	consGate   chan struct{}
	consPedido chan string
	saveErr    error
	guardado   []ipv.InventoryLine
	calls      []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{estados: map[string]*ipv.Matrix{}, gates: map[string]chan struct{}{}}
}

func (f *fakeBackend) ObtenerEstado(ctx context.Context, fecha string) (*ipv.Matrix, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fecha)
	gate := f.gates[fecha]
	m, ok := f.estados[fecha]
	entered := f.entered
	f.mu.Unlock()

	if entered != nil {
		entered <- fecha
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, errBackend
	}
	return m.Clone(), nil
}

func (f *fakeBackend) CalcularConsumo(ctx context.Context, fecha string) (ipv.ConsumptionMap, error) {
	f.mu.Lock()
	gate, pedido := f.consGate, f.consPedido
	f.mu.Unlock()
	if pedido != nil {
		pedido <- fecha
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.consErr != nil {
		return nil, f.consErr
	}
	return f.consumos, nil
}

func (f *fakeBackend) GuardarInventario(_ context.Context, lineas []ipv.InventoryLine) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.guardado = lineas
	return nil
}

func (f *fakeBackend) llamadas() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeCatalog struct {
	productos []entity.Producto
	err       error
}

func (f fakeCatalog) ListProductos(context.Context, string) ([]entity.Producto, error) {
	return f.productos, f.err
}

type fakePDF struct {
	doc *ipv.ReportDocument
}

func (f *fakePDF) GenerateIPVReport(doc *ipv.ReportDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-1.4 fake"), nil
}

type memDrafts struct {
	mu     sync.Mutex
	drafts map[string][]byte
}

func newMemDrafts() *memDrafts { return &memDrafts{drafts: map[string][]byte{}} }

func (m *memDrafts) Save(_ context.Context, id string, d *appipv.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.drafts[id] = raw
	m.mu.Unlock()
	return nil
}

func (m *memDrafts) Load(_ context.Context, id string) (*appipv.Draft, error) {
	m.mu.Lock()
	raw, ok := m.drafts[id]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var d appipv.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *memDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.drafts, id)
	m.mu.Unlock()
	return nil
}

func mustMatrix(t *testing.T, raw string) *ipv.Matrix {
	t.Helper()
	var m ipv.Matrix
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return &m
}

const estadoHoy = `{
  "Cocina": [
    {"id": "r1", "fecha": "2024-03-01", "producto_id": "P1", "producto_nombre": "Tomate", "area_id": "A1", "area_nombre": "Cocina",
     "inicio": 10, "entradas": 5, "consumo": 0, "merma": 1, "otras_salidas": 0, "final_fisico": 12,
     "final_teorico": 0, "diferencia": 0, "comentario": "{\"merma\":\"golpeados\"}"},
    {"id": "r2", "fecha": "2024-03-01", "producto_id": "P2", "producto_nombre": "Cebolla", "area_id": "A1", "area_nombre": "Cocina",
     "inicio": 3, "entradas": 0, "consumo": 0, "merma": 0, "otras_salidas": 0, "final_fisico": null,
     "final_teorico": 0, "diferencia": 0, "comentario": "{roto"}
  ]
}`

const estadoAyer = `{
  "Cocina": [
    {"id": "q1", "fecha": "2024-02-29", "producto_id": "P1", "producto_nombre": "Tomate", "area_id": "A1", "area_nombre": "Cocina",
     "inicio": 0, "entradas": 0, "consumo": 0, "merma": 0, "otras_salidas": 0, "final_fisico": 9,
     "final_teorico": 0, "diferencia": 0, "comentario": ""}
  ]
}`
