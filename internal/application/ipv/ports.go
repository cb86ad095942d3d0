package ipv

import (
	"context"
	"time"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// Backend es el contrato IPV que el core necesita del backend REST.
type Backend interface {
	// ObtenerEstado devuelve la matriz área → líneas de la fecha, con el blob de comentarios sin decodificar.
	ObtenerEstado(ctx context.Context, fecha string) (*ipv.Matrix, error)
	// CalcularConsumo devuelve el consumo por (producto, área); las claves inválidas ya vienen descartadas.
	CalcularConsumo(ctx context.Context, fecha string) (ipv.ConsumptionMap, error)
	// GuardarInventario persiste el registro aplanado.
	GuardarInventario(ctx context.Context, lineas []ipv.InventoryLine) error
}

// ProductCatalog resuelve la unidad de medida de los productos para el reporte.
type ProductCatalog interface {
	ListProductos(ctx context.Context, sortBy string) ([]entity.Producto, error)
}

// ReportPDFGenerator pagina un ReportDocument en PDF.
type ReportPDFGenerator interface {
	GenerateIPVReport(doc *ipv.ReportDocument) ([]byte, error)
}

// Draft es el estado en curso de una sesión, guardado para poder retomarla.
type Draft struct {
	Fecha      string      `json:"fecha"`
	Actual     *ipv.Matrix `json:"actual"`
	Anterior   *ipv.Matrix `json:"anterior,omitempty"`
	GuardadoEn time.Time   `json:"guardado_en"`
}

// DraftStore guarda borradores de sesión. Load devuelve (nil, nil) si no existe.
type DraftStore interface {
	Save(ctx context.Context, sessionID string, d *Draft) error
	Load(ctx context.Context, sessionID string) (*Draft, error)
	Delete(ctx context.Context, sessionID string) error
}

// NopDraftStore no guarda nada; se usa cuando no hay Redis configurado.
type NopDraftStore struct{}

func (NopDraftStore) Save(context.Context, string, *Draft) error   { return nil }
func (NopDraftStore) Load(context.Context, string) (*Draft, error) { return nil, nil }
func (NopDraftStore) Delete(context.Context, string) error         { return nil }
