package ipv

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// Reporte es el documento armado más los avisos no fatales de su construcción.
type Reporte struct {
	Documento *ipv.ReportDocument `json:"documento"`
	Avisos    []string            `json:"avisos,omitempty"`
}

// ReportUseCase arma el reporte IPV de una sesión y lo pagina en PDF.
type ReportUseCase struct {
	catalog   ProductCatalog
	generator ReportPDFGenerator
	log       zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(catalog ProductCatalog, generator ReportPDFGenerator, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{catalog: catalog, generator: generator, log: log}
}

// Build arma el ReportDocument con la matriz de la sesión. Si el catálogo de productos
// no responde el reporte sigue, con la UM como "N/A".
func (uc *ReportUseCase) Build(ctx context.Context, s *Store) (*Reporte, error) {
	in, err := s.ReportInput()
	if err != nil {
		return nil, err
	}

	var avisos []string
	productos, err := uc.catalog.ListProductos(ctx, "")
	if err != nil {
		uc.log.Warn().Err(err).Str("session", s.ID()).Msg("reporte sin catálogo de productos")
		avisos = append(avisos, AvisoSinProductos)
	} else {
		in.Productos = ipv.NewCatalogo(productos)
	}

	doc := ipv.BuildReport(in)
	return &Reporte{Documento: doc, Avisos: avisos}, nil
}

// PDF arma el reporte y lo renderiza. Devuelve los bytes y el nombre del archivo.
func (uc *ReportUseCase) PDF(ctx context.Context, s *Store) (pdfBytes []byte, filename string, err error) {
	rep, err := uc.Build(ctx, s)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateIPVReport(rep.Documento)
	if err != nil {
		return nil, "", fmt.Errorf("ipv: generar pdf: %w", err)
	}
	uc.log.Info().Str("session", s.ID()).Str("fecha", rep.Documento.Fecha).Int("bytes", len(pdfBytes)).Msg("reporte IPV generado")
	return pdfBytes, ReportFilename(rep.Documento.Fecha), nil
}

// ReportFilename nombre del archivo PDF del reporte de una fecha.
func ReportFilename(fecha string) string {
	return fmt.Sprintf("reporte_ipv_%s.pdf", fecha)
}
