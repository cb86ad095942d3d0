// Package pdf renderiza el reporte IPV diario con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de IPV - <fecha>                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR ÁREA: Producto | UM | Inicio | ... | Diferencia         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN POR ÁREA: Faltantes / Sobrantes / Mermas            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS Y COMENTARIOS                                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorGreen   = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// decimales con que se imprimen las cantidades
const decimales = 3

// caracteres aproximados por renglón de nota a tamaño 8
const anchoNota = 110

var _ appipv.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa appipv.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author se graba en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	if author == "" {
		author = "IPV Restaurante"
	}
	return &MarotoPDFGenerator{author: author}
}

// GenerateIPVReport genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateIPVReport(doc *ipv.ReportDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: reporte nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de IPV - "+doc.Fecha, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc.Fecha))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, area := range doc.Orden {
		m.AddRows(tituloRow(area, 12, 9))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableDetailRows(doc.Areas[area])...)
		m.AddRows(row.New(4))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tituloRow("Resumen por Área", 14, 10))
	for _, area := range doc.Orden {
		m.AddRows(resumenRows(area, doc.Resumen[area])...)
	}

	if notas := notasRows(doc); len(notas) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(tituloRow("Notas y Comentarios", 14, 10))
		m.AddRows(notas...)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(fecha string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Reporte de IPV - "+fecha, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func tituloRow(titulo string, size, height float64) core.Row {
	return row.New(height).Add(
		col.New(12).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: size, Color: colorPrimary, Top: 2,
		})),
	)
}

// tableHeaderRow: cabecera de la tabla de un área con fondo azul.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Producto", 3, align.Left),
		h("UM", 1, align.Center),
		h("Inicio", 1, align.Right),
		h("Entradas", 1, align.Right),
		h("Consumo", 1, align.Right),
		h("Merma", 1, align.Right),
		h("O.S.", 1, align.Right),
		h("F. Teórico", 1, align.Right),
		h("F. Físico", 1, align.Right),
		h("Diferencia", 1, align.Right),
	)
}

// tableDetailRows: una fila por producto del área.
func tableDetailRows(rows []ipv.ReportRow) []core.Row {
	num := func(s string, c *props.Color) core.Col {
		return col.New(1).Add(text.New(s, props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1, Color: c}))
	}
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(r.Producto, props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.UM, props.Text{Size: 7, Align: align.Center, Top: 1})),
			num(cantidad(r.Inicio), nil),
			num(cantidad(r.Entradas), nil),
			num(cantidad(r.Consumo), nil),
			num(cantidad(r.Merma), nil),
			num(cantidad(r.OtrasSalidas), nil),
			num(cantidad(r.FinalTeorico), nil),
			num(cantidadOpcional(r.FinalFisico), nil),
			num(cantidad(r.Diferencia), colorDiferencia(r.Diferencia)),
		))
	}
	return result
}

// resumenRows lista faltantes, sobrantes y mermas de un área. Un área sin ninguno no se imprime.
func resumenRows(area string, s *ipv.AreaSummary) []core.Row {
	if s == nil || s.Empty() {
		return nil
	}
	rows := []core.Row{tituloRow(area, 11, 8)}
	grupo := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Left: 2}),
		)))
		for _, it := range items {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New("- "+it, props.Text{Size: 9, Left: 5}),
			)))
		}
	}
	grupo("Faltantes:", s.Faltantes)
	grupo("Sobrantes:", s.Sobrantes)
	grupo("Mermas:", s.Mermas)
	return append(rows, row.New(3))
}

func notasRows(doc *ipv.ReportDocument) []core.Row {
	var rows []core.Row
	for _, area := range doc.Orden {
		notas := doc.Notas[area]
		if len(notas) == 0 {
			continue
		}
		rows = append(rows, tituloRow(area, 11, 8))
		for _, n := range notas {
			rows = append(rows, row.New(alturaNota(n)).Add(col.New(12).Add(
				text.New(n, props.Text{Size: 8, Left: 2, Color: colorGray}),
			)))
		}
		rows = append(rows, row.New(3))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cantidad(d decimal.Decimal) string { return d.StringFixed(decimales) }

func cantidadOpcional(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return cantidad(*d)
}

func colorDiferencia(d decimal.Decimal) *props.Color {
	switch {
	case d.IsNegative():
		return colorRed
	case d.IsPositive():
		return colorGreen
	}
	return nil
}

// alturaNota estima el alto de una nota que puede ocupar varios renglones.
func alturaNota(n string) float64 {
	lineas := (len([]rune(n)) + anchoNota - 1) / anchoNota
	if lineas < 1 {
		lineas = 1
	}
	return float64(5 * lineas)
}
