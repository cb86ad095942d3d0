package ipv

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// UnidadDesconocida se usa cuando el producto no está en el catálogo.
const UnidadDesconocida = "N/A"

// ReportRow es una línea aplanada del reporte.
type ReportRow struct {
	Producto     string
	UM           string
	Inicio       decimal.Decimal
	Entradas     decimal.Decimal
	Consumo      decimal.Decimal
	Merma        decimal.Decimal
	OtrasSalidas decimal.Decimal
	FinalTeorico decimal.Decimal
	FinalFisico  *decimal.Decimal
	Diferencia   decimal.Decimal
}

// MarshalJSON emite las cantidades como números.
func (r ReportRow) MarshalJSON() ([]byte, error) {
	var ff *json.Number
	if r.FinalFisico != nil {
		n := number(*r.FinalFisico)
		ff = &n
	}
	return json.Marshal(struct {
		Producto     string       `json:"producto"`
		UM           string       `json:"um"`
		Inicio       json.Number  `json:"inicio"`
		Entradas     json.Number  `json:"entradas"`
		Consumo      json.Number  `json:"consumo"`
		Merma        json.Number  `json:"merma"`
		OtrasSalidas json.Number  `json:"otras_salidas"`
		FinalTeorico json.Number  `json:"final_teorico"`
		FinalFisico  *json.Number `json:"final_fisico"`
		Diferencia   json.Number  `json:"diferencia"`
	}{
		r.Producto, r.UM,
		number(r.Inicio), number(r.Entradas), number(r.Consumo), number(r.Merma),
		number(r.OtrasSalidas), number(r.FinalTeorico), ff, number(r.Diferencia),
	})
}

// AreaSummary clasifica las líneas de un área.
type AreaSummary struct {
	Faltantes []string `json:"faltantes"`
	Sobrantes []string `json:"sobrantes"`
	Mermas    []string `json:"mermas"`
}

// Empty indica que el área no tiene faltantes, sobrantes ni mermas.
func (s *AreaSummary) Empty() bool {
	return len(s.Faltantes) == 0 && len(s.Sobrantes) == 0 && len(s.Mermas) == 0
}

// ReportDocument es la proyección de una matriz lista para renderizar.
// Orden conserva el orden de las áreas de la matriz.
type ReportDocument struct {
	Fecha   string                  `json:"fecha"`
	Orden   []string                `json:"orden"`
	Areas   map[string][]ReportRow  `json:"areas"`
	Resumen map[string]*AreaSummary `json:"resumen"`
	Notas   map[string][]string     `json:"notas"`
}

// Catalogo resuelve productoID → producto.
type Catalogo map[string]entity.Producto

// NewCatalogo indexa una lista de productos por ID.
func NewCatalogo(productos []entity.Producto) Catalogo {
	c := make(Catalogo, len(productos))
	for _, p := range productos {
		c[p.ID] = p
	}
	return c
}

// Unidad devuelve la UM del producto tal como está en el catálogo, o "N/A" si el producto no figura.
func (c Catalogo) Unidad(productoID string) string {
	if p, ok := c[productoID]; ok {
		return p.UnidadMedida
	}
	return UnidadDesconocida
}

// ReportInput reúne lo necesario para construir el reporte. Anterior nil = sin datos del día previo.
type ReportInput struct {
	Fecha     string
	Actual    *Matrix
	Anterior  *Matrix
	Productos Catalogo
}

// BuildReport proyecta la matriz en un ReportDocument. No hace I/O ni modifica sus entradas;
// con las mismas entradas produce siempre el mismo documento.
func BuildReport(in ReportInput) *ReportDocument {
	doc := &ReportDocument{
		Fecha:   in.Fecha,
		Orden:   []string{},
		Areas:   map[string][]ReportRow{},
		Resumen: map[string]*AreaSummary{},
		Notas:   map[string][]string{},
	}
	if in.Actual == nil {
		return doc
	}

	for _, area := range in.Actual.areas {
		doc.Orden = append(doc.Orden, area)
		rows := []ReportRow{}
		summary := &AreaSummary{Faltantes: []string{}, Sobrantes: []string{}, Mermas: []string{}}
		var notas []string

		for _, l := range in.Actual.lines[area] {
			um := in.Productos.Unidad(l.ProductoID)

			notas = append(notas, notasDeComentarios(l, um)...)
			if nota, ok := notaContinuidad(in.Anterior, area, l); ok {
				notas = append(notas, nota)
			}

			row := ReportRow{
				Producto:     l.ProductoNombre,
				UM:           um,
				Inicio:       l.Inicio,
				Entradas:     l.Entradas,
				Consumo:      l.Consumo,
				Merma:        l.Merma,
				OtrasSalidas: l.OtrasSalidas,
				FinalTeorico: l.FinalTeorico,
				Diferencia:   l.Diferencia,
			}
			if l.FinalFisico != nil {
				v := *l.FinalFisico
				row.FinalFisico = &v
			}
			rows = append(rows, row)

			switch {
			case l.Diferencia.IsNegative():
				summary.Faltantes = append(summary.Faltantes, cantidadConUnidad(l.ProductoNombre, l.Diferencia.Abs(), um))
			case l.Diferencia.IsPositive():
				summary.Sobrantes = append(summary.Sobrantes, cantidadConUnidad(l.ProductoNombre, l.Diferencia, um))
			}
			if l.Merma.IsPositive() {
				summary.Mermas = append(summary.Mermas, cantidadConUnidad(l.ProductoNombre, l.Merma, um))
			}
		}

		doc.Areas[area] = rows
		doc.Resumen[area] = summary
		if len(notas) > 0 {
			doc.Notas[area] = notas
		}
	}
	return doc
}

func cantidadConUnidad(producto string, v decimal.Decimal, um string) string {
	return fmt.Sprintf("%s: %s %s", producto, v.String(), um)
}

// notasDeComentarios emite una nota por anotación no vacía, en el orden fijo de los campos
// y luego las claves desconocidas en orden alfabético.
func notasDeComentarios(l InventoryLine, um string) []string {
	if len(l.Comentarios) == 0 {
		return nil
	}
	keys := make([]string, 0, len(l.Comentarios))
	known := make(map[string]bool, len(camposOrdenados))
	for _, c := range camposOrdenados {
		known[string(c)] = true
		if _, ok := l.Comentarios[string(c)]; ok {
			keys = append(keys, string(c))
		}
	}
	var extra []string
	for k := range l.Comentarios {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	var out []string
	for _, k := range keys {
		texto := l.Comentarios[k]
		if strings.TrimSpace(texto) == "" {
			continue
		}
		cantidad := l.Valor(Campo(k))
		out = append(out, fmt.Sprintf("%s %s %s %s: %s", l.ProductoNombre, cantidad.String(), um, k, texto))
	}
	return out
}

// notaContinuidad compara el inicio de hoy con el cierre físico del día anterior.
func notaContinuidad(anterior *Matrix, area string, l InventoryLine) (string, bool) {
	if anterior == nil {
		return "", false
	}
	prev := anterior.find(area, l.ProductoID)
	if prev == nil {
		return "", false
	}
	cierre := "sin conteo"
	if prev.FinalFisico != nil {
		if prev.FinalFisico.Equal(l.Inicio) {
			return "", false
		}
		cierre = prev.FinalFisico.String()
	}
	return fmt.Sprintf("Diferencia con cierre anterior para %s: Inicio: %s, Cierre anterior: %s",
		l.ProductoNombre, l.Inicio.String(), cierre), true
}
