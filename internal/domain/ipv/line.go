package ipv

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Comentarios mapea campo → anotación libre. Una entrada vacía equivale a "sin anotación".
type Comentarios map[string]string

// InventoryLine es un producto dentro de un área para una fecha.
//
// FinalFisico nil significa "aún no contado", distinto de cero. FinalTeorico y Diferencia
// son derivados: solo los escribe RecomputeDerived.
type InventoryLine struct {
	ID             string
	Fecha          string
	ProductoID     string
	ProductoNombre string
	AreaID         string
	AreaNombre     string

	Inicio       decimal.Decimal
	Entradas     decimal.Decimal
	Consumo      decimal.Decimal
	Merma        decimal.Decimal
	OtrasSalidas decimal.Decimal
	FinalFisico  *decimal.Decimal
	FinalTeorico decimal.Decimal
	Diferencia   decimal.Decimal

	// Comentario es el blob persistido; Comentarios su forma decodificada.
	Comentario  *string
	Comentarios Comentarios
}

// lineWire es la forma JSON de una línea (nombres del backend, cantidades como números).
type lineWire struct {
	ID             string       `json:"id,omitempty"`
	Fecha          string       `json:"fecha,omitempty"`
	ProductoID     string       `json:"producto_id"`
	ProductoNombre string       `json:"producto_nombre"`
	AreaID         string       `json:"area_id"`
	AreaNombre     string       `json:"area_nombre"`
	Inicio         json.Number  `json:"inicio"`
	Entradas       json.Number  `json:"entradas"`
	Consumo        json.Number  `json:"consumo"`
	Merma          json.Number  `json:"merma"`
	OtrasSalidas   json.Number  `json:"otras_salidas"`
	FinalFisico    *json.Number `json:"final_fisico"`
	FinalTeorico   json.Number  `json:"final_teorico"`
	Diferencia     json.Number  `json:"diferencia"`
	Comentario     *string      `json:"comentario"`
	Comentarios    Comentarios  `json:"comentarios,omitempty"`
}

type lineDecode struct {
	ID             string           `json:"id"`
	Fecha          string           `json:"fecha"`
	ProductoID     string           `json:"producto_id"`
	ProductoNombre string           `json:"producto_nombre"`
	AreaID         string           `json:"area_id"`
	AreaNombre     string           `json:"area_nombre"`
	Inicio         decimal.Decimal  `json:"inicio"`
	Entradas       decimal.Decimal  `json:"entradas"`
	Consumo        decimal.Decimal  `json:"consumo"`
	Merma          decimal.Decimal  `json:"merma"`
	OtrasSalidas   decimal.Decimal  `json:"otras_salidas"`
	FinalFisico    *decimal.Decimal `json:"final_fisico"`
	FinalTeorico   decimal.Decimal  `json:"final_teorico"`
	Diferencia     decimal.Decimal  `json:"diferencia"`
	Comentario     *string          `json:"comentario"`
	Comentarios    Comentarios      `json:"comentarios"`
}

func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

// MarshalJSON emite las cantidades como números JSON (el backend opera con floats).
func (l InventoryLine) MarshalJSON() ([]byte, error) {
	w := lineWire{
		ID:             l.ID,
		Fecha:          l.Fecha,
		ProductoID:     l.ProductoID,
		ProductoNombre: l.ProductoNombre,
		AreaID:         l.AreaID,
		AreaNombre:     l.AreaNombre,
		Inicio:         number(l.Inicio),
		Entradas:       number(l.Entradas),
		Consumo:        number(l.Consumo),
		Merma:          number(l.Merma),
		OtrasSalidas:   number(l.OtrasSalidas),
		FinalTeorico:   number(l.FinalTeorico),
		Diferencia:     number(l.Diferencia),
		Comentario:     l.Comentario,
		Comentarios:    l.Comentarios,
	}
	if l.FinalFisico != nil {
		n := number(*l.FinalFisico)
		w.FinalFisico = &n
	}
	return json.Marshal(w)
}

// UnmarshalJSON acepta cantidades como número o string; final_fisico null queda sin contar.
func (l *InventoryLine) UnmarshalJSON(data []byte) error {
	var d lineDecode
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*l = InventoryLine{
		ID:             d.ID,
		Fecha:          d.Fecha,
		ProductoID:     d.ProductoID,
		ProductoNombre: d.ProductoNombre,
		AreaID:         d.AreaID,
		AreaNombre:     d.AreaNombre,
		Inicio:         d.Inicio,
		Entradas:       d.Entradas,
		Consumo:        d.Consumo,
		Merma:          d.Merma,
		OtrasSalidas:   d.OtrasSalidas,
		FinalFisico:    d.FinalFisico,
		FinalTeorico:   d.FinalTeorico,
		Diferencia:     d.Diferencia,
		Comentario:     d.Comentario,
		Comentarios:    d.Comentarios,
	}
	return nil
}

// Valor devuelve la cantidad guardada en el campo; un final físico sin contar vale cero.
func (l *InventoryLine) Valor(c Campo) decimal.Decimal {
	switch c {
	case CampoInicio:
		return l.Inicio
	case CampoEntradas:
		return l.Entradas
	case CampoConsumo:
		return l.Consumo
	case CampoMerma:
		return l.Merma
	case CampoOtrasSalidas:
		return l.OtrasSalidas
	case CampoFinalFisico:
		if l.FinalFisico != nil {
			return *l.FinalFisico
		}
	}
	return decimal.Zero
}

func (l *InventoryLine) set(c Campo, v decimal.Decimal) bool {
	switch c {
	case CampoInicio:
		l.Inicio = v
	case CampoEntradas:
		l.Entradas = v
	case CampoConsumo:
		l.Consumo = v
	case CampoMerma:
		l.Merma = v
	case CampoOtrasSalidas:
		l.OtrasSalidas = v
	case CampoFinalFisico:
		l.FinalFisico = &v
	default:
		return false
	}
	return true
}

func (l InventoryLine) clone() InventoryLine {
	out := l
	if l.FinalFisico != nil {
		v := *l.FinalFisico
		out.FinalFisico = &v
	}
	if l.Comentario != nil {
		s := *l.Comentario
		out.Comentario = &s
	}
	if l.Comentarios != nil {
		out.Comentarios = make(Comentarios, len(l.Comentarios))
		for k, v := range l.Comentarios {
			out.Comentarios[k] = v
		}
	}
	return out
}

// ── Blob de comentarios ───────────────────────────────────────────────────────

// DecodeComentarios interpreta el blob persistido. Vacío o "null" producen un mapa vacío.
func DecodeComentarios(blob *string) (Comentarios, error) {
	out := Comentarios{}
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return out, nil
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(*blob), &raw); err != nil {
		return out, fmt.Errorf("ipv: comentario mal formado: %w", err)
	}
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}

// EncodeComentarios serializa el mapa como objeto JSON plano (claves ordenadas).
func EncodeComentarios(c Comentarios) string {
	if c == nil {
		c = Comentarios{}
	}
	b, err := json.Marshal(map[string]string(c))
	if err != nil {
		// un map[string]string siempre se puede serializar
		return "{}"
	}
	return string(b)
}
