package ipv

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
)

// Matrix agrupa las líneas de inventario de una fecha por nombre de área.
// Conserva el orden de las áreas tal como llegan del backend; dentro de un área
// cada producto aparece una sola vez.
type Matrix struct {
	areas []string
	lines map[string][]InventoryLine
}

// NewMatrix crea una matriz vacía.
func NewMatrix() *Matrix {
	return &Matrix{lines: map[string][]InventoryLine{}}
}

// Areas devuelve los nombres de área en orden de iteración.
func (m *Matrix) Areas() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.areas))
	copy(out, m.areas)
	return out
}

// Lines devuelve una copia de las líneas del área (nil si el área no existe).
func (m *Matrix) Lines(area string) []InventoryLine {
	if m == nil {
		return nil
	}
	src, ok := m.lines[area]
	if !ok {
		return nil
	}
	out := make([]InventoryLine, len(src))
	for i, l := range src {
		out[i] = l.clone()
	}
	return out
}

// Len cuenta las líneas de todas las áreas.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, ls := range m.lines {
		n += len(ls)
	}
	return n
}

// SetArea reemplaza (o agrega al final) las líneas de un área.
func (m *Matrix) SetArea(area string, lines []InventoryLine) error {
	seen := make(map[string]struct{}, len(lines))
	cp := make([]InventoryLine, len(lines))
	for i, l := range lines {
		if _, dup := seen[l.ProductoID]; dup {
			return fmt.Errorf("%w: producto %q repetido en el área %q", domain.ErrInvalidInput, l.ProductoID, area)
		}
		seen[l.ProductoID] = struct{}{}
		cp[i] = l.clone()
	}
	if m.lines == nil {
		m.lines = map[string][]InventoryLine{}
	}
	if _, ok := m.lines[area]; !ok {
		m.areas = append(m.areas, area)
	}
	m.lines[area] = cp
	return nil
}

// Clone devuelve una copia profunda; mutar el clon nunca afecta al original.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix()
	if m == nil {
		return out
	}
	out.areas = append(out.areas, m.areas...)
	for area, ls := range m.lines {
		cp := make([]InventoryLine, len(ls))
		for i, l := range ls {
			cp[i] = l.clone()
		}
		out.lines[area] = cp
	}
	return out
}

// Find ubica la línea de un producto dentro de un área.
func (m *Matrix) Find(area, productoID string) (InventoryLine, bool) {
	if l := m.find(area, productoID); l != nil {
		return l.clone(), true
	}
	return InventoryLine{}, false
}

func (m *Matrix) find(area, productoID string) *InventoryLine {
	if m == nil {
		return nil
	}
	ls := m.lines[area]
	for i := range ls {
		if ls[i].ProductoID == productoID {
			return &ls[i]
		}
	}
	return nil
}

func (m *Matrix) each(fn func(l *InventoryLine)) {
	for _, area := range m.areas {
		ls := m.lines[area]
		for i := range ls {
			fn(&ls[i])
		}
	}
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// SetField guarda valor (coaccionado a decimal no negativo) en el campo de la línea.
// Devuelve false si no hay línea para (area, productoID).
func (m *Matrix) SetField(area, productoID string, campo Campo, valor string) bool {
	l := m.find(area, productoID)
	if l == nil {
		return false
	}
	return l.set(campo, CoerceQuantity(valor))
}

// SetComment asigna la anotación del campo. Un texto vacío deja la clave con valor vacío.
func (m *Matrix) SetComment(area, productoID string, campo Campo, texto string) bool {
	l := m.find(area, productoID)
	if l == nil {
		return false
	}
	if l.Comentarios == nil {
		l.Comentarios = Comentarios{}
	}
	l.Comentarios[string(campo)] = texto
	return true
}

// ResetAll pone en cero todas las cantidades y borra los comentarios de todas las líneas.
func (m *Matrix) ResetAll() {
	m.each(func(l *InventoryLine) {
		zero := decimal.Zero
		l.Inicio = decimal.Zero
		l.Entradas = decimal.Zero
		l.Consumo = decimal.Zero
		l.Merma = decimal.Zero
		l.OtrasSalidas = decimal.Zero
		l.FinalFisico = &zero
		l.FinalTeorico = decimal.Zero
		l.Diferencia = decimal.Zero
		l.Comentarios = Comentarios{}
	})
}

// DecodeComentarios llena Comentarios desde el blob de cada línea. Un blob mal formado
// deja esa línea con un mapa vacío; se devuelven los productos afectados.
func (m *Matrix) DecodeComentarios() []string {
	var malformed []string
	m.each(func(l *InventoryLine) {
		c, err := DecodeComentarios(l.Comentario)
		if err != nil {
			malformed = append(malformed, l.AreaNombre+"/"+l.ProductoID)
		}
		l.Comentarios = c
	})
	return malformed
}

// SavePayload aplana las áreas en una sola secuencia ordenada y reserializa los comentarios.
// fecha completa las líneas que no la traen.
func (m *Matrix) SavePayload(fecha string) []InventoryLine {
	out := make([]InventoryLine, 0, m.Len())
	m.each(func(l *InventoryLine) {
		cp := l.clone()
		blob := EncodeComentarios(cp.Comentarios)
		cp.Comentario = &blob
		if cp.Fecha == "" {
			cp.Fecha = fecha
		}
		out = append(out, cp)
	})
	return out
}

// ── JSON ──────────────────────────────────────────────────────────────────────

// MarshalJSON emite un objeto área → líneas respetando el orden de las áreas.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, area := range m.areas {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(area)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteByte(':')
			ls := m.lines[area]
			if ls == nil {
				ls = []InventoryLine{}
			}
			v, err := json.Marshal(ls)
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON lee el objeto área → líneas conservando el orden de las claves.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = *NewMatrix()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("ipv: se esperaba un objeto área → líneas")
	}
	out := NewMatrix()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		area, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ipv: clave de área inválida")
		}
		var ls []InventoryLine
		if err := dec.Decode(&ls); err != nil {
			return fmt.Errorf("ipv: líneas del área %q: %w", area, err)
		}
		if err := out.SetArea(area, ls); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *out
	return nil
}
