package ipv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceQuantity convierte la entrada del usuario en una cantidad no negativa.
// Texto no numérico o negativo vale cero.
func CoerceQuantity(valor string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(valor))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FinalTeorico calcula inicio + entradas − consumo − merma − otras salidas, sin redondeo.
func FinalTeorico(l InventoryLine) decimal.Decimal {
	return l.Inicio.Add(l.Entradas).Sub(l.Consumo).Sub(l.Merma).Sub(l.OtrasSalidas)
}

// RecomputeDerived recalcula final teórico y diferencia en cada línea con conteo físico.
// Las líneas sin contar conservan sus derivados previos. Devuelve las líneas recalculadas.
func RecomputeDerived(m *Matrix) int {
	if m == nil {
		return 0
	}
	n := 0
	m.each(func(l *InventoryLine) {
		if l.FinalFisico == nil {
			return
		}
		l.FinalTeorico = FinalTeorico(*l)
		l.Diferencia = l.FinalFisico.Sub(l.FinalTeorico)
		n++
	})
	return n
}
