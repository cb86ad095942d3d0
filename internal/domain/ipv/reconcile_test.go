package ipv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

func TestCoerceQuantity(t *testing.T) {
	assert.True(t, ipv.CoerceQuantity("-5").IsZero())
	assert.True(t, ipv.CoerceQuantity("abc").IsZero())
	assert.True(t, ipv.CoerceQuantity("12abc").IsZero(), "no se acepta un prefijo numérico")
	assert.True(t, ipv.CoerceQuantity("3.25").Equal(dec("3.25")))
	assert.True(t, ipv.CoerceQuantity("0.001").Equal(dec("0.001")))
}

func TestRecomputeDerived_Identidades(t *testing.T) {
	m := matriz(t, map[string][]ipv.InventoryLine{
		"Cocina": {
			linea("P1", "Tomate", "A1", "Cocina", "10", "5", "0", "1", "0", decPtr("12")),
			linea("P2", "Aceite", "A1", "Cocina", "2.333", "1.1", "0.5", "0", "0.25", decPtr("2.7")),
		},
		"Bar": {linea("P3", "Limón", "A2", "Bar", "4", "0", "6", "0", "0", decPtr("0"))},
	}, "Cocina", "Bar")

	require.Equal(t, 3, ipv.RecomputeDerived(m))

	verificar := func() {
		for _, area := range m.Areas() {
			for _, l := range m.Lines(area) {
				teorico := l.Inicio.Add(l.Entradas).Sub(l.Consumo).Sub(l.Merma).Sub(l.OtrasSalidas)
				assert.True(t, l.FinalTeorico.Equal(teorico), "%s teórico %s", l.ProductoID, l.FinalTeorico)
				assert.True(t, l.Diferencia.Equal(l.FinalFisico.Sub(teorico)), "%s diferencia %s", l.ProductoID, l.Diferencia)
			}
		}
	}
	verificar()

	ipv.RecomputeDerived(m)
	ipv.RecomputeDerived(m)
	verificar()

	aceite, _ := m.Find("Cocina", "P2")
	assert.Equal(t, "2.683", aceite.FinalTeorico.String(), "sin redondeo intermedio")
	limon, _ := m.Find("Bar", "P3")
	assert.Equal(t, "-2", limon.FinalTeorico.String(), "el teórico puede ser negativo")
	assert.Equal(t, "2", limon.Diferencia.String())
}

func TestRecomputeDerived_SinConteoConservaDerivados(t *testing.T) {
	l := linea("P1", "Tomate", "A1", "Cocina", "10", "5", "0", "1", "0", nil)
	l.FinalTeorico = dec("99")
	l.Diferencia = dec("-7")
	m := matriz(t, map[string][]ipv.InventoryLine{"Cocina": {l}}, "Cocina")

	assert.Equal(t, 0, ipv.RecomputeDerived(m))
	got, _ := m.Find("Cocina", "P1")
	assert.True(t, got.FinalTeorico.Equal(dec("99")))
	assert.True(t, got.Diferencia.Equal(dec("-7")))
}

func TestRecomputeDerived_MatrizNil(t *testing.T) {
	assert.Equal(t, 0, ipv.RecomputeDerived(nil))
}
