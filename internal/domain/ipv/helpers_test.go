package ipv_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// linea construye una línea con las cantidades básicas.
func linea(productoID, nombre, areaID, area string, inicio, entradas, consumo, merma, otras string, fisico *decimal.Decimal) ipv.InventoryLine {
	return ipv.InventoryLine{
		ProductoID:     productoID,
		ProductoNombre: nombre,
		AreaID:         areaID,
		AreaNombre:     area,
		Inicio:         dec(inicio),
		Entradas:       dec(entradas),
		Consumo:        dec(consumo),
		Merma:          dec(merma),
		OtrasSalidas:   dec(otras),
		FinalFisico:    fisico,
	}
}

func matriz(t *testing.T, areas map[string][]ipv.InventoryLine, orden ...string) *ipv.Matrix {
	t.Helper()
	m := ipv.NewMatrix()
	for _, a := range orden {
		require.NoError(t, m.SetArea(a, areas[a]))
	}
	return m
}
