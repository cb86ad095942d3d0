package ipv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
)

// keySeparator separa producto y área en la forma textual de la clave de consumo.
const keySeparator = "|"

// ConsumptionKey identifica un consumo por producto y área.
type ConsumptionKey struct {
	ProductoID string
	AreaID     string
}

// NewConsumptionKey valida que ningún identificador esté vacío ni contenga el separador.
func NewConsumptionKey(productoID, areaID string) (ConsumptionKey, error) {
	if productoID == "" || areaID == "" ||
		strings.Contains(productoID, keySeparator) || strings.Contains(areaID, keySeparator) {
		return ConsumptionKey{}, fmt.Errorf("%w: producto=%q área=%q", domain.ErrInvalidKey, productoID, areaID)
	}
	return ConsumptionKey{ProductoID: productoID, AreaID: areaID}, nil
}

// ParseConsumptionKey interpreta "productoId|areaId"; exige exactamente un separador.
func ParseConsumptionKey(s string) (ConsumptionKey, error) {
	parts := strings.Split(s, keySeparator)
	if len(parts) != 2 {
		return ConsumptionKey{}, fmt.Errorf("%w: %q", domain.ErrInvalidKey, s)
	}
	return NewConsumptionKey(parts[0], parts[1])
}

// String devuelve la forma textual que usa el backend.
func (k ConsumptionKey) String() string { return k.ProductoID + keySeparator + k.AreaID }

// ConsumptionMap es el consumo calculado por el backend para una fecha.
type ConsumptionMap map[ConsumptionKey]decimal.Decimal

// MergeResult resume una fusión de consumo.
type MergeResult struct {
	Claves    int `json:"claves"`
	Afectadas int `json:"lineas_actualizadas"`
}

// MergeConsumption sobrescribe el consumo de cada línea cuyo (producto, área) coincide con
// una clave del mapa. Recorre todas las áreas: el área de la clave es un ID y la matriz se
// particiona por nombre, que no tienen por qué coincidir.
func MergeConsumption(m *Matrix, consumos ConsumptionMap) MergeResult {
	res := MergeResult{Claves: len(consumos)}
	if m == nil || len(consumos) == 0 {
		return res
	}
	m.each(func(l *InventoryLine) {
		v, ok := consumos[ConsumptionKey{ProductoID: l.ProductoID, AreaID: l.AreaID}]
		if !ok {
			return
		}
		l.Consumo = v
		res.Afectadas++
	})
	return res
}
