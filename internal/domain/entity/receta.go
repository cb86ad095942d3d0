package entity

import "github.com/shopspring/decimal"

// Receta agrupa los ingredientes que se descuentan por cada unidad vendida.
type Receta struct {
	ID           string        `json:"id,omitempty"`
	Nombre       string        `json:"nombre"`
	Activa       bool          `json:"activa"`
	Ingredientes []Ingrediente `json:"ingredientes"`
}

// Ingrediente indica qué producto se consume, desde qué área y en qué cantidad por unidad de receta.
type Ingrediente struct {
	ID         string          `json:"id,omitempty"`
	ProductoID string          `json:"producto_id"`
	AreaID     string          `json:"area_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}
