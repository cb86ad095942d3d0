package entity

// Producto representa un insumo del catálogo del backend (solo lectura para el núcleo IPV).
type Producto struct {
	ID           string `json:"id,omitempty"`
	Nombre       string `json:"nombre"`
	UnidadMedida string `json:"unidad_medida"` // código corto de UM: kg, lt, und...
}
