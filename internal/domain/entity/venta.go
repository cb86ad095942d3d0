package entity

// Venta es una línea de ventas importada (receta vendida en una fecha).
type Venta struct {
	ID           string `json:"id,omitempty"`
	RecetaNombre string `json:"receta_nombre"`
	Cantidad     int    `json:"cantidad"`
	Fecha        string `json:"fecha,omitempty"`
}

// ImportacionVentas resultado de importar un archivo de ventas.
type ImportacionVentas struct {
	Message       string   `json:"message"`
	Ventas        []Venta  `json:"ventas"`
	NuevasRecetas []Receta `json:"nuevas_recetas"`
}
