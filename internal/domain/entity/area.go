package entity

// Area es un lugar de almacenamiento o producción (cocina, bar, almacén).
type Area struct {
	ID     string `json:"id,omitempty"`
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo,omitempty"`
}
