package entity

// HistorialCambio es una entrada del registro de cambios que mantiene el backend.
type HistorialCambio struct {
	ID              string  `json:"id,omitempty"`
	EntidadTipo     string  `json:"entidad_tipo"`
	EntidadID       string  `json:"entidad_id"`
	CampoModificado string  `json:"campo_modificado"`
	ValorAnterior   *string `json:"valor_anterior"`
	ValorNuevo      *string `json:"valor_nuevo"`
	FechaCambio     *string `json:"fecha_cambio"`
}
