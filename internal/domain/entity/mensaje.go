package entity

// Mensaje respuesta informativa del backend ({"message": "..."}).
type Mensaje struct {
	Message string `json:"message"`
}
