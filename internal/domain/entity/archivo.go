package entity

import "io"

// Archivo es un archivo generado por el backend (exportaciones a planilla).
type Archivo struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

// ArchivoSubido es un archivo recibido del usuario que se reenvía al backend.
// Campos viaja como campos de formulario junto al archivo.
type ArchivoSubido struct {
	Nombre    string
	Contenido io.Reader
	Campos    map[string]string
}
