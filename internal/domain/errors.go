package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingDate        = errors.New("por favor, seleccione una fecha")
	ErrInvalidDate        = errors.New("formato de fecha inválido, use YYYY-MM-DD")
	ErrSessionNotFound    = errors.New("sesión IPV no encontrada")
	ErrStaleLoad          = errors.New("la carga fue reemplazada por una selección de fecha más reciente")
	ErrBackendUnavailable = errors.New("el backend no respondió correctamente")
	ErrInvalidKey         = errors.New("clave de consumo inválida")
	ErrInvalidExpression  = errors.New("expresión aritmética inválida")
	ErrNoData             = errors.New("no hay datos de inventario cargados")
)
