package dto

import "github.com/shopspring/decimal"

// ProductoRequest alta o modificación de un producto.
type ProductoRequest struct {
	Nombre       string `json:"nombre" validate:"required,max=120"`
	UnidadMedida string `json:"unidad_medida" validate:"required,max=20"`
}

// AreaRequest alta o modificación de un área.
type AreaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=120"`
	Codigo string `json:"codigo" validate:"max=20"`
}

// IngredienteRequest ingrediente de una receta.
type IngredienteRequest struct {
	ProductoID string          `json:"producto_id" validate:"required"`
	AreaID     string          `json:"area_id" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// RecetaRequest alta o modificación de una receta.
type RecetaRequest struct {
	Nombre       string               `json:"nombre" validate:"required,max=120"`
	Activa       *bool                `json:"activa"`
	Ingredientes []IngredienteRequest `json:"ingredientes" validate:"dive"`
}

// VentaRequest corrección de una venta importada.
type VentaRequest struct {
	RecetaNombre string `json:"receta_nombre" validate:"required"`
	Cantidad     int    `json:"cantidad" validate:"min=0"`
	Fecha        string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// DeleteMultipleRequest ids de las ventas a borrar.
type DeleteMultipleRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// DeleteMultipleResponse ids efectivamente enviados al backend.
type DeleteMultipleResponse struct {
	Message string   `json:"message"`
	IDs     []string `json:"ids"`
}
