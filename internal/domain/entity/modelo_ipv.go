package entity

// ProductoModelo es un producto dentro del modelo IPV de un área, con su orden de visualización.
type ProductoModelo struct {
	ProductoID string `json:"producto_id"`
	Orden      int    `json:"orden"`
}

// ModelosIPV mapea areaID → productos del modelo en orden.
type ModelosIPV map[string][]ProductoModelo

// RegistroIPV identifica un inventario diario guardado.
type RegistroIPV struct {
	Fecha string `json:"fecha"`
}

// ModeloArea es el cuerpo con que se guarda el modelo de un área.
type ModeloArea struct {
	AreaID    string           `json:"area_id"`
	Productos []ModeloProducto `json:"productos"`
}

// ModeloProducto producto del modelo tal como lo espera el backend al guardarlo.
type ModeloProducto struct {
	ID    string `json:"id"`
	Orden int    `json:"orden"`
}
