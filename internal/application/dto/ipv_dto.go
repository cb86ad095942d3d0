package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// ── Sesiones IPV ──────────────────────────────────────────────────────────────

// SesionCreadaResponse id de la sesión recién creada.
type SesionCreadaResponse struct {
	ID string `json:"id"`
}

// CargarRequest fecha a cargar. Vacía responde MISSING_DATE.
type CargarRequest struct {
	Fecha string `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
}

// ValorCelda acepta el valor de una celda como texto o como número JSON.
type ValorCelda string

// UnmarshalJSON admite "12.5", 12.5 y null (vacío).
func (v *ValorCelda) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ValorCelda(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("valor: se esperaba texto o número")
		}
		*v = ValorCelda(n.String())
	}
	return nil
}

// ValorRequest escribe una celda. Con Evaluar el valor se toma como expresión aritmética.
type ValorRequest struct {
	Area       string     `json:"area" validate:"required"`
	ProductoID string     `json:"producto_id" validate:"required"`
	Campo      string     `json:"campo" validate:"required,oneof=inicio entradas merma otras_salidas final_fisico"`
	Valor      ValorCelda `json:"valor"`
	Evaluar    bool       `json:"evaluar"`
}

// ComentarioRequest anota una celda; texto vacío borra la anotación.
type ComentarioRequest struct {
	Area       string `json:"area" validate:"required"`
	ProductoID string `json:"producto_id" validate:"required"`
	Campo      string `json:"campo" validate:"required,oneof=inicio entradas merma otras_salidas final_fisico"`
	Texto      string `json:"texto" validate:"max=500"`
}

// ActualizacionResponse indica si la celda existía y se modificó.
type ActualizacionResponse struct {
	Actualizado bool `json:"actualizado"`
}

// ConsumoResponse resultado de fusionar el consumo calculado por el backend.
type ConsumoResponse struct {
	ipv.MergeResult
	Aviso string `json:"aviso,omitempty"`
}

// DiferenciasResponse líneas recalculadas.
type DiferenciasResponse struct {
	Lineas int `json:"lineas"`
}

// GuardarResponse resultado de guardar el registro del día.
type GuardarResponse struct {
	Message string `json:"message"`
	Fecha   string `json:"fecha"`
	Lineas  int    `json:"lineas"`
}

// EvaluarRequest expresión de una celda.
type EvaluarRequest struct {
	Expresion string `json:"expresion" validate:"required,max=256"`
}

// EvaluarResponse resultado redondeado a 3 decimales, como número JSON.
type EvaluarResponse struct {
	Resultado json.Number `json:"resultado"`
}

// ── Modelos y registros ───────────────────────────────────────────────────────

// ModeloProductoRequest producto del modelo; el orden recibido se renumera.
type ModeloProductoRequest struct {
	ID    string `json:"id" validate:"required"`
	Orden int    `json:"orden"`
}

// ModeloRequest modelo IPV de un área.
type ModeloRequest struct {
	AreaID    string                  `json:"area_id" validate:"required"`
	Productos []ModeloProductoRequest `json:"productos" validate:"dive"`
}
