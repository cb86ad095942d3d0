package ipv

// Campo es el nombre de una columna numérica de una línea IPV, tal como viaja en JSON.
type Campo string

const (
	CampoInicio       Campo = "inicio"
	CampoEntradas     Campo = "entradas"
	CampoConsumo      Campo = "consumo"
	CampoMerma        Campo = "merma"
	CampoOtrasSalidas Campo = "otras_salidas"
	CampoFinalFisico  Campo = "final_fisico"
)

// camposOrdenados fija el orden en que se emiten las notas de un mismo producto.
var camposOrdenados = []Campo{
	CampoInicio, CampoEntradas, CampoConsumo, CampoMerma, CampoOtrasSalidas, CampoFinalFisico,
}

// Editable indica si el usuario puede escribir el campo (el consumo lo calcula el backend).
func (c Campo) Editable() bool {
	switch c {
	case CampoInicio, CampoEntradas, CampoMerma, CampoOtrasSalidas, CampoFinalFisico:
		return true
	}
	return false
}

// Comentable indica si el campo admite una anotación libre.
func (c Campo) Comentable() bool { return c.Editable() }
