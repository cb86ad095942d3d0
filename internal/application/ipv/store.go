package ipv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/ipv"
)

// Mensajes que ve el usuario en el estado de la sesión.
const (
	MsgErrorCarga     = "Error al cargar los datos del inventario."
	MsgErrorConsumo   = "Error al calcular el consumo."
	MsgErrorGuardar   = "Error al guardar el registro."
	MsgSinFecha       = "Por favor, seleccione una fecha."
	AvisoSinVentas    = "No se encontraron ventas para la fecha seleccionada. El consumo se mantendrá en cero."
	AvisoSinProductos = "No se pudieron cargar los productos, la UM no aparecerá en el reporte."
)

// Store es el Inventory Matrix Store de una sesión: la matriz del día, la del día anterior
// y el último error/aviso. Cada mutación trabaja sobre un clon y lo intercambia al final,
// así que una matriz publicada nunca se modifica.
type Store struct {
	id      string
	backend Backend
	drafts  DraftStore
	log     zerolog.Logger

	mu       sync.Mutex
	fecha    string
	actual   *ipv.Matrix
	anterior *ipv.Matrix
	gen      uint64 // última carga pedida
	vigente  uint64 // carga que produjo actual
	seq      uint64 // versión del borrador
	cargando bool
	lastErr  string
	aviso    string

	// saveMu ordena las escrituras de borradores; guardado es la última versión enviada al cache.
	saveMu   sync.Mutex
	guardado uint64
}

// NewStore crea un store vacío (sin fecha cargada).
func NewStore(id string, backend Backend, drafts DraftStore, log zerolog.Logger) *Store {
	if drafts == nil {
		drafts = NopDraftStore{}
	}
	return &Store{
		id:      id,
		backend: backend,
		drafts:  drafts,
		log:     log.With().Str("session", id).Logger(),
	}
}

// ID identificador de la sesión.
func (s *Store) ID() string { return s.id }

// Snapshot es la vista del estado de la sesión.
type Snapshot struct {
	ID            string      `json:"id"`
	Fecha         string      `json:"fecha"`
	Matriz        *ipv.Matrix `json:"matriz"`
	TieneAnterior bool        `json:"tiene_anterior"`
	Cargando      bool        `json:"cargando"`
	Error         string      `json:"error,omitempty"`
	Aviso         string      `json:"aviso,omitempty"`
}

// Snapshot devuelve una copia del estado actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:            s.id,
		Fecha:         s.fecha,
		Matriz:        s.actual.Clone(),
		TieneAnterior: s.anterior != nil,
		Cargando:      s.cargando,
		Error:         s.lastErr,
		Aviso:         s.aviso,
	}
}

// ── Carga ─────────────────────────────────────────────────────────────────────

// Load trae la matriz de fecha y la del día anterior en paralelo. Si falla la del día
// anterior la sesión queda sin datos previos; si falla la del día se conserva el estado
// anterior y se registra el error. Una carga reemplazada por otra más reciente se descarta
// con domain.ErrStaleLoad.
func (s *Store) Load(ctx context.Context, fecha string) error {
	prev, err := ipv.PreviousDay(fecha)
	if err != nil {
		s.fail(err, "")
		return err
	}

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.cargando = true
	s.mu.Unlock()

	log := s.log.With().Str("fecha", fecha).Uint64("gen", gen).Logger()
	log.Debug().Msg("cargando estado IPV")

	var actual, anterior *ipv.Matrix
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.backend.ObtenerEstado(gctx, fecha)
		if err != nil {
			return err
		}
		actual = m
		return nil
	})
	g.Go(func() error {
		m, err := s.backend.ObtenerEstado(gctx, prev)
		if err != nil {
			log.Warn().Err(err).Str("fecha_anterior", prev).Msg("sin datos del día anterior")
			return nil
		}
		anterior = m
		return nil
	})
	fetchErr := g.Wait()

	if fetchErr == nil {
		if actual == nil {
			actual = ipv.NewMatrix()
		}
		if bad := actual.DecodeComentarios(); len(bad) > 0 {
			log.Warn().Strs("lineas", bad).Msg("comentarios mal formados, se ignoran")
		}
		if anterior != nil {
			anterior.DecodeComentarios()
		}
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		log.Info().Msg("carga obsoleta descartada")
		return domain.ErrStaleLoad
	}
	s.cargando = false
	if fetchErr != nil {
		s.lastErr = MsgErrorCarga
		s.mu.Unlock()
		log.Error().Err(fetchErr).Msg("error al cargar estado IPV")
		return fmt.Errorf("ipv: cargar estado: %w", fetchErr)
	}
	s.fecha = fecha
	s.actual = actual
	s.anterior = anterior
	s.vigente = gen
	s.lastErr = ""
	s.aviso = ""
	d, seq := s.draftLocked()
	s.mu.Unlock()

	log.Info().Int("lineas", actual.Len()).Bool("anterior", anterior != nil).Msg("estado IPV cargado")
	s.persist(ctx, d, seq)
	return nil
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// SetField guarda valor en el campo editable de la línea. Devuelve false si la línea no existe.
func (s *Store) SetField(ctx context.Context, area, productoID string, campo ipv.Campo, valor string) (bool, error) {
	if !campo.Editable() {
		return false, fmt.Errorf("%w: el campo %q no es editable", domain.ErrInvalidInput, campo)
	}
	var ok bool
	err := s.mutate(ctx, func(m *ipv.Matrix) error {
		ok = m.SetField(area, productoID, campo, valor)
		return nil
	})
	return ok, err
}

// SetFieldExpression evalúa expr y guarda el resultado redondeado a 3 decimales.
func (s *Store) SetFieldExpression(ctx context.Context, area, productoID string, campo ipv.Campo, expr string) (bool, error) {
	v, err := ipv.EvaluateCell(expr)
	if err != nil {
		return false, err
	}
	return s.SetField(ctx, area, productoID, campo, v.String())
}

// SetComment asigna la anotación de un campo. Texto vacío deja el campo sin anotación.
func (s *Store) SetComment(ctx context.Context, area, productoID string, campo ipv.Campo, texto string) (bool, error) {
	if !campo.Comentable() {
		return false, fmt.Errorf("%w: el campo %q no admite comentarios", domain.ErrInvalidInput, campo)
	}
	var ok bool
	err := s.mutate(ctx, func(m *ipv.Matrix) error {
		ok = m.SetComment(area, productoID, campo, texto)
		return nil
	})
	return ok, err
}

// Recompute recalcula final teórico y diferencia. Devuelve las líneas recalculadas.
func (s *Store) Recompute(ctx context.Context) (int, error) {
	var n int
	err := s.mutate(ctx, func(m *ipv.Matrix) error {
		n = ipv.RecomputeDerived(m)
		return nil
	})
	return n, err
}

// ResetAll pone la matriz en cero sin volver a consultar el backend.
func (s *Store) ResetAll(ctx context.Context) error {
	return s.mutate(ctx, func(m *ipv.Matrix) error {
		m.ResetAll()
		return nil
	})
}

// MergeConsumption pide al backend el consumo de la fecha cargada y lo fusiona en la matriz.
// Sin ventas no es un error: se deja el aviso y el consumo queda como estaba.
// Si mientras tanto se publicó otra carga el consumo se descarta con domain.ErrStaleLoad.
func (s *Store) MergeConsumption(ctx context.Context) (ipv.MergeResult, error) {
	s.mu.Lock()
	fecha, gen, hasData := s.fecha, s.vigente, s.actual != nil
	s.mu.Unlock()
	if fecha == "" {
		s.fail(domain.ErrMissingDate, "")
		return ipv.MergeResult{}, domain.ErrMissingDate
	}
	if !hasData {
		return ipv.MergeResult{}, domain.ErrNoData
	}

	consumos, err := s.backend.CalcularConsumo(ctx, fecha)
	if err != nil {
		s.fail(err, MsgErrorConsumo)
		s.log.Error().Err(err).Str("fecha", fecha).Msg("error al calcular consumo")
		return ipv.MergeResult{}, fmt.Errorf("ipv: calcular consumo: %w", err)
	}

	var res ipv.MergeResult
	err = s.mutateIf(ctx, gen, func(m *ipv.Matrix) error {
		res = ipv.MergeConsumption(m, consumos)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStaleLoad) {
			s.log.Info().Str("fecha", fecha).Msg("consumo obsoleto descartado")
		}
		return ipv.MergeResult{}, err
	}

	s.mu.Lock()
	if len(consumos) == 0 {
		s.aviso = AvisoSinVentas
	} else {
		s.aviso = ""
	}
	s.lastErr = ""
	s.mu.Unlock()

	s.log.Info().Str("fecha", fecha).Int("claves", res.Claves).Int("lineas", res.Afectadas).Msg("consumo fusionado")
	return res, nil
}

// Save envía la matriz aplanada al backend. Devuelve las líneas enviadas.
func (s *Store) Save(ctx context.Context) (int, error) {
	s.mu.Lock()
	fecha, actual := s.fecha, s.actual
	s.mu.Unlock()
	if fecha == "" {
		s.fail(domain.ErrMissingDate, "")
		return 0, domain.ErrMissingDate
	}
	if actual == nil {
		return 0, domain.ErrNoData
	}

	// actual nunca se muta después de publicado, no hace falta clonar
	payload := actual.SavePayload(fecha)
	if err := s.backend.GuardarInventario(ctx, payload); err != nil {
		s.fail(err, MsgErrorGuardar)
		s.log.Error().Err(err).Str("fecha", fecha).Msg("error al guardar registro IPV")
		return 0, fmt.Errorf("ipv: guardar: %w", err)
	}

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	s.log.Info().Str("fecha", fecha).Int("lineas", len(payload)).Msg("registro IPV guardado")
	return len(payload), nil
}

// ReportInput arma la entrada del Report Builder con la fecha cargada.
func (s *Store) ReportInput() (ipv.ReportInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fecha == "" {
		s.lastErr = MsgSinFecha
		return ipv.ReportInput{}, domain.ErrMissingDate
	}
	if s.actual == nil {
		return ipv.ReportInput{}, domain.ErrNoData
	}
	return ipv.ReportInput{Fecha: s.fecha, Actual: s.actual, Anterior: s.anterior}, nil
}

// Restore reemplaza el estado con un borrador guardado.
func (s *Store) Restore(d *Draft) {
	if d == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fecha = d.Fecha
	s.actual = d.Actual
	s.anterior = d.Anterior
	s.gen++
	s.vigente = s.gen
}

// ── internos ──────────────────────────────────────────────────────────────────

func (s *Store) mutate(ctx context.Context, fn func(m *ipv.Matrix) error) error {
	return s.mutateIf(ctx, 0, fn)
}

// mutateIf aplica fn sobre un clon de la matriz actual. gen != 0 exige que la matriz
// publicada siga siendo la de la carga gen.
func (s *Store) mutateIf(ctx context.Context, gen uint64, fn func(m *ipv.Matrix) error) error {
	s.mu.Lock()
	if s.actual == nil {
		s.mu.Unlock()
		return domain.ErrNoData
	}
	if gen != 0 && gen != s.vigente {
		s.mu.Unlock()
		return domain.ErrStaleLoad
	}
	next := s.actual.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.actual = next
	d, seq := s.draftLocked()
	s.mu.Unlock()

	s.persist(ctx, d, seq)
	return nil
}

// fail registra el error visible para el usuario; msg vacío usa el propio error.
func (s *Store) fail(err error, msg string) {
	if msg == "" {
		switch {
		case errors.Is(err, domain.ErrMissingDate):
			msg = MsgSinFecha
		default:
			msg = err.Error()
		}
	}
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// draftLocked arma el borrador del estado publicado y su versión. Requiere s.mu.
func (s *Store) draftLocked() (*Draft, uint64) {
	s.seq++
	return &Draft{Fecha: s.fecha, Actual: s.actual, Anterior: s.anterior, GuardadoEn: time.Now().UTC()}, s.seq
}

// persist guarda el borrador salvo que ya se haya escrito uno más nuevo;
// un fallo del cache solo se registra.
func (s *Store) persist(ctx context.Context, d *Draft, seq uint64) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if seq <= s.guardado {
		return
	}
	s.guardado = seq
	if err := s.drafts.Save(ctx, s.id, d); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo guardar el borrador de la sesión")
	}
}
