package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	appipv "github.com/jhoicas/ipv-restaurante/internal/application/ipv"
	"github.com/jhoicas/ipv-restaurante/internal/application/usecase"
	"github.com/jhoicas/ipv-restaurante/internal/infrastructure/backend"
	"github.com/jhoicas/ipv-restaurante/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/ipv-restaurante/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend REST simulado
// ──────────────────────────────────────────────────────────────────────────────

const (
	estadoHoy = `{
	  "Cocina": [
	    {"id":"L1","fecha":"2024-03-01","producto_id":"P1","producto_nombre":"Tomate","area_id":"A1","area_nombre":"Cocina",
	     "inicio":10,"entradas":5,"consumo":0,"merma":0,"otras_salidas":0,"final_fisico":null,"final_teorico":0,"diferencia":0,
	     "comentario":"{\"merma\":\"golpeados\"}"}
	  ],
	  "Bar": [
	    {"id":"L2","fecha":"2024-03-01","producto_id":"P2","producto_nombre":"Ron","area_id":"A2","area_nombre":"Bar",
	     "inicio":3,"entradas":0,"consumo":0,"merma":0,"otras_salidas":0,"final_fisico":null,"final_teorico":0,"diferencia":0,
	     "comentario":null}
	  ]
	}`
	estadoAyer = `{
	  "Cocina": [
	    {"producto_id":"P1","producto_nombre":"Tomate","area_id":"A1","area_nombre":"Cocina",
	     "inicio":0,"entradas":0,"consumo":0,"merma":0,"otras_salidas":0,"final_fisico":9,"final_teorico":0,"diferencia":0}
	  ]
	}`
	productosJSON = `[
	  {"id":"P1","nombre":"Tomate","unidad_medida":"kg"},
	  {"id":"P3","nombre":"Limón","unidad_medida":"kg"},
	  {"id":"P4","nombre":"Azúcar","unidad_medida":"kg"}
	]`
)

// fakeBackend responde como el backend REST y guarda lo que recibe.
type fakeBackend struct {
	mu        sync.Mutex
	consumo   string
	estadoErr bool
	guardado  []map[string]any
	borradas  []string
	subido    string
	fechaForm string
	calls     map[string]int
}

func (f *fakeBackend) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[r.Method+" "+r.URL.Path]++

	write := func(status int, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}

	switch r.Method + " " + r.URL.Path {
	case "GET /api/ipv/estado":
		if f.estadoErr {
			write(http.StatusInternalServerError, `{"error":"db caída"}`)
			return
		}
		switch r.URL.Query().Get("fecha") {
		case "2024-03-01":
			write(http.StatusOK, estadoHoy)
		case "2024-02-29":
			write(http.StatusOK, estadoAyer)
		default:
			write(http.StatusOK, `{}`)
		}
	case "GET /api/ipv/calcular-consumo":
		body := f.consumo
		if body == "" {
			body = `{}`
		}
		write(http.StatusOK, body)
	case "POST /api/ipv/guardar":
		_ = json.NewDecoder(r.Body).Decode(&f.guardado)
		write(http.StatusOK, `{"message":"Registro guardado"}`)
	case "GET /api/ipv/modelos":
		write(http.StatusOK, `{"A1":[{"producto_id":"P2","orden":1},{"producto_id":"P1","orden":0}]}`)
	case "POST /api/ipv/modelos":
		body, _ := io.ReadAll(r.Body)
		write(http.StatusOK, string(body))
	case "GET /api/ipv/registros":
		write(http.StatusOK, `[{"fecha":"2024-02-28"},{"fecha":"2024-03-01"}]`)
	case "GET /api/productos/":
		write(http.StatusOK, productosJSON)
	case "GET /api/productos/P404/":
		write(http.StatusNotFound, `{"error":"Producto no encontrado"}`)
	case "POST /api/productos/":
		var p map[string]any
		_ = json.NewDecoder(r.Body).Decode(&p)
		p["id"] = "P9"
		b, _ := json.Marshal(p)
		write(http.StatusCreated, string(b))
	case "GET /api/productos/export/":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=productos.xlsx")
		_, _ = io.WriteString(w, "XLSXDATA")
	case "POST /api/ventas/importar/":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			write(http.StatusBadRequest, `{"error":"multipart"}`)
			return
		}
		file, fh, err := r.FormFile("file")
		if err != nil {
			write(http.StatusBadRequest, `{"error":"No se encontró el archivo"}`)
			return
		}
		data, _ := io.ReadAll(file)
		_ = file.Close()
		f.subido = fh.Filename + ":" + string(data)
		f.fechaForm = r.FormValue("fecha")
		write(http.StatusCreated, `{"message":"Se importaron 1 ventas correctamente","ventas":[],"nuevas_recetas":[]}`)
	case "POST /api/ventas/delete-multiple/":
		var in struct {
			IDs []string `json:"ids"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.borradas = in.IDs
		write(http.StatusOK, `{"message":"ok"}`)
	case "GET /api/historial/Producto/":
		write(http.StatusOK, `[{"id":"h1","entidad_tipo":"Producto","entidad_id":"P1","campo_modificado":"nombre","valor_anterior":"Tomat","valor_nuevo":"Tomate","fecha_cambio":"2024-03-01T10:00:00"}]`)
	case "GET /api/areas/":
		write(http.StatusOK, `[]`)
	default:
		write(http.StatusNotFound, `{"error":"ruta desconocida"}`)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación de prueba
// ──────────────────────────────────────────────────────────────────────────────

func buildTestApp(t *testing.T, fb *fakeBackend) *fiber.App {
	t.Helper()
	app, _ := buildTestAppWithDrafts(t, fb, nil)
	return app
}

// buildTestAppWithDrafts arma la aplicación con un almacén de borradores y devuelve también el registro de sesiones.
func buildTestAppWithDrafts(t *testing.T, fb *fakeBackend, drafts appipv.DraftStore) (*fiber.App, *appipv.Registry) {
	t.Helper()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(srv.URL+"/api", 5*time.Second, zerolog.Nop())
	require.NoError(t, err)

	sessions := appipv.NewRegistry(client, drafts, time.Hour, zerolog.Nop())
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Sessions:    sessions,
		ReportUC:    appipv.NewReportUseCase(client, pdf.NewMarotoPDFGenerator(""), zerolog.Nop()),
		ProductoUC:  usecase.NewProductoUseCase(client),
		AreaUC:      usecase.NewAreaUseCase(client),
		RecetaUC:    usecase.NewRecetaUseCase(client),
		VentaUC:     usecase.NewVentaUseCase(client),
		ModeloIPVUC: usecase.NewModeloIPVUseCase(client),
		HistorialUC: usecase.NewHistorialUseCase(client),
		Backend:     client,
		ServiceName: "ipv-restaurante",
	})
	return app, sessions
}

// call lanza la petición y devuelve status y cuerpo crudo.
func call(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// callJSON como call, decodificando el cuerpo con números como json.Number.
func callJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	status, raw := call(t, app, method, path, body)
	out := map[string]any{}
	if len(raw) > 0 {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		require.NoError(t, dec.Decode(&out), string(raw))
	}
	return status, out
}

func nuevaSesion(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, out := callJSON(t, app, http.MethodPost, "/api/ipv/sesiones", nil)
	require.Equal(t, http.StatusCreated, status)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	return id
}

// linea busca una línea de la matriz de un snapshot.
func linea(t *testing.T, snap map[string]any, area string, idx int) map[string]any {
	t.Helper()
	matriz, ok := snap["matriz"].(map[string]any)
	require.True(t, ok, "snapshot sin matriz")
	ls, ok := matriz[area].([]any)
	require.True(t, ok, "área %q ausente", area)
	require.Greater(t, len(ls), idx)
	return ls[idx].(map[string]any)
}
