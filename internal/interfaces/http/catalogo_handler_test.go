package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductos_ListBuscaSinTildes(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, raw := call(t, app, http.MethodGet, "/api/productos?q=limon", nil)
	require.Equal(t, http.StatusOK, status)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Limón", out[0]["nombre"])

	status, raw = call(t, app, http.MethodGet, "/api/productos", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &out))
	nombres := []any{out[0]["nombre"], out[1]["nombre"], out[2]["nombre"]}
	assert.Equal(t, []any{"Azúcar", "Limón", "Tomate"}, nombres)
}

func TestProductos_CreateValida(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, out := callJSON(t, app, http.MethodPost, "/api/productos", map[string]string{"nombre": "Tomate"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
	assert.Equal(t, "es requerido", out["fields"].(map[string]any)["unidad_medida"])

	status, out = callJSON(t, app, http.MethodPost, "/api/productos", map[string]string{"nombre": "Cebolla", "unidad_medida": "kg"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "P9", out["id"])
	assert.Equal(t, "Cebolla", out["nombre"])
}

func TestProductos_NoEncontrado(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, out := callJSON(t, app, http.MethodGet, "/api/productos/P404", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out["code"])
	assert.Equal(t, "Producto no encontrado", out["message"])
}

func TestProductos_Export(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/productos/export", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "XLSXDATA", string(body))
	assert.Equal(t, "attachment; filename=productos.xlsx", resp.Header.Get("Content-Disposition"))
}

func multipartVentas(t *testing.T, filename, fecha string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, _ = fw.Write([]byte("filas"))
	if fecha != "" {
		require.NoError(t, w.WriteField("fecha", fecha))
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/ventas/importar", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestVentas_Importar(t *testing.T) {
	fb := &fakeBackend{}
	app := buildTestApp(t, fb)

	resp, err := app.Test(multipartVentas(t, "ventas.xlsx", "2024-03-01"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Se importaron 1 ventas correctamente", out["message"])

	fb.mu.Lock()
	defer fb.mu.Unlock()
	assert.Equal(t, "ventas.xlsx:filas", fb.subido)
	assert.Equal(t, "2024-03-01", fb.fechaForm)
}

func TestVentas_ImportarRechazaFormato(t *testing.T) {
	fb := &fakeBackend{}
	app := buildTestApp(t, fb)

	resp, err := app.Test(multipartVentas(t, "ventas.csv", ""), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, fb.count("POST /api/ventas/importar/"))
}

func TestVentas_ImportarSinArchivo(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, out := callJSON(t, app, http.MethodPost, "/api/ventas/importar", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestVentas_DeleteMultiple(t *testing.T) {
	fb := &fakeBackend{}
	app := buildTestApp(t, fb)

	status, out := callJSON(t, app, http.MethodPost, "/api/ventas/delete-multiple", map[string]any{"ids": []string{"V1", "V1", "V2"}})
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, []any{"V1", "V2"}, out["ids"])

	fb.mu.Lock()
	assert.Equal(t, []string{"V1", "V2"}, fb.borradas)
	fb.mu.Unlock()

	status, _ = callJSON(t, app, http.MethodPost, "/api/ventas/delete-multiple", map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestModelos(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, out := callJSON(t, app, http.MethodGet, "/api/ipv/modelos", nil)
	require.Equal(t, http.StatusOK, status)
	a1 := out["A1"].([]any)
	assert.Equal(t, "P1", a1[0].(map[string]any)["producto_id"])

	status, out = callJSON(t, app, http.MethodPost, "/api/ipv/modelos", map[string]any{
		"area_id": "A1",
		"productos": []map[string]any{
			{"id": "P2", "orden": 5}, {"id": "P1", "orden": 2}, {"id": "P2", "orden": 7},
		},
	})
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, []any{
		map[string]any{"id": "P1", "orden": json.Number("0")},
		map[string]any{"id": "P2", "orden": json.Number("1")},
	}, out["productos"])
}

func TestRegistros_MasRecientePrimero(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, raw := call(t, app, http.MethodGet, "/api/ipv/registros", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"fecha":"2024-03-01"},{"fecha":"2024-02-28"}]`, string(raw))
}

func TestHistorial(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, raw := call(t, app, http.MethodGet, "/api/historial/Producto", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"valor_nuevo":"Tomate"`)

	status, out := callJSON(t, app, http.MethodGet, "/api/historial/Usuario", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out["code"])
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t, &fakeBackend{})

	status, out := callJSON(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "ipv-restaurante", out["service"])
	assert.Equal(t, "ok", out["backend"])
}
