package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/domain/entity"
)

// maxBody límite de lectura de respuestas JSON del backend.
const maxBody = 16 << 20

// Client adaptador HTTP hacia el backend REST del restaurante.
// Usa net/http de la librería estándar; el backend responde JSON y los errores como {"error": "..."}.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente. baseURL suele ser "http://localhost:5000/api".
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend: URL base inválida %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}, nil
}

// BackendError respuesta no exitosa del backend.
type BackendError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: %s %s: HTTP %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s %s: HTTP %d", e.Method, e.Path, e.Status)
}

// Unwrap traduce el status a un error de dominio.
func (e *BackendError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return domain.ErrInvalidInput
	default:
		return domain.ErrBackendUnavailable
	}
}

// ── Transporte ────────────────────────────────────────────────────────────────

// resolve arma la URL final; path ya viene escapado por segmento.
func (c *Client) resolve(path string, query url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return "", err
	}
	u := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// send ejecuta la petición y devuelve la respuesta si el status es 2xx.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*http.Response, error) {
	target, err := c.resolve(path, query)
	if err != nil {
		return nil, fmt.Errorf("backend: ruta inválida %q: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: %s %s: %w", method, path, ctx.Err())
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend no responde")
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
			Dur("latency", time.Since(start)).Msg("backend")
		return resp, nil
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	bErr := &BackendError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(raw)}
	c.log.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Str("error", bErr.Message).Msg("backend respondió con error")
	return nil, bErr
}

func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// doJSON envía in como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, err := c.send(ctx, method, path, query, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("backend: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

// download trae un archivo tal cual, con su tipo y nombre.
func (c *Client) download(ctx context.Context, path string, query url.Values) (*entity.Archivo, error) {
	resp, err := c.send(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("backend: leer archivo: %w", err)
	}
	blob := &entity.Archivo{ContentType: resp.Header.Get("Content-Type"), Datos: data}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			blob.Nombre = params["filename"]
		}
	}
	return blob, nil
}

// upload reenvía un archivo como multipart/form-data en el campo "file".
func (c *Client) upload(ctx context.Context, path string, up entity.ArchivoSubido, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range up.Campos {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("backend: armar multipart: %w", err)
		}
	}
	fw, err := mw.CreateFormFile("file", up.Nombre)
	if err != nil {
		return fmt.Errorf("backend: armar multipart: %w", err)
	}
	if _, err := io.Copy(fw, up.Contenido); err != nil {
		return fmt.Errorf("backend: copiar archivo: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: cerrar multipart: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, mw.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("backend: deserializar %s: %w", path, err)
	}
	return nil
}

// Ping comprueba que el backend responde (lista de áreas).
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "areas/", nil, "", nil)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}
