package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Activos-api/internal/domain"
)

// errorApp expone una ruta que responde con el error inyectado.
func errorApp(err error) *fiber.App {
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	return app
}

func getStatus(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	return resp, body
}

// El error de capacidad mantiene su contrato: 422 con current_count y max_quantity.
func TestRespondError_Capacidad422(t *testing.T) {
	app := errorApp(&domain.CapacityError{AssetName: "Laptop", CurrentCount: 5, MaxQuantity: 5})
	resp, body := getStatus(t, app, "/fail")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, float64(5), body["current_count"])
	assert.Equal(t, float64(5), body["max_quantity"])
	assert.Contains(t, body["message"], "Laptop")
}

func TestRespondError_Validacion422ConCampos(t *testing.T) {
	app := errorApp(domain.NewValidationError("datos inválidos", map[string]string{"name": "obligatorio"}))
	resp, body := getStatus(t, app, "/fail")

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "obligatorio", errs["name"])
}

func TestRespondError_MapeoDeSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{fmt.Errorf("algo explotó"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		resp, body := getStatus(t, errorApp(tc.err), "/fail")
		assert.Equal(t, tc.status, resp.StatusCode, "error %v", tc.err)
		assert.Equal(t, tc.code, body["code"], "error %v", tc.err)
	}
}

// Errores envueltos conservan su mapeo vía errors.Is / errors.As.
func TestRespondError_ErrorEnvuelto(t *testing.T) {
	app := errorApp(fmt.Errorf("obtener préstamo: %w", domain.ErrNotFound))
	resp, body := getStatus(t, app, "/fail")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestPagination_LimitesYDefaults(t *testing.T) {
	app := fiber.New()
	app.Get("/p", func(c *fiber.Ctx) error {
		limit, offset := pagination(c)
		return c.JSON(fiber.Map{"limit": limit, "offset": offset})
	})

	cases := []struct {
		query         string
		limit, offset float64
	}{
		{"", 20, 0},
		{"?limit=50&offset=10", 50, 10},
		{"?limit=0", 20, 0},
		{"?limit=500", 100, 0},
		{"?offset=-3", 20, 0},
	}
	for _, tc := range cases {
		_, body := getStatus(t, app, "/p"+tc.query)
		assert.Equal(t, tc.limit, body["limit"], "query %q", tc.query)
		assert.Equal(t, tc.offset, body["offset"], "query %q", tc.query)
	}
}
