package main

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/pkg/logger"
)

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error", Service: "inventario-test"})
}

func TestMountSwagger_ArchivoAusente_NoInterrumpeElArranque(t *testing.T) {
	app := fiber.New()
	require.NotPanics(t, func() {
		mountSwagger(app, newTestLogger(), filepath.Join(t.TempDir(), "no-existe.json"))
	})

	// Sin archivo no hay UI, pero la app sigue sirviendo.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMountSwagger_ConArchivo_PublicaLaUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	spec := []byte(`{"swagger":"2.0","info":{"title":"t","version":"1.0"},"paths":{}}`)
	require.NoError(t, os.WriteFile(path, spec, 0o644))

	app := fiber.New()
	require.NotPanics(t, func() { mountSwagger(app, newTestLogger(), path) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/docs", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSwaggerJSONDelRepo_EsValido(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "docs", "swagger.json"))
	require.NoError(t, err, "main espera ./docs/swagger.json relativo al working dir")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc, "paths")
}
