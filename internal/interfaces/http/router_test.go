package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-planta/internal/application/alerts"
	"github.com/tu-usuario/inventario-planta/internal/application/auth"
	"github.com/tu-usuario/inventario-planta/internal/application/dto"
	"github.com/tu-usuario/inventario-planta/internal/application/inventory"
	"github.com/tu-usuario/inventario-planta/internal/application/reports"
	"github.com/tu-usuario/inventario-planta/internal/application/usecase"
	"github.com/tu-usuario/inventario-planta/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/inventario-planta/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/inventario-planta/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Arnés: API completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app   *fiber.App
	token string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore(2 * time.Second)
	productRepo := memory.NewProductRepository(store)
	locationRepo := memory.NewLocationRepository(store)
	stockRepo := memory.NewStockRepository(store)
	movRepo := memory.NewMovementLogRepository(store)
	alertRepo := memory.NewAlertRepository(store)
	settingRepo := memory.NewSettingRepository(store)
	userRepo := memory.NewUserRepository(store)

	require.NoError(t, locationRepo.EnsureDefaults())

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	require.NoError(t, authUC.SeedAdminIfMissing("admin", "admin123"))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(productRepo),
		LocationUC:  usecase.NewLocationUseCase(locationRepo),
		MovementUC:  usecase.NewMovementQueryUseCase(movRepo, stockRepo),
		Engine:      inventory.NewEngine(memory.NewTxRunner(store), productRepo, locationRepo),
		AlertUC:     alerts.NewUseCase(alertRepo, movRepo, productRepo),
		ReportUC:    reports.NewDailyUseCase(movRepo, alertRepo, productRepo),
		AuthUC:      authUC,
		SettingRepo: settingRepo,
		JWTSecret:   testJWTSecret,
	})

	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	return &apiFixture{app: app, token: "Bearer " + tok}
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.token)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de inventario vía HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoDeInventario(t *testing.T) {
	f := newAPIFixture(t)

	// Login con el admin sembrado.
	resp := f.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.Role)

	// Crear producto.
	resp = f.do(t, http.MethodPost, "/api/products", dto.CreateProductRequest{Name: "Widget A", Unit: "unidad"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)

	// Las ubicaciones por defecto están sembradas.
	resp = f.do(t, http.MethodGet, "/api/locations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	locations := decode[[]dto.LocationResponse](t, resp)
	require.Len(t, locations, 3)
	locA := locations[1].ID // Warehouse A (orden alfabético: Storage C primero)
	locB := locations[2].ID

	// Check-in de 100.
	resp = f.do(t, http.MethodPost, "/api/inventory/check-in", dto.CheckInRequest{
		ProductID: product.ID, LocationID: locA, Quantity: 100,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, testUserID, mov.UserID, "el user_id sale del token, no del body")

	// Traslado de 40 a Warehouse B.
	resp = f.do(t, http.MethodPost, "/api/inventory/transfer", dto.TransferRequest{
		ProductID: product.ID, FromLocationID: locA, ToLocationID: locB, Quantity: 40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Stock por producto: 60 en A, 40 en B.
	resp = f.do(t, http.MethodGet, "/api/products/"+product.ID+"/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock := decode[[]dto.LocationStockResponse](t, resp)
	require.Len(t, stock, 2)
	assert.Equal(t, int64(60), stock[0].Quantity) // Warehouse A
	assert.Equal(t, int64(40), stock[1].Quantity) // Warehouse B

	// Check-out que excede lo disponible: 409 con detalle.
	resp = f.do(t, http.MethodPost, "/api/inventory/check-out", dto.CheckOutRequest{
		ProductID: product.ID, LocationID: locA, Quantity: 80,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)
	require.NotNil(t, errBody.Available)
	require.NotNil(t, errBody.Requested)
	assert.Equal(t, int64(60), *errBody.Available)
	assert.Equal(t, int64(80), *errBody.Requested)

	// La bitácora registra exactamente las dos mutaciones confirmadas.
	resp = f.do(t, http.MethodGet, "/api/movements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	movements := decode[dto.MovementListResponse](t, resp)
	assert.Len(t, movements.Movements, 2)
	assert.Equal(t, 2, movements.Page.Total)
}

func TestAPI_RutasProtegidas_SinToken401(t *testing.T) {
	f := newAPIFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_LoginCredencialesInvalidas_401(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "incorrecta"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_UbicacionDuplicada_409(t *testing.T) {
	f := newAPIFixture(t)
	resp := f.do(t, http.MethodPost, "/api/locations", dto.CreateLocationRequest{Name: "Warehouse A"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_BorrarProductoConStock_409(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/products", dto.CreateProductRequest{Name: "Broca 10mm", Unit: "unidad"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[dto.ProductResponse](t, resp)

	resp = f.do(t, http.MethodGet, "/api/locations", nil)
	locations := decode[[]dto.LocationResponse](t, resp)

	resp = f.do(t, http.MethodPost, "/api/inventory/check-in", dto.CheckInRequest{
		ProductID: product.ID, LocationID: locations[0].ID, Quantity: 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/products/"+product.ID, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_Settings_RoundTrip(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPut, "/api/settings/alerts.overdue_hours", fiber.Map{"value": "6"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/settings/alerts.overdue_hours", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "6", body["value"])

	resp = f.do(t, http.MethodGet, "/api/settings/clave.inexistente", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
