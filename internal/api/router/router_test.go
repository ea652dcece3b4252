package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofulfil/internal/api/fulfillment"
	"gofulfil/internal/api/location"
	"gofulfil/internal/api/operator"
	"gofulfil/internal/api/router"
	"gofulfil/internal/api/warehouse"
	"gofulfil/internal/app"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/cache"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
	"gofulfil/internal/pkg/token"
	"gofulfil/internal/repository/memory"
)

func newTestRouter(t *testing.T, c cache.Client, limit int) http.Handler {
	t.Helper()
	store := memory.NewStore()
	store.Seed(memory.DefaultProducts, memory.DefaultStores)

	log := logger.NewNop()
	tokenSvc := token.NewService("segredo-de-teste", time.Hour)
	prom := metrics.NewPrometheus()
	services := app.BuildMemory(store, app.Infra{Logger: log, Metrics: prom, Tokens: tokenSvc})

	return router.NewRouter(router.Deps{
		Warehouses:      warehouse.NewHandler(services.Warehouses, log),
		Fulfillments:    fulfillment.NewHandler(services.Fulfillments, log),
		Locations:       location.NewHandler(services.Locations, log),
		Operators:       operator.NewHandler(services.Operators, log),
		TokenSvc:        tokenSvc,
		Metrics:         prom,
		Logger:          log,
		Cache:           c,
		RateLimitMax:    limit,
		RateLimitPeriod: time.Minute,
	})
}

func do(t *testing.T, h http.Handler, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// login registra a primeira conta, que vira admin, e devolve seu token.
func login(t *testing.T, h http.Handler) string {
	t.Helper()
	return registerAndLogin(t, h, "ops@gofulfil.local")
}

func registerAndLogin(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	creds := map[string]string{"email": email, "password": "s3cret!!"}

	rec := do(t, h, http.MethodPost, "/v1/operators/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	return loginAs(t, h, creds)
}

func loginAs(t *testing.T, h http.Handler, creds map[string]string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/operators/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out["token"])
	return out["token"]
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var e domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestPing(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	rec := do(t, h, http.MethodGet, "/ping", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestCreateWarehouse_RequiresToken(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	rec := do(t, h, http.MethodPost, "/v1/warehouses", "", domain.WarehouseRequest{
		BusinessUnitCode: "MWH.001", Location: "AMSTERDAM-001", Capacity: 30, Stock: 10,
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Category)
}

func TestWarehouseLifecycle_OverHTTP(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	tok := login(t, h)

	rec := do(t, h, http.MethodPost, "/v1/warehouses", tok, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.001", Location: "ZWOLLE-001", Capacity: 30, Stock: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "archivedAt")
	var created domain.Warehouse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.WarehouseActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	// ZWOLLE-001 comporta um único armazém ativo.
	rec = do(t, h, http.MethodPost, "/v1/warehouses", tok, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.002", Location: "ZWOLLE-001", Capacity: 5, Stock: 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Category)

	rec = do(t, h, http.MethodPut, "/v1/warehouses/MWH.001", tok, domain.WarehouseRequest{
		Location: "ZWOLLE-001", Capacity: 35, Stock: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/v1/warehouses/MWH.001", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Com o primeiro arquivado, a vaga em ZWOLLE-001 volta a existir.
	rec = do(t, h, http.MethodPost, "/v1/warehouses", tok, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.002", Location: "ZWOLLE-001", Capacity: 5, Stock: 1,
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/warehouses/MWH.001", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var archived domain.Warehouse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &archived))
	assert.Equal(t, domain.WarehouseArchived, archived.Status)
	assert.False(t, archived.ArchivedAt.IsZero())

	rec = do(t, h, http.MethodGet, "/v1/warehouses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Warehouse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)
}

func TestGetWarehouse_NotFound(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	rec := do(t, h, http.MethodGet, "/v1/warehouses/NOPE", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Category)
}

func TestCreateWarehouse_UnknownFieldRejected(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	tok := login(t, h)

	rec := do(t, h, http.MethodPost, "/v1/warehouses", tok, map[string]interface{}{
		"businessUnitCode": "MWH.001", "location": "AMSTERDAM-001", "capacity": 10, "stock": 1, "color": "red",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssociate_IdempotentAndListed(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	tok := login(t, h)

	rec := do(t, h, http.MethodPost, "/v1/warehouses", tok, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.001", Location: "AMSTERDAM-001", Capacity: 30, Stock: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	trio := domain.Fulfillment{ProductName: "KALLAX", StoreName: "TONSTAD", WarehouseCode: "MWH.001"}
	for i := 0; i < 2; i++ {
		rec = do(t, h, http.MethodPost, "/v1/fulfillments", tok, trio)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/v1/stores/TONSTAD/fulfillments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []domain.Fulfillment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []domain.Fulfillment{trio}, list)

	rec = do(t, h, http.MethodPost, "/v1/fulfillments", tok, domain.Fulfillment{
		ProductName: "UNKNOWN", StoreName: "TONSTAD", WarehouseCode: "MWH.001",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "produto não encontrado")
}

func TestListLocations(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	rec := do(t, h, http.MethodGet, "/v1/locations", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var locs []domain.Location
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &locs))
	assert.NotEmpty(t, locs)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	do(t, h, http.MethodGet, "/v1/locations", "", nil)

	rec := do(t, h, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gofulfil_http_request_duration_seconds")
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	h := newTestRouter(t, cache.NewMemoryClient(), 2)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/ping", "", nil).Code)

	rec := do(t, h, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, rec).Category)
}

func TestSelfRegisteredAccount_CannotWrite(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	login(t, h)
	viewer := registerAndLogin(t, h, "curioso@gofulfil.local")

	rec := do(t, h, http.MethodPost, "/v1/warehouses", viewer, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.001", Location: "AMSTERDAM-001", Capacity: 30, Stock: 10,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", decodeError(t, rec).Category)

	rec = do(t, h, http.MethodPost, "/v1/fulfillments", viewer, domain.Fulfillment{
		ProductName: "KALLAX", StoreName: "TONSTAD", WarehouseCode: "MWH.001",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/warehouses", viewer, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateOperator_AdminOnly(t *testing.T) {
	h := newTestRouter(t, nil, 0)
	admin := login(t, h)
	viewer := registerAndLogin(t, h, "curioso@gofulfil.local")

	creds := map[string]string{"email": "doca@gofulfil.local", "password": "s3cret!!"}

	rec := do(t, h, http.MethodPost, "/v1/operators", viewer, creds)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/operators", "", creds)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/v1/operators", admin, creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var op domain.Operator
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &op))
	assert.Equal(t, domain.RoleOperator, op.Role)

	writer := loginAs(t, h, creds)
	rec = do(t, h, http.MethodPost, "/v1/warehouses", writer, domain.WarehouseRequest{
		BusinessUnitCode: "MWH.001", Location: "AMSTERDAM-001", Capacity: 30, Stock: 10,
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
