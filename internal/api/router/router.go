package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"gofulfil/internal/api/fulfillment"
	"gofulfil/internal/api/location"
	"gofulfil/internal/api/operator"
	"gofulfil/internal/api/warehouse"
	"gofulfil/internal/domain"
	"gofulfil/internal/pkg/cache"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
	"gofulfil/internal/pkg/middleware"

	_ "gofulfil/docs" // registra a especificação OpenAPI no swag
)

// Deps reúne os handlers e a infraestrutura que o roteador monta.
type Deps struct {
	Warehouses   *warehouse.Handler
	Fulfillments *fulfillment.Handler
	Locations    *location.Handler
	Operators    *operator.Handler

	TokenSvc middleware.TokenService
	Metrics  *metrics.Prometheus
	Logger   logger.Logger

	// Sem Cache o rate limiter não é instalado.
	Cache           cache.Client
	RateLimitMax    int
	RateLimitPeriod time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	auth := middleware.NewAuthMiddleware(d.TokenSvc)
	writers := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleOperator)
	admins := middleware.PermissionMiddleware(domain.RoleAdmin)
	protected := func(h http.HandlerFunc) http.HandlerFunc { return auth(writers(h)) }
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc { return auth(admins(h)) }

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, d.Metrics.Instrument(pattern, h))
	}

	// Health check e infraestrutura
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /metrics", d.Metrics.Handler())
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Armazéns
	route("POST /v1/warehouses", protected(d.Warehouses.CreateWarehouseHandler))
	route("GET /v1/warehouses", d.Warehouses.ListWarehousesHandler)
	route("GET /v1/warehouses/{code}", d.Warehouses.GetWarehouseHandler)
	route("PUT /v1/warehouses/{code}", protected(d.Warehouses.ReplaceWarehouseHandler))
	route("DELETE /v1/warehouses/{code}", protected(d.Warehouses.ArchiveWarehouseHandler))

	// Associações
	route("POST /v1/fulfillments", protected(d.Fulfillments.AssociateHandler))
	route("GET /v1/stores/{name}/fulfillments", d.Fulfillments.ListByStoreHandler)

	// Catálogo de locais
	route("GET /v1/locations", d.Locations.ListLocationsHandler)

	// Operadores
	route("POST /v1/operators/register", d.Operators.RegisterHandler)
	route("POST /v1/operators/login", d.Operators.LoginHandler)
	route("POST /v1/operators", adminOnly(d.Operators.CreateOperatorHandler))

	if d.Cache == nil {
		return mux
	}
	return middleware.RateLimiter(d.Cache, d.RateLimitMax, d.RateLimitPeriod, d.Logger)(mux)
}

// PingHandler é o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
