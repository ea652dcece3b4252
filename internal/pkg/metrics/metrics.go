// Package metrics expõe os contadores de negócio e de HTTP no formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados padronizados usados nos rótulos.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
	ResultNoop     = "noop"
	ResultCreated  = "created"
)

// Recorder é o contrato que os serviços usam para registrar métricas.
type Recorder interface {
	WarehouseOperation(operation, result string)
	Association(result string)
}

// Prometheus implementa Recorder sobre um registry do client_golang.
type Prometheus struct {
	registry     *prometheus.Registry
	warehouseOps *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	associations *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewPrometheus cria e registra os coletores em um registry próprio.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		warehouseOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gofulfil_warehouse_operations_total",
			Help: "Operações de ciclo de vida de armazéns por resultado.",
		}, []string{"operation", "result"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gofulfil_validation_rejections_total",
			Help: "Requisições rejeitadas por violação de regra.",
		}, []string{"operation"}),
		associations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gofulfil_associations_total",
			Help: "Associações produto-loja-armazém por resultado.",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gofulfil_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(p.warehouseOps, p.rejections, p.associations, p.httpDuration)
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return p
}

// WarehouseOperation conta uma operação de armazém; rejeições também alimentam o contador de validação.
func (p *Prometheus) WarehouseOperation(operation, result string) {
	p.warehouseOps.WithLabelValues(operation, result).Inc()
	if result == ResultRejected {
		p.rejections.WithLabelValues(operation).Inc()
	}
}

// Association conta uma tentativa de associação.
func (p *Prometheus) Association(result string) {
	p.associations.WithLabelValues(result).Inc()
	if result == ResultRejected {
		p.rejections.WithLabelValues("associate").Inc()
	}
}

// Handler serve o endpoint /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry expõe o registry (usado nos testes).
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Instrument mede a latência de cada requisição, rotulada pelo padrão de rota.
func (p *Prometheus) Instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		p.httpDuration.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Nop descarta tudo.
type Nop struct{}

func (Nop) WarehouseOperation(string, string) {}
func (Nop) Association(string)                {}
