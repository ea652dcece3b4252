// @title gofulfil API
// @version 1.0
// @description Motor de restrições de fulfillment: armazéns, locais e associações produto-loja-armazém.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gofulfil/config"
	"gofulfil/internal/api/fulfillment"
	"gofulfil/internal/api/location"
	"gofulfil/internal/api/operator"
	"gofulfil/internal/api/router"
	"gofulfil/internal/api/warehouse"
	"gofulfil/internal/app"
	"gofulfil/internal/pkg/cache"
	"gofulfil/internal/pkg/logger"
	"gofulfil/internal/pkg/metrics"
	"gofulfil/internal/pkg/token"
	"gofulfil/internal/pkg/tracing"
)

func main() {
	log.Println("⚡ Inicializando serviço gofulfil...")
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}

	logg := logger.NewLogger(cfg.LogLevel)
	if zl, ok := logg.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	logg.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "storage": cfg.StorageDriver})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Observabilidade
	shutdownTracing, err := tracing.Setup(ctx, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logg.Error("Falha ao configurar tracing; seguindo sem exportação.", err)
	}
	prom := metrics.NewPrometheus()

	// 2. Cache (Redis): opcional no modo memória
	var cacheClient cache.Client
	if cfg.StorageDriver == config.DriverMemory && cfg.RedisAddr == "" {
		cacheClient = cache.NewMemoryClient()
	} else {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.CacheTimeout)
		if err != nil {
			logg.Warn("Redis indisponível; cache e rate limit em memória.", map[string]interface{}{"error": err.Error()})
			cacheClient = cache.NewMemoryClient()
		} else {
			defer redisClient.Close()
			cacheClient = redisClient
			logg.Info("Conexão Redis estabelecida.", nil)
		}
	}

	// 3. Persistência + serviços
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	services, closeStorage, err := app.Build(ctx, cfg, app.Infra{Logger: logg, Metrics: prom, Cache: cacheClient, Tokens: tokenSvc})
	if err != nil {
		logg.Fatal("Falha ao montar a aplicação.", err)
	}
	defer closeStorage()

	// 4. Handlers e roteador
	handler := router.NewRouter(router.Deps{
		Warehouses:      warehouse.NewHandler(services.Warehouses, logg),
		Fulfillments:    fulfillment.NewHandler(services.Fulfillments, logg),
		Locations:       location.NewHandler(services.Locations, logg),
		Operators:       operator.NewHandler(services.Operators, logg),
		TokenSvc:        tokenSvc,
		Metrics:         prom,
		Logger:          logg,
		Cache:           cacheClient,
		RateLimitMax:    cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		logg.Info("Servidor gofulfil ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	logg.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("Desligamento do servidor forçado.", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logg.Error("Falha ao encerrar o exporter de tracing.", err)
	}

	logg.Info("Servidor encerrado com sucesso.", nil)
}
