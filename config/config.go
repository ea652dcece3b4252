package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Drivers de armazenamento suportados.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config armazena todas as configurações do gofulfil.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Persistência
	StorageDriver string
	DatabaseURL   string
	DBTimeout     time.Duration
	TxMaxRetries  uint64

	// Cache (Redis)
	RedisAddr    string
	CacheTimeout time.Duration
	CacheTTL     time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Observabilidade
	OTLPEndpoint string
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// DATABASE_URL só é obrigatória com o driver postgres.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		StorageDriver: getEnv("STORAGE_DRIVER", DriverPostgres),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBTimeout:     getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second,
		TxMaxRetries:  uint64(getIntEnv("TX_MAX_RETRIES", 5)),

		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout: getDurationEnv("CACHE_TIMEOUT_SEC", 2) * time.Second,
		CacheTTL:     getDurationEnv("CACHE_TTL_SEC", 300) * time.Second,

		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		TokenExpiry:  getDurationEnv("JWT_EXPIRY_MIN", 60) * time.Minute,

		RateLimitMaxRequests: getIntEnv("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      getDurationEnv("RATE_LIMIT_PERIOD_MIN", 1) * time.Minute,

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL deve ser definida para o driver postgres"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_DRIVER inválido: %q (use %s ou %s)", c.StorageDriver, DriverPostgres, DriverMemory))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY deve ser definida"))
	}
	if c.RateLimitMaxRequests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX_REQUESTS deve ser positivo"))
	}
	return errors.Join(errs...)
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
