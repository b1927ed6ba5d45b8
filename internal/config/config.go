package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/radiogagalight/f1-together/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                       string
	ServiceName                  string
	ServiceVersion               string
	HTTPAddr                     string
	DBURL                        string
	DBDisablePreparedBinary      bool
	CacheEnabled                 bool
	CacheTTL                     time.Duration
	CORSAllowedOrigins           []string
	ReadTimeout                  time.Duration
	WriteTimeout                 time.Duration
	PprofEnabled                 bool
	PprofAddr                    string
	GoTrueBaseURL                string
	GoTrueAnonKey                string
	GoTrueTimeout                time.Duration
	GoTrueCircuitEnabled         bool
	GoTrueCircuitFailureCount    int
	GoTrueCircuitOpenTimeout     time.Duration
	GoTrueCircuitHalfOpenMaxReq  int
	PushRelayEnabled             bool
	PushRelayBaseURL             string
	PushRelayToken               string
	PushRelayTimeout             time.Duration
	PushRelayWorkers             int
	PushRelayCircuitEnabled      bool
	PushRelayCircuitFailureCount int
	PushRelayCircuitOpenTimeout  time.Duration
	PushRelayCircuitHalfOpenMax  int
	UptraceEnabled               bool
	UptraceDSN                   string
	PyroscopeEnabled             bool
	PyroscopeServerAddress       string
	PyroscopeAppName             string
	PyroscopeAuthToken           string
	PyroscopeBasicAuthUser       string
	PyroscopeBasicAuthPassword   string
	PyroscopeUploadRate          time.Duration
	LogLevel                     logging.Level
}

func Load() (Config, error) {
	cfg := Config{}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}
	cfg.AppEnv = appEnv
	cfg.ServiceName = getEnv("SERVICE_NAME", "f1-together")
	cfg.ServiceVersion = getEnv("SERVICE_VERSION", "dev")
	cfg.HTTPAddr = getEnv("APP_HTTP_ADDR", ":8080")
	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}

	disablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY: %w", err)
	}
	cfg.DBDisablePreparedBinary = disablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	cfg.PprofEnabled = pprofEnabled
	cfg.PprofAddr = pprofAddr

	cfg.GoTrueBaseURL = strings.TrimSpace(getEnv("GOTRUE_BASE_URL", ""))
	if cfg.GoTrueBaseURL == "" {
		return Config{}, fmt.Errorf("GOTRUE_BASE_URL is required")
	}
	cfg.GoTrueAnonKey = strings.TrimSpace(getEnv("GOTRUE_ANON_KEY", ""))

	goTrueTimeout, err := time.ParseDuration(getEnv("GOTRUE_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_TIMEOUT: %w", err)
	}
	cfg.GoTrueTimeout = goTrueTimeout

	goTrueCircuitEnabled, err := strconv.ParseBool(getEnv("GOTRUE_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CIRCUIT_ENABLED: %w", err)
	}
	goTrueCircuitFailureCount, err := getEnvAsInt("GOTRUE_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if goTrueCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("GOTRUE_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	goTrueCircuitOpenTimeout, err := time.ParseDuration(getEnv("GOTRUE_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if goTrueCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("GOTRUE_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	goTrueCircuitHalfOpenMaxReq, err := getEnvAsInt("GOTRUE_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse GOTRUE_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if goTrueCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("GOTRUE_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.GoTrueCircuitEnabled = goTrueCircuitEnabled
	cfg.GoTrueCircuitFailureCount = goTrueCircuitFailureCount
	cfg.GoTrueCircuitOpenTimeout = goTrueCircuitOpenTimeout
	cfg.GoTrueCircuitHalfOpenMaxReq = goTrueCircuitHalfOpenMaxReq

	pushRelayEnabled, err := strconv.ParseBool(getEnv("PUSH_RELAY_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_ENABLED: %w", err)
	}
	pushRelayBaseURL := strings.TrimSpace(getEnv("PUSH_RELAY_BASE_URL", ""))
	if pushRelayEnabled && pushRelayBaseURL == "" {
		return Config{}, fmt.Errorf("PUSH_RELAY_BASE_URL is required when PUSH_RELAY_ENABLED=true")
	}
	pushRelayTimeout, err := time.ParseDuration(getEnv("PUSH_RELAY_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_TIMEOUT: %w", err)
	}
	if pushRelayTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_RELAY_TIMEOUT must be > 0")
	}
	pushRelayWorkers, err := getEnvAsInt("PUSH_RELAY_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_WORKERS: %w", err)
	}
	if pushRelayWorkers < 1 {
		return Config{}, fmt.Errorf("PUSH_RELAY_WORKERS must be >= 1")
	}
	pushRelayCircuitEnabled, err := strconv.ParseBool(getEnv("PUSH_RELAY_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_CIRCUIT_ENABLED: %w", err)
	}
	pushRelayCircuitFailureCount, err := getEnvAsInt("PUSH_RELAY_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if pushRelayCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("PUSH_RELAY_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	pushRelayCircuitOpenTimeout, err := time.ParseDuration(getEnv("PUSH_RELAY_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if pushRelayCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("PUSH_RELAY_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	pushRelayCircuitHalfOpenMax, err := getEnvAsInt("PUSH_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PUSH_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if pushRelayCircuitHalfOpenMax < 1 {
		return Config{}, fmt.Errorf("PUSH_RELAY_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.PushRelayEnabled = pushRelayEnabled
	cfg.PushRelayBaseURL = pushRelayBaseURL
	cfg.PushRelayToken = strings.TrimSpace(getEnv("PUSH_RELAY_TOKEN", ""))
	cfg.PushRelayTimeout = pushRelayTimeout
	cfg.PushRelayWorkers = pushRelayWorkers
	cfg.PushRelayCircuitEnabled = pushRelayCircuitEnabled
	cfg.PushRelayCircuitFailureCount = pushRelayCircuitFailureCount
	cfg.PushRelayCircuitOpenTimeout = pushRelayCircuitOpenTimeout
	cfg.PushRelayCircuitHalfOpenMax = pushRelayCircuitHalfOpenMax

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeUploadRate = pyroscopeUploadRate

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
