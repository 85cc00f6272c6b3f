package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	JWT     JWTConfig
	Backend BackendConfig
	Session SessionConfig
	Cache   CacheConfig
	Search  SearchConfig
	Alerts  AlertsConfig
	Ledger  LedgerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	LogLevel   string
	AgencyName string // encabezado de los documentos exportados
	Locale     string // formato de montos, ej. en-IN
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas; vacío = sin CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración del token que identifica la sesión del navegador.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// BackendConfig configuración del cliente REST hacia el backend autoritativo.
type BackendConfig struct {
	BaseURL        string        // ej. https://api.agencia.local/api
	Timeout        time.Duration // timeout por petición
	MaxRetries     int           // reintentos ante 503
	RetryBaseDelay time.Duration // 100ms → 200ms → 400ms
	RefreshPath    string
}

// SessionConfig vida de la sesión server-side.
type SessionConfig struct {
	TTL time.Duration
}

// CacheConfig listas "activas" y resumen del dashboard.
// Si RedisAddr está vacío se usa el store en memoria.
type CacheConfig struct {
	ActiveListTTL time.Duration
	DashboardTTL  time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// SearchConfig ventana de debounce para búsquedas mientras se escribe.
type SearchConfig struct {
	DebounceWindow time.Duration
}

// AlertsConfig canal push (Kafka) y polling de respaldo.
type AlertsConfig struct {
	KafkaBrokers string // separado por comas; vacío = solo polling
	KafkaTopic   string
	KafkaGroupID string
	PollInterval time.Duration
	MaxAlerts    int
}

// Brokers devuelve la lista de brokers Kafka sin espacios ni vacíos.
func (c AlertsConfig) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

// LedgerConfig reglas de edición del ledger.
type LedgerConfig struct {
	EditableWindow int // últimas N entradas editables
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_BASE_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "gasagency-backoffice"),
			LogLevel:   getString(v, "LOG_LEVEL", "info"),
			AgencyName: getString(v, "AGENCY_NAME", "Agencia de Gas"),
			Locale:     getString(v, "MONEY_LOCALE", "en-IN"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "HTTP_CORS_ORIGINS", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "gasagency-backoffice"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(getString(v, "BACKEND_BASE_URL", "http://localhost:8081/api"), "/"),
			Timeout:        getDuration(v, "BACKEND_TIMEOUT", 30*time.Second),
			MaxRetries:     getInt(v, "BACKEND_MAX_RETRIES", 3),
			RetryBaseDelay: getDuration(v, "BACKEND_RETRY_BASE_DELAY", 100*time.Millisecond),
			RefreshPath:    getString(v, "BACKEND_REFRESH_PATH", "/auth/refresh"),
		},
		Session: SessionConfig{
			TTL: getDuration(v, "SESSION_TTL", 8*time.Hour),
		},
		Cache: CacheConfig{
			ActiveListTTL: getDuration(v, "CACHE_ACTIVE_LIST_TTL", 5*time.Minute),
			DashboardTTL:  getDuration(v, "CACHE_DASHBOARD_TTL", 30*time.Second),
			RedisAddr:     getString(v, "REDIS_ADDR", ""),
			RedisPassword: getString(v, "REDIS_PASSWORD", ""),
			RedisDB:       getInt(v, "REDIS_DB", 0),
			KeyPrefix:     getString(v, "CACHE_KEY_PREFIX", "gasagency:"),
		},
		Search: SearchConfig{
			DebounceWindow: getDuration(v, "SEARCH_DEBOUNCE_WINDOW", 300*time.Millisecond),
		},
		Alerts: AlertsConfig{
			KafkaBrokers: getString(v, "ALERTS_KAFKA_BROKERS", ""),
			KafkaTopic:   getString(v, "ALERTS_KAFKA_TOPIC", "agency.alerts"),
			KafkaGroupID: getString(v, "ALERTS_KAFKA_GROUP_ID", "gasagency-backoffice"),
			PollInterval: getDuration(v, "ALERTS_POLL_INTERVAL", 30*time.Second),
			MaxAlerts:    getInt(v, "ALERTS_MAX", 200),
		},
		Ledger: LedgerConfig{
			EditableWindow: getInt(v, "LEDGER_EDITABLE_WINDOW", 15),
		},
	}

	if cfg.Backend.MaxRetries < 0 {
		return nil, fmt.Errorf("config: BACKEND_MAX_RETRIES no puede ser negativo")
	}
	if cfg.Ledger.EditableWindow <= 0 {
		return nil, fmt.Errorf("config: LEDGER_EDITABLE_WINDOW debe ser mayor que cero")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

// getDuration acepta "300ms", "5m" o un entero interpretado como milisegundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
