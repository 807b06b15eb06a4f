package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds credentials accepted on the autopilot trigger endpoints.
// APISecret authenticates cron callers via the X-Api-Secret header; JWTSecret
// signs admin bearer tokens issued by the admin console.
type AuthConfig struct {
	APISecret    string        `yaml:"api_secret"     env:"AUTH_API_SECRET"     env-required:"true"`
	JWTSecret    string        `yaml:"jwt_secret"     env:"AUTH_JWT_SECRET"     env-required:"true"`
	JWTIssuer    string        `yaml:"jwt_issuer"     env:"AUTH_JWT_ISSUER"     env-default:"pollboard"`
	JWTAccessTTL time.Duration `yaml:"jwt_access_ttl" env:"AUTH_JWT_ACCESS_TTL" env-default:"24h"`
}

// AutopilotConfig holds process-level autopilot limits. Run-level knobs
// (intervals, probabilities, prompts) live in the DB settings tables and are
// re-read on every invocation.
type AutopilotConfig struct {
	FeedTimeout    time.Duration `yaml:"feed_timeout"     env:"AUTOPILOT_FEED_TIMEOUT"     env-default:"15s"`
	PageTimeout    time.Duration `yaml:"page_timeout"     env:"AUTOPILOT_PAGE_TIMEOUT"     env-default:"10s"`
	SynthTimeout   time.Duration `yaml:"synth_timeout"    env:"AUTOPILOT_SYNTH_TIMEOUT"    env-default:"60s"`
	FeedItemLimit  int           `yaml:"feed_item_limit"  env:"AUTOPILOT_FEED_ITEM_LIMIT"  env-default:"20"`
	ActorPoolLimit int           `yaml:"actor_pool_limit" env:"AUTOPILOT_ACTOR_POOL_LIMIT" env-default:"100"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings for the admin console origin.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Api-Secret"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
