package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	JWTSecret        string
	TokenStrategy    string
	TokenTTL         time.Duration
	BcryptCost       int
	RedisURL         string
	FallbackDataPath string
	ProbeAttempts    int
	ProbeBackoff     time.Duration
	SweepInterval    time.Duration
	SweepBatch       int
	WorkerPoolSize   int
	ShutdownTimeout  time.Duration
	SeedUsersFile    string
	CORSOrigins      []string
	LogLevel         string
}

const (
	defaultRunAddress       = ":8080"
	defaultTokenStrategy    = "jwt"
	defaultTokenTTL         = 24 * time.Hour
	defaultFallbackDataPath = "data/fallback-loans.json"
	defaultProbeAttempts    = 3
	defaultProbeBackoff     = 200 * time.Millisecond
	defaultSweepInterval    = time.Minute
	defaultSweepBatch       = 32
	defaultWorkerPoolSize   = 4
	defaultShutdownTimeout  = 10 * time.Second
	defaultCORSOrigins      = "*"
	defaultLogLevel         = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		JWTSecret:        getString(lookup, "JWT_SECRET", ""),
		TokenStrategy:    getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:         getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		BcryptCost:       getInt(lookup, "BCRYPT_COST", 0),
		RedisURL:         getString(lookup, "REDIS_URL", ""),
		FallbackDataPath: getString(lookup, "FALLBACK_DATA_PATH", defaultFallbackDataPath),
		ProbeAttempts:    getInt(lookup, "PROBE_ATTEMPTS", defaultProbeAttempts),
		ProbeBackoff:     getDuration(lookup, "PROBE_BACKOFF", defaultProbeBackoff),
		SweepInterval:    getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatch:       getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatch),
		WorkerPoolSize:   getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SeedUsersFile:    getString(lookup, "SEED_USERS_FILE", ""),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}
	corsOrigins := getString(lookup, "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)

	fs := flag.NewFlagSet("loandesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		probeBackoffStr    = cfg.ProbeBackoff.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Token format: jwt or hmac")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Validity window of issued tokens")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL for the token revocation list")
	fs.StringVar(&cfg.FallbackDataPath, "fallback", cfg.FallbackDataPath, "Path to exported fallback loans JSON")
	fs.IntVar(&cfg.ProbeAttempts, "probe-attempts", cfg.ProbeAttempts, "Database reachability attempts per request")
	fs.StringVar(&probeBackoffStr, "probe-backoff", probeBackoffStr, "Delay between reachability attempts")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between overdue sweeps")
	fs.IntVar(&cfg.SweepBatch, "sweep-batch", cfg.SweepBatch, "Maximum loans per sweep batch")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.SeedUsersFile, "seed-users", cfg.SeedUsersFile, "YAML file with bootstrap staff accounts")
	fs.StringVar(&corsOrigins, "cors", corsOrigins, "Comma separated list of allowed origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ProbeBackoff, err = time.ParseDuration(probeBackoffStr); err != nil {
		return nil, fmt.Errorf("invalid probe backoff: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.CORSOrigins = parseCSV(corsOrigins)
	cfg.TokenStrategy = strings.ToLower(strings.TrimSpace(cfg.TokenStrategy))

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.ProbeAttempts <= 0 {
		cfg.ProbeAttempts = defaultProbeAttempts
	}

	if cfg.ProbeBackoff < 0 {
		cfg.ProbeBackoff = defaultProbeBackoff
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweepBatch <= 0 {
		cfg.SweepBatch = defaultSweepBatch
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.TokenStrategy {
	case "jwt", "hmac":
	default:
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
