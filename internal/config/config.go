package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultDBPath   = "./data/manga_manager.db"
	defaultHTTPAddr = ":8080"
	defaultTokenTTL = 30 * time.Minute
)

type Config struct {
	SourceUser   string
	JWTSecret    []byte
	JWTAlgorithm string
	DBPath       string
	HTTPAddr     string
	TokenTTL     time.Duration
}

// Load reads configuration from the environment. MAL_USER, JWT_SECRET and
// JWT_ALGORITHM are required; a missing one fails startup.
func Load() (Config, error) {
	cfg := Config{
		DBPath:   defaultDBPath,
		HTTPAddr: defaultHTTPAddr,
		TokenTTL: defaultTokenTTL,
	}

	var ok bool
	if cfg.SourceUser, ok = os.LookupEnv("MAL_USER"); !ok || cfg.SourceUser == "" {
		return Config{}, fmt.Errorf("MAL_USER not set")
	}
	secret, ok := os.LookupEnv("JWT_SECRET")
	if !ok || secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET not set")
	}
	cfg.JWTSecret = []byte(secret)
	if cfg.JWTAlgorithm, ok = os.LookupEnv("JWT_ALGORITHM"); !ok || cfg.JWTAlgorithm == "" {
		return Config{}, fmt.Errorf("JWT_ALGORITHM not set")
	}
	switch cfg.JWTAlgorithm {
	case "HS256", "HS384", "HS512":
	default:
		return Config{}, fmt.Errorf("JWT_ALGORITHM %q not supported", cfg.JWTAlgorithm)
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL_MINUTES %q invalid", v)
		}
		cfg.TokenTTL = time.Duration(n) * time.Minute
	}

	return cfg, nil
}
