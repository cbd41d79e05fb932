package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port            string
	JwtSecret       string
	DbURL           string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	BcryptCost      int
	LogLevel        string
	StaffOnlyLogin  bool
	MigrateOnStart  bool
}

// Load reads the configuration from a .env file or environment variables and returns a Config struct.
// PORT, JWT_SECRET and DATABASE_URL are required; everything else has a default.
func Load() (*Config, error) {
	// Try to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:      os.Getenv("PORT"),
		JwtSecret: os.Getenv("JWT_SECRET"),
		DbURL:     os.Getenv("DATABASE_URL"),
		LogLevel:  envOr("LOG_LEVEL", "info"),
	}

	var missing []string
	for name, v := range map[string]string{"PORT": cfg.Port, "JWT_SECRET": cfg.JwtSecret, "DATABASE_URL": cfg.DbURL} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.AccessTokenTTL, err = durationEnv("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL, err = durationEnv("REFRESH_TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshTokenTTL < cfg.AccessTokenTTL {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL (%s) must not be shorter than ACCESS_TOKEN_TTL (%s)", cfg.RefreshTokenTTL, cfg.AccessTokenTTL)
	}
	if cfg.BcryptCost, err = bcryptCost(); err != nil {
		return nil, err
	}
	if cfg.StaffOnlyLogin, err = boolEnv("STAFF_ONLY_LOGIN", false); err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart, err = boolEnv("MIGRATE_ON_START", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabaseURL loads only DATABASE_URL, for tools that do not serve HTTP.
func LoadDatabaseURL() (string, error) {
	_ = godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return "", fmt.Errorf("missing required environment variable: DATABASE_URL")
	}
	return dbURL, nil
}

// LoadBcryptCost loads only BCRYPT_COST. Every process that hashes passwords
// must use the server's cost, or login timing differs between accounts.
func LoadBcryptCost() (int, error) {
	_ = godotenv.Load()
	return bcryptCost()
}

func bcryptCost() (int, error) {
	cost, err := intEnv("BCRYPT_COST", 12)
	if err != nil {
		return 0, err
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return 0, fmt.Errorf("BCRYPT_COST %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return cost, nil
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", name, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func intEnv(name string, def int) (int, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid integer %q: %w", name, v, err)
	}
	return n, nil
}

func boolEnv(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s has invalid boolean %q: %w", name, v, err)
	}
	return b, nil
}
