package config

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultEnv                  = "development"
	DefaultPort                 = "8080"
	DefaultJWTAlgorithm         = "HS256"
	DefaultAccessTokenExpiryMin = 15
	DefaultBcryptCost           = 10
	DefaultRequestTimeoutSec    = 10
	DefaultLogLevel             = "info"
	DefaultDBMaxConns           = 10
)

type Config struct {
	Env               string
	Port              string
	DBURL             string
	DBMaxConns        int
	AccessTokenSecret string
	JWTAlgorithm      string
	AccessExpiryMin   int
	BcryptCost        int
	HashWorkers       int
	RequestTimeout    time.Duration
	RedisURL          string
	LogLevel          string
}

// IsProduction reports whether ENV selects the production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads config/.env.dev or config/.env.prod (picked by ENV) and overlays
// the process environment on top. Missing required keys are fatal.
func Load() *Config {
	env := getEnv("ENV", DefaultEnv)

	file := "config/.env.dev"
	if env == "production" {
		file = "config/.env.prod"
	}

	values, err := godotenv.Read(file)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read %s: %v", file, err)
		}
		values = map[string]string{}
	}

	l := loader{file: values}

	return &Config{
		Env:               env,
		Port:              l.get("PORT", DefaultPort),
		DBURL:             l.must("DB_URL"),
		DBMaxConns:        l.getInt("DB_MAX_CONNS", DefaultDBMaxConns),
		AccessTokenSecret: l.must("ACCESS_TOKEN_SECRET"),
		JWTAlgorithm:      l.get("JWT_ALGORITHM", DefaultJWTAlgorithm),
		AccessExpiryMin:   l.getInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		BcryptCost:        l.getInt("BCRYPT_COST", DefaultBcryptCost),
		HashWorkers:       l.getInt("HASH_WORKERS", runtime.NumCPU()),
		RequestTimeout:    time.Duration(l.getInt("REQUEST_TIMEOUT", DefaultRequestTimeoutSec)) * time.Second,
		RedisURL:          l.get("REDIS_URL", ""),
		LogLevel:          l.get("LOG_LEVEL", DefaultLogLevel),
	}
}

// loader resolves a key from the environment first, then the env file.
type loader struct {
	file map[string]string
}

func (l loader) get(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if value := l.file[key]; value != "" {
		return value
	}
	return defaultVal
}

func (l loader) must(key string) string {
	value := l.get(key, "")
	if value == "" {
		log.Fatalf("Missing required config: %s", key)
	}
	return value
}

func (l loader) getInt(key string, defaultVal int) int {
	valStr := l.get(key, "")
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
