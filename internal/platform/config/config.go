package config

import (
	"os"
	"time"
)

// Redis holds connection settings for the backing store.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server captures process-level configuration. Salts are carried here and
// injected into the dispatcher so authentication stays free of ambient state.
type Server struct {
	Addr         string
	Environment  string
	Salt         string
	AdminSalt    string
	StoreTimeout time.Duration
	Redis        Redis
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:         getenv("SCOREGATE_ADDR", ":8080"),
		Environment:  getenv("SCOREGATE_ENV", "development"),
		Salt:         getenv("SALT", "Otus"),
		AdminSalt:    getenv("ADMIN_SALT", "42"),
		StoreTimeout: getduration("STORE_TIMEOUT", 5*time.Second),
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  getduration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getduration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getduration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
