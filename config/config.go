package config

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
)

// Config holds runtime configuration read from environment variables, plus
// the shared Mongo client handle (see mongodb.go).
type Config struct {
	Port           string
	MongoURI       string
	DBName         string
	AllowedOrigins []string

	mu     sync.Mutex
	client *mongo.Client
}

// Load reads .env (if present) and builds the configuration. MONGODB_URI is
// required but only enforced when the first operation tries to connect, so
// pure-validation code paths and tests run without a database.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		MongoURI: os.Getenv("MONGODB_URI"),
		DBName:   getEnv("DB_NAME", "devevent"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
