package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config collects every setting the service reads from the environment.
// It is built once at startup and injected; nothing re-reads the env later.
type Config struct {
	Port                string
	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIBaseURL       string
	CatalogBaseURL      string
	RecognitionEndpoint string
	StaticDir           string
}

// Load reads .env (if present) and resolves the configuration. A missing
// OPENAI_API_KEY is fatal: every request path ends in a completion call.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL:       os.Getenv("OPENAI_BASE_URL"),
		CatalogBaseURL:      getEnv("OFF_BASE_URL", "https://world.openfoodfacts.org"),
		RecognitionEndpoint: getEnv("OFF_IMAGE_UPLOAD_URL", "https://world.openfoodfacts.org/cgi/product_image_upload.pl?process_image=1"),
		StaticDir:           getEnv("STATIC_DIR", "dist"),
	}
	if cfg.OpenAIAPIKey == "" {
		log.Fatalf("OPENAI_API_KEY is not set")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
