// config.go - Configuration loaded from environment variables

package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	// Server Configuration
	PORT            string
	UPLOAD_DIR      string
	ALLOWED_ORIGINS string

	// MongoDB Configuration
	MONGO_URI     string
	MONGO_DB_NAME string

	// Annotation provider configuration
	VISION_PROVIDER       string // "google" or "gemini"
	GOOGLE_VISION_API_KEY string
	GEMINI_API_KEY        string
	GEMINI_MODEL_NAME     string
	LABEL_MAX_RESULTS     int

	// Image preprocessing settings
	ENABLE_IMAGE_PREPROCESSING bool
	MAX_IMAGE_DIMENSION        int

	// Extraction settings
	TOTAL_REQUIRES_KEYWORD bool // require a total keyword on the matched amount line

	// Provider quota settings
	RATE_LIMIT_RPM int
)

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	// Load .env file if exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	PORT = getEnv("PORT", "8080")
	UPLOAD_DIR = getEnv("UPLOAD_DIR", "uploads")
	ALLOWED_ORIGINS = getEnv("ALLOWED_ORIGINS", "*")

	// MongoDB Configuration
	MONGO_URI = getEnv("MONGO_URI", "mongodb://localhost:27017")
	MONGO_DB_NAME = getEnv("MONGO_DB_NAME", "visionscan")

	// Annotation provider
	VISION_PROVIDER = getEnv("VISION_PROVIDER", "google")
	GOOGLE_VISION_API_KEY = getEnv("GOOGLE_VISION_API_KEY", "")
	GEMINI_API_KEY = getEnv("GEMINI_API_KEY", "")
	GEMINI_MODEL_NAME = getEnv("GEMINI_MODEL_NAME", "gemini-2.5-flash")
	LABEL_MAX_RESULTS = getEnvInt("LABEL_MAX_RESULTS", 10)

	switch VISION_PROVIDER {
	case "google":
		if GOOGLE_VISION_API_KEY == "" {
			log.Fatal("GOOGLE_VISION_API_KEY environment variable is required when VISION_PROVIDER=google")
		}
	case "gemini":
		if GEMINI_API_KEY == "" {
			log.Fatal("GEMINI_API_KEY environment variable is required when VISION_PROVIDER=gemini")
		}
	}

	// Image Processing
	ENABLE_IMAGE_PREPROCESSING = getEnvBool("ENABLE_IMAGE_PREPROCESSING", true)
	MAX_IMAGE_DIMENSION = getEnvInt("MAX_IMAGE_DIMENSION", 2000)

	// Extraction behavior
	TOTAL_REQUIRES_KEYWORD = getEnvBool("TOTAL_REQUIRES_KEYWORD", false)

	// Provider quota (requests per minute)
	RATE_LIMIT_RPM = getEnvInt("RATE_LIMIT_RPM", 15)

	log.Println("✓ Configuration loaded successfully")
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
