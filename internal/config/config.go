package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQL    = "sql"
	BackendSheets = "sheets"
)

type Config struct {
	Port     string
	LogLevel string
	Seed     bool

	// Record store
	StoreBackend          string
	DatabaseURL           string
	SpreadsheetName       string
	WorksheetName         string
	SheetsSpreadsheetID   string
	SheetsCredentialsFile string
	StoreMaxRetries       int

	// Reference data overrides
	CatalogPath string
	GuidePath   string

	// OpenAI configuration
	OpenAIAPIKey          string
	OpenAIReflectionModel string

	// Langfuse configuration
	LangfuseBaseURL     string
	LangfusePublicKey   string
	LangfuseSecretKey   string
	LangfuseEnv         string
	LangfusePromptName  string
	LangfusePromptLabel string
	LangfusePromptCache string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Seed:     getEnv("SEED", "false") == "true",

		StoreBackend:          getEnv("STORE_BACKEND", BackendSQL),
		DatabaseURL:           getEnv("DATABASE_URL", "file:care-log.db"),
		SpreadsheetName:       getEnv("SPREADSHEET_NAME", "care-log"),
		WorksheetName:         getEnv("WORKSHEET_NAME", "journal"),
		SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
		StoreMaxRetries:       getEnvInt("STORE_MAX_RETRIES", 3),

		CatalogPath: getEnv("CATALOG_PATH", ""),
		GuidePath:   getEnv("GUIDE_PATH", ""),

		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIReflectionModel: getEnv("OPENAI_REFLECTION_MODEL", "gpt-4o-mini"),

		LangfuseBaseURL:     getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey:   getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:   getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:         getEnv("LANGFUSE_ENV", "development"),
		LangfusePromptName:  getEnv("LANGFUSE_PROMPT_NAME", "care-log-reflection"),
		LangfusePromptLabel: getEnv("LANGFUSE_PROMPT_LABEL", "production"),
		LangfusePromptCache: getEnv("LANGFUSE_PROMPT_CACHE", "prompts/reflection.txt"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
