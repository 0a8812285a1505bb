package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort        = "8080"
	DefaultMaxFileSize = 10 * 1024 * 1024
	DefaultGeminiModel = "gemini-2.0-flash"
)

type Config struct {
	Port          string
	MaxFileSize   int64
	CSVSeparator  rune
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	GeminiAPIKey  string
	GeminiModel   string
	CryptoKey     string
	// Serverless is set when running inside AWS Lambda, where several instances share state.
	Serverless    bool
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using system env")
	}

	cfg := Config{
		Port:          getEnv("PORT", DefaultPort),
		MaxFileSize:   DefaultMaxFileSize,
		CSVSeparator:  ',',
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", DefaultGeminiModel),
		CryptoKey:     os.Getenv("CRYPTO_KEY"),
		Serverless:    os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",
	}

	if v := os.Getenv("MAX_FILE_SIZE"); v != "" {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil || size <= 0 {
			Logger.Warnf("Invalid MAX_FILE_SIZE %q, using default", v)
		} else {
			cfg.MaxFileSize = size
		}
	}

	if v := os.Getenv("CSV_SEPARATOR"); v != "" {
		sep := []rune(v)
		if len(sep) != 1 || sep[0] == '"' {
			Logger.Warnf("Invalid CSV_SEPARATOR %q, using ','", v)
		} else {
			cfg.CSVSeparator = sep[0]
		}
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			Logger.Warnf("Invalid REDIS_DB %q, using 0", v)
		} else {
			cfg.RedisDB = db
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
