package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          int
	DataPath      string
	UploadPath    string
	WorkPath      string
	DBPath        string
	JWTSecret     string
	AdminUsername string
	AdminPassword string
	CORSOrigins   []string

	WhisperURL   string
	TranslateURL string

	CacheMaxSize   int
	MemoMaxSize    int
	WorkerCount    int
	QueueDepth     int
	MaxRetries     int
	MaxUploadBytes int64
}

func Load() *Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	dataPath := getEnv("DATA_PATH", "/data")

	// JWT secret: require explicit setting or generate random
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			log.Fatalf("Failed to generate random JWT secret: %v", err)
		}
		jwtSecret = hex.EncodeToString(b)
		log.Println("WARNING: JWT_SECRET not set, using random secret. Sessions will not survive restarts. Set JWT_SECRET env var for persistent sessions.")
	}

	// CORS origins: comma-separated list or "*" (default)
	corsOrigins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		corsOrigins = make([]string, 0, len(origins))
		for _, o := range origins {
			o = strings.TrimSpace(o)
			if o != "" {
				corsOrigins = append(corsOrigins, o)
			}
		}
	}

	return &Config{
		Port:          port,
		DataPath:      dataPath,
		UploadPath:    getEnv("UPLOAD_PATH", dataPath+"/uploads"),
		WorkPath:      getEnv("WORK_PATH", dataPath+"/work"),
		DBPath:        getEnv("DB_PATH", dataPath+"/translate.db"),
		JWTSecret:     jwtSecret,
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		CORSOrigins:   corsOrigins,

		WhisperURL:   getEnv("WHISPER_URL", "http://localhost:9000"),
		TranslateURL: getEnv("TRANSLATE_URL", "https://translate.googleapis.com/translate_a/single"),

		CacheMaxSize:   getEnvInt("CACHE_MAX_SIZE", 100),
		MemoMaxSize:    getEnvInt("MEMO_MAX_SIZE", 10000),
		WorkerCount:    getEnvInt("WORKER_COUNT", 2),
		QueueDepth:     getEnvInt("QUEUE_DEPTH", 32),
		MaxRetries:     getEnvInt("TRANSLATE_MAX_RETRIES", 3),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 512)) << 20,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
