package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fathuur7/translate-backend/internal/api"
	"github.com/fathuur7/translate-backend/internal/auth"
	"github.com/fathuur7/translate-backend/internal/cache"
	"github.com/fathuur7/translate-backend/internal/config"
	"github.com/fathuur7/translate-backend/internal/db"
	"github.com/fathuur7/translate-backend/internal/job"
	"github.com/fathuur7/translate-backend/internal/pipeline"
	"github.com/fathuur7/translate-backend/internal/storage"
	"github.com/fathuur7/translate-backend/internal/transcribe"
	"github.com/fathuur7/translate-backend/internal/translate"
)

func main() {
	cfg := config.Load()

	// Ensure working directories exist
	os.MkdirAll(cfg.DataPath, 0755)
	os.MkdirAll(cfg.WorkPath, 0755)

	// Initialize database
	database, err := db.NewSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Ensure admin user exists
	if err := database.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ensured: %s", cfg.AdminUsername)

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Shared state, constructed once and passed by handle
	jobs := job.NewManager()
	resultCache := cache.NewResultCache(cfg.CacheMaxSize)
	memo := cache.NewMemoCache(cfg.MemoMaxSize)

	// External collaborators
	transcriber := transcribe.NewWhisperClient(cfg.WhisperURL)
	translator := translate.NewBatchTranslator(
		translate.NewGoogleTranslator(cfg.TranslateURL), memo, cfg.MaxRetries)
	store, err := storage.NewLocalStore(cfg.UploadPath)
	if err != nil {
		log.Fatalf("Failed to initialize artifact store: %v", err)
	}

	// Processing pipeline
	service := pipeline.NewService(jobs, resultCache, transcriber, translator,
		store, cfg.WorkPath, cfg.WorkerCount, cfg.QueueDepth)
	defer service.Stop()

	// Create router
	router := api.NewRouter(database, jwtService, cfg, jobs, resultCache, service)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("Whisper server: %s", cfg.WhisperURL)
	log.Printf("Upload path: %s", cfg.UploadPath)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		service.Stop()
		os.Exit(0)
	}()

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
