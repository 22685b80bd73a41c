package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sayuki-dev/oshitalk/backend/internal/config"
	"github.com/sayuki-dev/oshitalk/backend/internal/handler"
	chathandler "github.com/sayuki-dev/oshitalk/backend/internal/handler/chat"
	"github.com/sayuki-dev/oshitalk/backend/internal/model/persona"
	"github.com/sayuki-dev/oshitalk/backend/internal/service/ai"
	"github.com/sayuki-dev/oshitalk/backend/internal/service/history"
	promptservice "github.com/sayuki-dev/oshitalk/backend/internal/service/prompt"
	"github.com/sayuki-dev/oshitalk/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize persona registry and prompt composer
	registry := persona.NewRegistry(persona.Seed())
	composer := promptservice.NewComposer(registry)

	// Initialize the history backend: Redis when configured, in-memory otherwise
	var kv storage.KV
	if cfg.Storage.RedisURL != "" {
		redisKV, err := storage.NewRedisKV(ctx, cfg.Storage.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisKV.Close()
		kv = redisKV
		log.Println("chat history backed by Redis")
	} else {
		kv = storage.NewMemoryKV()
		log.Println("REDIS_URL not set, chat history held in memory only")
	}

	historyStore := history.NewStore(kv,
		history.WithMaxMessages(cfg.Storage.MaxMessages),
		history.WithTTL(cfg.Storage.HistoryTTL),
	)

	// Initialize AI service
	var generator chathandler.Generator
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI service: %v", err)
			log.Println("continuing without AI functionality - check the Ark environment variables")
		} else {
			generator = aiService
			log.Println("AI service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, chat turns will return the fallback response")
	}

	router := handler.NewRouter(historyStore, composer, generator, cfg.Chat.DefaultPersonaID, cfg.Chat.RecentLimit)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("oshitalk backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
