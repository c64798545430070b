package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"euchre-server/internal/api"
	"euchre-server/internal/config"
	"euchre-server/internal/repository"
	"euchre-server/internal/repository/memory"
	"euchre-server/internal/repository/postgres"
	"euchre-server/internal/scheduler"
	"euchre-server/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var store repository.RoomStore
	if cfg.UseMemory {
		store = memory.New()
		log.Println("using in-memory room store")
	} else {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		store = postgres.NewRoomStore(db)
	}

	hub := ws.NewHub(store, scheduler.Config{
		PostTrickPauseMs: cfg.PostTrickPauseMs,
		HandOverPauseMs:  cfg.HandOverPauseMs,
	}, cfg.CreatorTokenSecret, cfg.RoomTTL)

	if err := hub.Restore(context.Background()); err != nil {
		log.Fatalf("failed to restore persisted rooms: %v", err)
	}

	router := api.NewRouter(hub)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped")
}
