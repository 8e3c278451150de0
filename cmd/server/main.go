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

	"github.com/jackc/pgx/v5/pgxpool"

	"reliefhub-backend/internal/api"
	"reliefhub-backend/internal/config"
	"reliefhub-backend/internal/handlers"
	"reliefhub-backend/internal/realtime"
	"reliefhub-backend/internal/services"
	"reliefhub-backend/internal/store/postgres"
)

func main() {
	log.Println("Starting ReliefHub Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Hub, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	// The fan-out hub is owned here: started before the server accepts
	// traffic, stopped after it drains. Everything downstream receives it
	// as an injected dependency.
	hub := realtime.NewHub()
	go hub.Run()
	log.Println("Realtime hub started.")

	authService := services.NewAuthService(pgStore, cfg)
	log.Println("AuthService initialized.")
	chatService := services.NewChatService(pgStore, hub)
	log.Println("ChatService initialized.")
	blogService := services.NewBlogService(pgStore)
	log.Println("BlogService initialized.")
	teamService := services.NewRescueTeamService(pgStore)
	log.Println("RescueTeamService initialized.")

	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandlers(chatService, cfg)
	blogHandler := handlers.NewBlogHandlers(blogService)
	teamHandler := handlers.NewRescueTeamHandlers(teamService)
	log.Println("Handlers initialized.")

	// 4. Setup Router & Inject Dependencies
	router := api.NewRouter(api.RouterDependencies{
		AuthHandler:       authHandler,
		ChatHandler:       chatHandler,
		BlogHandler:       blogHandler,
		RescueTeamHandler: teamHandler,
		Hub:               hub,
		Config:            cfg,
	})
	log.Println("HTTP router configured.")

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Production hardening: Set timeouts to avoid Slowloris attacks.
		// No WriteTimeout: it would sever long-lived websocket connections.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
	}

	hub.Shutdown()
	log.Println("Realtime hub stopped.")

	log.Println("Server shutdown complete.")
}
