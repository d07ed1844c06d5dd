package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sumo_console/internal/api"
	"sumo_console/internal/api/view"
	"sumo_console/internal/backend"
	"sumo_console/internal/console/service"
	"sumo_console/internal/platform/cache"
	"sumo_console/internal/platform/config"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 3. Backend API client
	apiClient := backend.New(config.AppConfig.BackendBaseURL, config.AppConfig.BackendTimeout)
	fmt.Printf("Backend client pointed at %s.\n", config.AppConfig.BackendBaseURL)

	// 4. Console store & services
	store := service.NewRedisStore(
		cache.RDB,
		config.AppConfig.CompetitionFlagKey,
		config.AppConfig.RankingKey,
		config.AppConfig.SettingsKey,
		config.AppConfig.OnceTokenTTL,
	)
	once := service.NewOnceGuard(store)
	authService := service.NewAuthService(apiClient)
	roundService := service.NewRoundService(apiClient)
	competitionService := service.NewCompetitionService(apiClient, store)

	// 5. Views & Router
	renderer, err := view.NewRenderer(once.Issue)
	if err != nil {
		log.Fatalf("Could not parse templates: %v", err)
	}
	router := api.NewRouter(renderer, apiClient, once, authService, roundService, competitionService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Console listening on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Console started successfully.")

	<-stop

	log.Println("Shutting down console...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Console stopped gracefully.")
}
