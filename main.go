package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"student-performance-go/config"
	"student-performance-go/db"
	"student-performance-go/handlers"
)

func main() {
	cfg := config.Load()

	// Initialize Redis Client
	var redisClient *redis.Client
	if cfg.StoreBackend != "memory" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := db.InitializeRedisClient(ctx, cfg.DatabaseURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to create Redis client: %v", err)
		}
		redisClient = client
	}

	store, err := db.NewStore(cfg.StoreBackend, redisClient)
	if err != nil {
		closeRedis(redisClient)
		log.Fatalf("Failed to create store (backend=%s): %v", cfg.StoreBackend, err)
	}

	// Create API Handler (injecting the store)
	apiHandler := handlers.NewAPIHandler(store, cfg.DatabaseURLSet)
	router := handlers.SetupRouter(apiHandler)

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("Starting server on %s (store=%s)", addr, store.Name())
	if err := http.ListenAndServe(addr, corsHandler(router)); err != nil {
		closeRedis(redisClient)
		log.Fatalf("Failed to run server: %v", err)
	}
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
}
