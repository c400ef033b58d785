package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stockroom-rest-api/internal/cache"
	"stockroom-rest-api/internal/config"
	"stockroom-rest-api/internal/handler"
	"stockroom-rest-api/internal/off"
	"stockroom-rest-api/internal/repository"
	"stockroom-rest-api/internal/router"
	"stockroom-rest-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting stockroom API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize item repository based on config
	var itemRepo repository.ItemRepository
	switch cfg.Store.Type {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteItemRepository(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		itemRepo = sqliteRepo
		log.Println("SQLite item repository initialized")
	default: // memory
		itemRepo = repository.NewMemoryItemRepository()
		log.Println("In-memory item repository initialized")
	}
	defer itemRepo.Close()

	// Initialize lookup cache. Redis falls back to memory if unreachable.
	var lookupCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
			lookupCache = cache.NewMemoryCache()
		} else {
			lookupCache = redisCache
			log.Println("Redis lookup cache initialized")
		}
	default: // memory
		lookupCache = cache.NewMemoryCache()
	}
	defer lookupCache.Close()

	// External product database client
	offClient := off.NewClient(off.ClientConfig{
		BaseURL:   cfg.Lookup.BaseURL,
		Timeout:   cfg.Lookup.Timeout,
		UserAgent: cfg.Lookup.UserAgent,
	})

	// Initialize services
	itemService := service.NewItemService(itemRepo)
	lookupService := service.NewLookupService(offClient, itemService, lookupCache, cfg.Cache.TTL)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Name, cfg.App.Version)
	itemHandler := handler.NewItemHandler(itemService)
	lookupHandler := handler.NewLookupHandler(lookupService)

	// Create router
	r := router.New(router.Config{
		Handler:       healthHandler,
		ItemHandler:   itemHandler,
		LookupHandler: lookupHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
