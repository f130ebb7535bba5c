// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manobakers/bakery-backend/internal/config"
	"github.com/manobakers/bakery-backend/internal/domain/catalog"
	"github.com/manobakers/bakery-backend/internal/domain/order"
	"github.com/manobakers/bakery-backend/internal/infrastructure/store/memory"
	storeredis "github.com/manobakers/bakery-backend/internal/infrastructure/store/redis"
	"github.com/manobakers/bakery-backend/internal/interfaces/http"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Load the catalog
	cat, err := catalog.NewService(cfg.Catalog.File)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("📖 Catalog loaded: %d categories, %d items", len(cat.Categories()), cat.ItemCount())

	// Set up the session snapshot store
	var (
		snapshots   order.SnapshotStore
		redisClient *goredis.Client
	)
	switch cfg.Store.Driver {
	case "redis":
		client, err := storeredis.NewConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()

		if err := client.Health(); err != nil {
			log.Fatalf("Redis health check failed: %v", err)
		}

		redisClient = client.GetClient()
		snapshots = storeredis.NewSnapshotStore(redisClient, cfg.Store.SessionTTL)
	case "memory":
		log.Println("⚠️  Using in-memory session store; carts will not survive a restart")
		snapshots = memory.NewSnapshotStore()
	}

	sessions := order.NewSessions(cat, snapshots)

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, cat, sessions, redisClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
