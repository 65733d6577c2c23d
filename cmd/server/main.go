package main // Entry point package

import (
	"context" // Context for startup calls
	"log"     // Logging library
	"time"    // Timeouts for startup calls

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/edu-content-platform/internal/config"      // Internal config loader
	"github.com/iliyamo/edu-content-platform/internal/database"    // MySQL pool and schema bootstrap
	"github.com/iliyamo/edu-content-platform/internal/entitlement" // Access decisions
	"github.com/iliyamo/edu-content-platform/internal/handler"     // HTTP handlers
	"github.com/iliyamo/edu-content-platform/internal/middleware"  // Rate limiting
	"github.com/iliyamo/edu-content-platform/internal/queue"       // Background event consumer
	"github.com/iliyamo/edu-content-platform/internal/repository"  // DB repositories
	"github.com/iliyamo/edu-content-platform/internal/router"      // Route registration
	"github.com/iliyamo/edu-content-platform/internal/storage"     // Object storage for artifacts
	"github.com/iliyamo/edu-content-platform/internal/subscription" // Plan activation
	"github.com/iliyamo/edu-content-platform/internal/utils"       // Password hashing
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("✅ loaded .env")
	}

	cfg := config.Load() // Load environment config

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("❌ database: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("❌ schema: %v", err)
	}

	// Redis is optional; with no client the cache and rate limiter
	// middlewares pass requests straight through.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	artifacts, err := storage.NewArtifactStore(ctx, config.LoadS3Config())
	if err != nil {
		log.Fatalf("❌ object storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	content := repository.NewContentRepo(db)
	library := repository.NewLibraryRepo(db)

	engine := entitlement.NewEngine(content, library)
	gateway := entitlement.NewGateway(tokens, users, content, engine)
	manager := subscription.NewManager(users, engine)

	// First boot of an empty database creates the configured admin
	// account so the content surface is reachable immediately.
	if hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("❌ admin bootstrap: %v", err)
	} else if created, err := users.EnsureAdmin(ctx, "Administrator", cfg.AdminEmail, hash); err != nil {
		log.Fatalf("❌ admin bootstrap: %v", err)
	} else if created {
		log.Printf("✅ bootstrap admin created (%s)", cfg.AdminEmail)
	}

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(rateCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(content), cacheCfg, rdb)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, engine), gateway)
	router.RegisterStudent(e, gateway,
		handler.NewLibraryHandler(library),
		handler.NewSubscriptionHandler(manager),
		handler.NewDownloadHandler(gateway, artifacts))
	router.RegisterAdmin(e, gateway, handler.NewAdminHandler(cfg, cacheCfg, rdb, content, users, engine, artifacts))

	// Audit-log consumer for entitlement events.
	go func() {
		if err := queue.StartEntitlementConsumer(); err != nil {
			log.Printf("⚠️ entitlement consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
