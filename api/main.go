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

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/listing-tracker/internal/auth"
	"github.com/rogerio-castellano/listing-tracker/internal/catalog"
	"github.com/rogerio-castellano/listing-tracker/internal/config"
	"github.com/rogerio-castellano/listing-tracker/internal/db"
	api "github.com/rogerio-castellano/listing-tracker/internal/http"
	"github.com/rogerio-castellano/listing-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/listing-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/listing-tracker/internal/models"
	"github.com/rogerio-castellano/listing-tracker/internal/redissvc"
	"github.com/rogerio-castellano/listing-tracker/internal/repo"
	"github.com/rogerio-castellano/listing-tracker/internal/syncer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		log.Fatal("❌ Could not prepare schema:", err)
	}

	var redisService *redissvc.RedisService
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("❌ Could not connect to Redis: %v", err)
		}
		defer rdb.Close()
		redisService = redissvc.NewRedisService(rdb, context.Background())
	}

	recordRepo := repo.NewPostgresRecordRepository(database)
	subscriptionRepo := repo.NewPostgresSubscriptionRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)
	seedAdmin(userRepo, cfg.AdminPassword)

	fetcher, err := catalog.NewClient(catalog.Options{
		BaseURL: cfg.CatalogBaseURL,
		Timeout: cfg.FetchTimeout,
		RPS:     cfg.CatalogRPS,
		Burst:   cfg.CatalogBurst,
	})
	if err != nil {
		log.Fatal("❌ Could not create catalog client:", err)
	}

	runner := syncer.NewRunner(subscriptionRepo, recordRepo, fetcher, cfg.FetchTimeout)

	var sink syncer.ReportSink
	if redisService != nil {
		sink = redisService
	}
	scheduler := syncer.NewScheduler(runner, sink)
	scheduler.Start(cfg.SyncInterval)
	defer scheduler.Stop() // runs before database.Close: no writes after shutdown

	handlers.SetRecordRepo(recordRepo)
	handlers.SetSubscriptionRepo(subscriptionRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetFetcher(fetcher)
	handlers.SetSyncTrigger(scheduler)
	handlers.SetFetchTimeout(cfg.FetchTimeout)
	if redisService != nil {
		handlers.SetReportSource(redisService)
	}

	visitors := rl.NewVisitorLimiter(cfg.VisitorRPS, cfg.VisitorBurst)
	cleanupStop := make(chan struct{})
	defer close(cleanupStop)
	go visitors.StartCleanupLoop(cleanupStop)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(visitors),
	}

	go func() {
		log.Printf("✅ Server running on %s, syncing every %s", cfg.HTTPAddr, cfg.SyncInterval)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
}

// seedAdmin creates the admin user on first boot when a password is
// configured.
func seedAdmin(users repo.UserRepository, password string) {
	if password == "" {
		return
	}
	if _, err := users.GetByUsername("admin"); err == nil {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash admin password: %v", err)
		return
	}
	if _, err := users.CreateUser(models.User{Username: "admin", PasswordHash: string(hash)}); err != nil {
		log.Printf("Could not seed admin user: %v", err)
	}
}
