package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stridehq/stride/internal/api"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/repository/postgres"
	"github.com/stridehq/stride/internal/service/auth"
	"github.com/stridehq/stride/internal/service/contexts"
	"github.com/stridehq/stride/internal/service/featureflag"
	"github.com/stridehq/stride/internal/service/project"
	"github.com/stridehq/stride/internal/service/task"
	"github.com/stridehq/stride/internal/service/user"
	"github.com/stridehq/stride/internal/service/waitlist"
	"github.com/stridehq/stride/internal/session"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	if cfg.Database.URL == "" {
		log.Fatal("database url is required (config database.url or DATABASE_URL)")
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnLifetime())

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	log.Println("[server] connected to postgres")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}
	log.Println("[server] connected to redis")

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	flagRepo := postgres.NewFlagRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	taskRepo := postgres.NewTaskRepo(db)
	contextRepo := postgres.NewContextRepo(db)
	waitlistRepo := postgres.NewWaitlistRepo(db)

	// Services
	contextSvc := contexts.NewService(contextRepo)
	authSvc := auth.NewService(userRepo, flagRepo, contextSvc, cfg.Signup.GateFlag)
	userSvc := user.NewService(userRepo)
	flagSvc := featureflag.NewService(flagRepo)
	projectSvc := project.NewService(projectRepo)
	taskSvc := task.NewService(taskRepo, contextRepo)
	waitlistSvc := waitlist.NewService(waitlistRepo)

	sessions := session.NewManager(rdb, userRepo, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL(),
		Secure:     cfg.Server.IsProduction(),
	})

	handlers := api.NewHandlers(authSvc, userSvc, flagSvc, projectSvc, taskSvc, contextSvc, waitlistSvc, sessions)
	health := api.NewHealthChecker(db, rdb)

	allowedOrigins := []string{"http://localhost:5173", "http://localhost:8080"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = append(allowedOrigins, origins)
	}

	router := api.SetupRoutes(handlers, health, allowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("[server] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[server] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[server] shutdown: %v", err)
	}
}
