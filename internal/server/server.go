// Package server boots the HTTP service: config, database, cache, log
// sink, middleware stack, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/app/routes"
	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/reqid"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// Handler assembles the full HTTP handler against the given database.
// Split out from Start so tests can run the API over an in-memory sqlite.
func Handler(db *gorm.DB) http.Handler {
	tokens := auth.NewTokens(config.JWTSecret(), config.JWTAccessTTL(), config.JWTRefreshTTL())

	users := repositories.NewUserRepository(db)
	orders := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(users, tokens)
	orderService := services.NewOrderService(orders)

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))

	routes.RegisterAPI(r, routes.Deps{
		Auth:        controllers.NewAuthController(authService),
		Orders:      controllers.NewOrderController(orderService),
		RequireAuth: middleware.RequireAuth(tokens, users),
	})

	r.HandleFunc("/metrics", metrics.Handler())

	return r.Handler()
}

// Start boots every subsystem and serves until SIGINT/SIGTERM, then shuts
// down gracefully.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Redis is optional: without it listings are served off the database.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, caching disabled", "error", err.Error())
	}

	// Mongo log sink is optional and only attached when configured.
	if uri := config.MongoLogURI(); uri != "" {
		sink, err := logger.NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err.Error())
		} else {
			logger.AttachSink(sink)
			defer sink.Close()
		}
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(database.DB),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", config.AppEnv())
		fmt.Printf("Pizzeria running on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
