package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"egressguard/internal/config"
	"egressguard/internal/db"
	"egressguard/internal/handler"
	gh "egressguard/internal/http"
	"egressguard/internal/network"
	"egressguard/internal/repository"
	"egressguard/internal/scheduler"
	"egressguard/internal/service"
	"egressguard/pkg/logger"
	"egressguard/pkg/snowflake"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	if err := snowflake.Init(0); err != nil {
		logger.Error("snowflake init", "error", err)
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("database open", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	requestRepo := repository.NewRequestRepository(database)
	deletedRepo := repository.NewDeletedRequestRepository(database)

	limiter := service.NewRateLimiter()
	adminService := service.NewAdminService(requestRepo, deletedRepo, limiter)
	retentionService := service.NewRetentionService(requestRepo, deletedRepo, limiter, cfg)

	interceptor := service.NewInterceptorService(requestRepo, limiter, cfg)
	recorder := service.NewRecorderService(requestRepo, cfg)
	policyTransport := network.NewPolicyTransport(http.DefaultTransport, interceptor, recorder, cfg,
		network.Attribution{Component: "egressguard"})
	// Every outbound call this process makes goes through policy.
	http.DefaultTransport = policyTransport

	e := gh.NewRouter(
		handler.NewRequestHandler(adminService),
		handler.NewSweepHandler(retentionService),
		cfg.AuthToken,
	)

	sched := scheduler.New(retentionService, cfg.SweepSchedule)
	if err := sched.Start(); err != nil {
		logger.Error("scheduler start", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)
		policyTransport.Flush()
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
