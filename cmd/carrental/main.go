// Package main запускает HTTP-сервер сервиса проката автомобилей.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/carrental-system/internal/config"
	"github.com/mmeshcher/carrental-system/internal/handler"
	"github.com/mmeshcher/carrental-system/internal/ledger"
	"github.com/mmeshcher/carrental-system/internal/middleware"
	"github.com/mmeshcher/carrental-system/internal/scheduler"
	"github.com/mmeshcher/carrental-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	fleet, err := ledger.New(cfg.TotalCars, cfg.Rates)
	if err != nil {
		sugar.Fatalw("ledger initialization error", "error", err.Error())
	}

	svc := service.NewService(fleet)

	reports, err := scheduler.New(cfg.ReportSchedule, fleet, logger)
	if err != nil {
		sugar.Fatalw("scheduler initialization error", "error", err.Error())
	}

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(svc, logger, authMiddleware, cfg.Currency, cfg.RateLimit)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Периодический отчёт о загрузке парка
	g.Go(func() error {
		reports.Run(ctx)
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting car rental server",
			"addr", cfg.RunAddress,
			"total_cars", cfg.TotalCars,
			"hourly_rate", cfg.Rates.Hourly,
			"daily_rate", cfg.Rates.Daily,
			"weekly_rate", cfg.Rates.Weekly,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
