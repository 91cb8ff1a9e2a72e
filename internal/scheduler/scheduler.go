// Package scheduler запускает периодические задачи сервиса проката.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mmeshcher/carrental-system/internal/model"
)

// StatusSource возвращает текущую загрузку парка.
type StatusSource interface {
	Status() model.FleetStatus
}

// Scheduler управляет расписанием фоновых задач.
type Scheduler struct {
	cron   *cron.Cron
	source StatusSource
	logger *zap.Logger
}

// New создаёт планировщик, который пишет отчёт о парке по расписанию spec.
// Расписание принимает шесть полей (с секундами) или дескрипторы вида "@every 1h".
func New(spec string, source StatusSource, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:   c,
		source: source,
		logger: logger,
	}

	if _, err := c.AddFunc(spec, s.ReportFleet); err != nil {
		return nil, fmt.Errorf("register fleet report %q: %w", spec, err)
	}

	return s, nil
}

// ReportFleet логирует сводку загрузки парка.
func (s *Scheduler) ReportFleet() {
	st := s.source.Status()
	s.logger.Info("fleet report",
		zap.Int("total", st.Total),
		zap.Int("available", st.Available),
		zap.Int("open_rentals", st.OpenRentals),
		zap.Int("open_cars", st.OpenCars),
	)
}

// Run запускает планировщик и блокируется до отмены ctx, после чего дожидается завершения задач.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	<-ctx.Done()

	stopped := s.cron.Stop()
	<-stopped.Done()
}
