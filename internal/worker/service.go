package worker

import (
	"context"
	"errors"
	"time"

	"github.com/cargomart/internal/config"
	"github.com/cargomart/internal/logger"
	"github.com/cargomart/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	periodCloseInterval = time.Hour
)

// Service async queue service.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the async queue service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the worker.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CommissionService != nil {
		go s.runPeriodCloseLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runPeriodCloseLoop fires the settlement close hourly. The close itself
// only acts on the 1st and 15th and skips already-assigned rows, so the
// coarse schedule is safe.
func (s *Service) runPeriodCloseLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.CommissionService == nil {
		return
	}
	runOnce := func() {
		assigned, err := s.consumer.CommissionService.CloseDuePeriods(time.Now())
		if err != nil {
			logger.Warnw("worker_period_close_failed", "error", err)
			return
		}
		if assigned > 0 {
			logger.Infow("worker_period_closed", "payments_assigned", assigned)
		}
	}
	runOnce()

	ticker := time.NewTicker(periodCloseInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
