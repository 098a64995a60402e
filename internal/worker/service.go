package worker

import (
	"context"
	"errors"
	"time"

	"github.com/smiley-shop/smiley/internal/config"
	"github.com/smiley-shop/smiley/internal/logger"
	"github.com/smiley-shop/smiley/internal/queue"

	"github.com/hibiken/asynq"
)

// Service queue consumer plus periodic sweeps
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service
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

// Name service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer and the sweep loop
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	go s.runSweepLoop(ctx)
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSweepLoop clears expired admin sessions, stale signups and timed-out
// pending orders. The order sweep backs up the per-order delayed tasks when
// the queue was down at checkout time.
func (s *Service) runSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.Container == nil {
		return
	}
	interval := time.Minute
	if s.consumer.Config != nil && s.consumer.Config.Admin.SweepIntervalSeconds > 0 {
		interval = time.Duration(s.consumer.Config.Admin.SweepIntervalSeconds) * time.Second
	}

	runOnce := func() {
		now := time.Now()
		if s.consumer.AdminAuthService != nil {
			if removed, err := s.consumer.AdminAuthService.SweepExpiredSessions(now); err != nil {
				logger.Warnw("worker_sweep_admin_sessions_failed", "error", err)
			} else if removed > 0 {
				logger.Debugw("worker_sweep_admin_sessions_removed", "count", removed)
			}
		}
		if s.consumer.UserAuthService != nil {
			if removed, err := s.consumer.UserAuthService.SweepPendingSignups(now); err != nil {
				logger.Warnw("worker_sweep_pending_signups_failed", "error", err)
			} else if removed > 0 {
				logger.Debugw("worker_sweep_pending_signups_removed", "count", removed)
			}
		}
		if s.consumer.OrderService != nil {
			if cancelled, err := s.consumer.OrderService.SweepExpiredOrders(now); err != nil {
				logger.Warnw("worker_sweep_expired_orders_failed", "error", err)
			} else if cancelled > 0 {
				logger.Debugw("worker_sweep_expired_orders_cancelled", "count", cancelled)
			}
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
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
