package scheduler

import (
	"context"
	"time"

	"go-chat/internal/config"
	"go-chat/internal/features/grouprequest"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background jobs of the server. Right now that is a
// single hourly sweep that rejects group join requests left pending longer
// than the configured expiry.
type Scheduler struct {
	cron     *cron.Cron
	requests grouprequest.GroupRequestService
	config   *config.Config
	logger   *zap.Logger
}

func NewScheduler(requests grouprequest.GroupRequestService, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		requests: requests,
		config:   cfg,
		logger:   logger,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.expireStaleRequests); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.Int("requestExpiryDays", s.config.RequestExpiryDays))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) expireStaleRequests() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	maxAge := time.Duration(s.config.RequestExpiryDays) * 24 * time.Hour
	if _, err := s.requests.ExpireStale(ctx, maxAge); err != nil {
		s.logger.Error("failed to expire stale group requests", zap.Error(err))
	}
}
