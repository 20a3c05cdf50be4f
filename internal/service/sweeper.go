package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartSweeper runs SweepIdle on the given cron schedule until ctx is done.
func (s *GameService) StartSweeper(ctx context.Context, schedule string) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(schedule, func() {
		s.SweepIdle()
	}); err != nil {
		return fmt.Errorf("add sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("idle game sweeper started", zap.String("schedule", schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("idle game sweeper stopped")

	return nil
}
