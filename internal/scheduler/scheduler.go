// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"puzzletrack/pkg/tracker"
)

// Scheduler owns the cron runner for the nightly full recompute.
type Scheduler struct {
	cron    *cron.Cron
	tracker *tracker.Tracker
}

// New creates a scheduler over the tracker.
func New(t *tracker.Tracker) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		tracker: t,
	}
}

// Start registers the recompute job and starts the runner.
// An empty schedule disables the job.
func (s *Scheduler) Start(schedule string) error {
	if schedule == "" {
		logrus.Info("recompute schedule disabled")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		logrus.Info("running scheduled recompute")
		if err := s.tracker.RecomputeAll(context.Background()); err != nil {
			logrus.Errorf("scheduled recompute failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule recompute job %q: %w", schedule, err)
	}

	s.cron.Start()
	logrus.Infof("scheduler started, recompute schedule: %s", schedule)
	return nil
}

// Stop stops the runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logrus.Info("scheduler stopped")
}
