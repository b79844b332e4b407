// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/psyhelp/internal/store"
)

// DefaultVisitorTick is the cron spec for the visitor counter tick.
const DefaultVisitorTick = "@every 5s"

const jobTimeout = 10 * time.Second

// Scheduler drives the visitor counter tick.
type Scheduler struct {
	db          *store.Database
	cron        *cron.Cron
	logger      *slog.Logger
	visitorSpec string
}

// New creates a scheduler. An empty visitorSpec disables the visitor tick.
func New(db *store.Database, visitorSpec string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		db:          db,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:      logger,
		visitorSpec: visitorSpec,
	}
}

// Start registers jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if s.visitorSpec == "" {
		s.logger.Info("visitor tick disabled")
	} else if _, err := s.cron.AddFunc(s.visitorSpec, s.tickVisitors); err != nil {
		return fmt.Errorf("scheduling visitor tick %q: %w", s.visitorSpec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the cron loop and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) tickVisitors() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.db.IncrementVisitorCount(ctx)
	if err != nil {
		s.logger.Error("failed to increment visitor count", "error", err)
		return
	}
	s.logger.Debug("visitor count incremented", "count", count)
}
