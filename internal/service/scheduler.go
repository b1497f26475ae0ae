// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type syncEverythinger interface {
	SyncEverything(ctx context.Context, reason models.SyncReason) (models.SyncResult, error)
}

type commandPoller interface {
	PollCommands(ctx context.Context) ([]models.DeviceCommand, error)
}

type scheduler struct {
	syncer    syncEverythinger
	poller    commandPoller
	interval  time.Duration
	soonDelay time.Duration
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	// done is closed when the ticker goroutine of the current Start exits.
	done chan struct{}

	soon map[*time.Timer]struct{}
	// soonWg tracks the delayed runs armed since the last Stop. Stop swaps
	// it out, so a SyncSoon racing with Stop never adds to a group being
	// waited on.
	soonWg *sync.WaitGroup
}

// NewScheduler creates a Scheduler that calls syncer.SyncEverything and
// poller.PollCommands on every tick. The scheduler is idle until Start is
// called.
func NewScheduler(syncer syncEverythinger, poller commandPoller, cfg config.ClientWorkers, log *logger.Logger) Scheduler {
	interval := cfg.SyncInterval
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}
	soonDelay := cfg.ForegroundSyncDelay
	if soonDelay < 0 {
		soonDelay = 0
	}

	return &scheduler{
		syncer:    syncer,
		poller:    poller,
		interval:  interval,
		soonDelay: soonDelay,
		logger:    log,
		soon:      make(map[*time.Timer]struct{}),
		soonWg:    &sync.WaitGroup{},
	}
}

// Start implements Scheduler. The ticker goroutine exits when ctx is
// cancelled or Stop is called; a run already started by a tick is allowed to
// finish.
func (s *scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.logger.Debug().Msg("sync timer already running")
		return
	}

	jobCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	s.logger.Info().Dur("interval", s.interval).Msg("starting sync timer")

	go func() {
		defer close(done)
		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.tick(context.WithoutCancel(jobCtx))
			}
		}
	}()
}

func (s *scheduler) tick(ctx context.Context) {
	if _, err := s.syncer.SyncEverything(ctx, models.ReasonScheduled); err != nil {
		s.logger.Err(err).Str("func", "scheduler.tick").Msg("scheduled sync failed")
	}

	commands, err := s.poller.PollCommands(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "scheduler.tick").Msg("failed to poll device commands")
		return
	}
	if len(commands) > 0 {
		s.logger.Info().Int("count", len(commands)).Msg("received device commands")
	}
}

// Stop implements Scheduler. Pending SyncSoon calls that have not fired are
// dropped. Safe to call when the scheduler is not running.
func (s *scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil

	soonWg := s.soonWg
	s.soonWg = &sync.WaitGroup{}
	for t := range s.soon {
		if t.Stop() {
			soonWg.Done()
		}
		delete(s.soon, t)
	}
	s.mu.Unlock()

	if cancel != nil {
		s.logger.Info().Msg("stopping sync timer")
		cancel()
		<-done
	}
	soonWg.Wait()
}

func (s *scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

func (s *scheduler) SyncSoon(ctx context.Context, reason models.SyncReason) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx := context.WithoutCancel(ctx)
	wg := s.soonWg
	wg.Add(1)

	var t *time.Timer
	t = time.AfterFunc(s.soonDelay, func() {
		defer wg.Done()

		s.mu.Lock()
		delete(s.soon, t)
		s.mu.Unlock()

		s.logger.Debug().Str("reason", string(reason)).Msg("running delayed sync")
		if _, err := s.syncer.SyncEverything(runCtx, reason); err != nil {
			s.logger.Err(err).Str("func", "scheduler.SyncSoon").Msg("delayed sync failed")
		}
	})
	s.soon[t] = struct{}{}
}
