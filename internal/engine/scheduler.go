package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBackupInterval = 5 * time.Minute
	DefaultBackupDebounce = time.Second
)

// BackupFunc makes one backup and reports success. Service.CreateAutoBackup fits.
type BackupFunc func(ctx context.Context) bool

// Scheduler drives auto-backups for long-running callers: one at Start, one
// per interval, and one debounce after the last Touch. It belongs to the
// caller layer; the core only exposes CreateAutoBackup.
type Scheduler struct {
	backup   BackupFunc
	interval time.Duration
	debounce time.Duration
	log      *zap.Logger

	touch chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler returns a stopped scheduler. interval <= 0 disables the
// periodic backup; debounce <= 0 uses DefaultBackupDebounce.
func NewScheduler(backup BackupFunc, interval, debounce time.Duration, log *zap.Logger) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultBackupDebounce
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		backup:   backup,
		interval: interval,
		debounce: debounce,
		log:      log,
		touch:    make(chan struct{}, 1),
	}
}

// Start makes a backup immediately and then runs the loop until ctx ends or
// Stop is called. Starting twice is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	s.run(ctx, "start")
	go s.loop(ctx, done)
}

// Touch schedules a backup debounce from now, replacing any pending one.
func (s *Scheduler) Touch() {
	select {
	case s.touch <- struct{}{}:
	default:
	}
}

// Stop cancels the pending debounce and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// loop closes done on exit; Stop may have cleared s.done already.
func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var (
		timer    *time.Timer
		debounce <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick:
			s.run(ctx, "interval")
		case <-s.touch:
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.debounce)
			}
			debounce = timer.C
		case <-debounce:
			debounce = nil
			s.run(ctx, "debounce")
		}
	}
}

func (s *Scheduler) run(ctx context.Context, reason string) {
	if ok := s.backup(ctx); !ok {
		s.log.Warn("scheduled auto-backup skipped", zap.String("reason", reason))
		return
	}
	s.log.Debug("scheduled auto-backup done", zap.String("reason", reason))
}
