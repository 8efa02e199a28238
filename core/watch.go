package core

import (
	"context"
	"sync"
	"time"

	"commentsweep/logger"
)

// WatchService periodically rescans a set of roots and hands each completed
// pass to a callback. Used by the scan command's watch mode.
type WatchService struct {
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	roots    []string
	interval time.Duration
	walkOpts WalkOptions
	opts     Options
	workers  int
	onPass   func([]FileResult)
	mu       sync.Mutex
	active   bool
}

// NewWatchService creates a new instance of the WatchService. onPass is
// invoked from the service goroutine after every completed pass.
func NewWatchService(appCtx context.Context, roots []string, interval time.Duration, walkOpts WalkOptions, opts Options, workers int, onPass func([]FileResult)) *WatchService {
	ctx, cancel := context.WithCancel(appCtx)
	return &WatchService{
		ctx:      ctx,
		cancel:   cancel,
		roots:    roots,
		interval: interval,
		walkOpts: walkOpts,
		opts:     opts,
		workers:  workers,
		onPass:   onPass,
	}
}

// Start begins the rescan loop. The first pass runs immediately; later passes
// follow the configured interval.
func (s *WatchService) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		logger.Warn("WatchService is already active.")
		return
	}
	s.active = true
	s.mu.Unlock()

	logger.Info("WatchService starting: %d root(s), interval %s", len(s.roots), s.interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.active = false
			s.mu.Unlock()
			logger.Info("WatchService goroutine finished.")
		}()

		interval := s.interval
		if interval < 2*time.Second {
			logger.Info("WatchService: configured interval (%s) is below minimum (2s). Using 2s.", interval)
			interval = 2 * time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.runPass()
		for {
			select {
			case <-s.ctx.Done():
				logger.Info("WatchService: context cancelled, exiting rescan loop.")
				return
			case <-ticker.C:
				s.runPass()
			}
		}
	}()
}

// Stop gracefully stops the service and waits for the loop to exit.
func (s *WatchService) Stop() {
	logger.Info("WatchService stopping...")
	s.cancel()
	s.wg.Wait()
	logger.Info("WatchService stopped.")
}

func (s *WatchService) runPass() {
	files, err := CollectFiles(s.roots, s.walkOpts)
	if err != nil {
		logger.Error("WatchService: failed to collect files: %v", err)
		return
	}
	results := ScanFiles(s.ctx, files, s.opts, s.workers, nil)
	logger.ScanInfo("WatchService: pass complete, %d file(s) analyzed.", len(results))
	if s.onPass != nil {
		s.onPass(results)
	}
}
