package storage

import (
	"log"
	"time"
)

// Sweeper periodically drops expired bubbles from the store. It exists
// only to bound memory: queries filter expired bubbles themselves, so
// correctness never depends on the sweep having run.
type Sweeper struct {
	Store    BubbleStorage
	Interval time.Duration

	stopCh chan struct{}
}

// NewSweeper returns a sweeper over the given store. It does not start
// sweeping until Run is called.
func NewSweeper(store BubbleStorage, interval time.Duration) *Sweeper {
	return &Sweeper{
		Store:    store,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Run sweeps on a fixed interval until Stop is called. Intended to run
// as its own goroutine for the lifetime of the process.
func (s *Sweeper) Run() {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			before := s.Store.Len()
			removed := s.Store.Sweep(time.Now().UnixMilli())
			if removed > 0 {
				log.Printf("swept %d expired bubbles: %d -> %d", removed, before, before-removed)
			}
		case <-s.stopCh:
			return
		}
	}
}

// Stop terminates the Run loop. Safe to call once.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}
