package emu

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"vpad/emu/log"
)

// Scheduler runs periodic callbacks, each one on its own goroutine.
type Scheduler struct {
	Clock clock.Clock // real time if nil

	wg sync.WaitGroup
}

// Schedule calls fn every period until the returned cancel function is
// called. cancel waits for an ongoing call of fn to return, and can be called
// more than once.
func (s *Scheduler) Schedule(period time.Duration, fn func()) (cancel func()) {
	done := make(chan struct{})
	exited := make(chan struct{})
	clk := s.Clock
	if clk == nil {
		clk = clock.New()
	}
	ticker := clk.Ticker(period)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(exited)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			log.ModEmu.DebugZ("periodic event cancelled").Duration("period", period).End()
		})
		<-exited
	}
}

// Wait blocks until all scheduled events have been cancelled and have
// returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
