package syncer

import (
	"context"
	"log"
	"sync"
	"time"
)

// CycleRunner is what the Scheduler triggers; satisfied by *Runner.
type CycleRunner interface {
	RunCycle(ctx context.Context) CycleReport
}

// ReportSink receives the summary of every completed cycle. Sinks must not
// block for long; they run on the cycle goroutine.
type ReportSink interface {
	LogCycleReport(report CycleReport)
}

// Scheduler fires the runner on a fixed interval and on demand. At most one
// cycle is in flight at any time; a trigger that arrives while a cycle runs
// is coalesced (dropped), which is safe because upserts are idempotent and
// the next interval repeats the work anyway.
type Scheduler struct {
	runner CycleRunner
	sink   ReportSink

	gate sync.Mutex // held for the duration of a cycle

	mu      sync.Mutex // guards stop, stopped, and inRun additions
	stop    chan struct{}
	stopped bool
	ticking sync.WaitGroup
	inRun   sync.WaitGroup
}

func NewScheduler(runner CycleRunner, sink ReportSink) *Scheduler {
	return &Scheduler{runner: runner, sink: sink}
}

// Start launches the timer loop. Calling Start on a running scheduler is
// a no-op.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}
	stop := make(chan struct{})
	s.stop = stop
	s.stopped = false

	s.ticking.Add(1)
	go func() {
		defer s.ticking.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if !s.TriggerNow() {
					log.Println("sync: timer trigger coalesced, cycle already in flight")
				}
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts future triggers, timer-driven and ad-hoc alike, and waits for
// an in-flight cycle to finish. It does not interrupt the cycle. Start may
// be called again afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.stopped = true
	s.mu.Unlock()

	s.ticking.Wait()
	s.inRun.Wait()
}

// TriggerNow starts a cycle immediately unless one is already running or
// the scheduler has been stopped, in which case it reports false and does
// nothing.
func (s *Scheduler) TriggerNow() bool {
	if !s.gate.TryLock() {
		return false
	}
	// The inRun addition happens under mu so it cannot race a concurrent
	// Stop that is already waiting on the group.
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.gate.Unlock()
		return false
	}
	s.inRun.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.inRun.Done()
		defer s.gate.Unlock()

		report := s.runner.RunCycle(context.Background())
		if s.sink != nil {
			s.sink.LogCycleReport(report)
		}
	}()
	return true
}
