package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"AllocSentinel/internal/feed"
	"AllocSentinel/internal/recorder"
	"AllocSentinel/internal/report"
	"AllocSentinel/internal/strategy"
)

// Scheduler drives the evaluation loop: on every cron fire it pulls the next
// tick from the source, evaluates the engine, logs the outcome and records
// it. The engine only ever sees one tick at a time.
type Scheduler struct {
	Cron     *cron.Cron
	Source   feed.Source
	Engine   *strategy.Engine
	Recorder recorder.Recorder
	RunID    string
	Ctx      context.Context

	mu   sync.Mutex
	next int
}

// NewScheduler creates a Scheduler that starts evaluating at tick index
// `start` (the warm-up offset).
func NewScheduler(ctx context.Context, src feed.Source, eng *strategy.Engine, rec recorder.Recorder, runID string, start int) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Source:   src,
		Engine:   eng,
		Recorder: rec,
		RunID:    runID,
		Ctx:      ctx,
		next:     start,
	}
}

// Register registers the tick task.
func (s *Scheduler) Register(tickCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunTickNow executes one evaluation immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunTickNow() {
	s.tickTask()
}

func (s *Scheduler) tickTask() {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.Ctx.Done():
		return
	default:
	}

	if s.next >= s.Source.Len() {
		log.Println("[WARN] source exhausted, nothing to evaluate")
		return
	}

	in, err := s.Source.At(s.next)
	if err != nil {
		log.Printf("[ERROR] read tick %d: %v", s.next, err)
		return
	}
	s.next++

	alloc, tickErr := s.Engine.Tick(in)
	d := s.Engine.LastDecision()
	if tickErr != nil {
		log.Printf("[WARN] tick degraded: %v", tickErr)
	}
	log.Printf("[INFO] %s", report.FormatTick(d, alloc, tickErr))

	rec := &recorder.TickRecord{
		RunID:      s.RunID,
		Time:       d.Time,
		Regime:     string(d.Regime),
		Cross:      d.Cross.String(),
		SafeAsset:  d.SafeAsset,
		Selected:   d.Selected,
		Allocation: alloc,
	}
	if tickErr != nil {
		rec.TickErr = tickErr.Error()
	}
	if err := s.Recorder.RecordTick(rec); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}
}
