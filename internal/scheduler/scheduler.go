package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"MarketRadar/internal/alert"
	"MarketRadar/internal/fetch"
	"MarketRadar/internal/loader"
	"MarketRadar/internal/notifier"
	"MarketRadar/internal/recorder"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Filings   []fetch.Fetcher
	Markets   []fetch.Fetcher
	Loader    *loader.Loader
	Evaluator *alert.Evaluator
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context

	mu          sync.Mutex
	lastLoaded  time.Time
	evalEntryID cron.EntryID
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, filings, markets []fetch.Fetcher, l *loader.Loader, ev *alert.Evaluator, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Filings:   filings,
		Markets:   markets,
		Loader:    l,
		Evaluator: ev,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
	}
}

// RegisterAll registers the filings, markets, and evaluation tasks.
func (s *Scheduler) RegisterAll(filingsCron, marketsCron, evalCron string) error {
	if _, err := s.Cron.AddFunc(filingsCron, s.filingsTask); err != nil {
		return fmt.Errorf("register filings task: %w", err)
	}
	if _, err := s.Cron.AddFunc(marketsCron, s.marketsTask); err != nil {
		return fmt.Errorf("register markets task: %w", err)
	}
	id, err := s.Cron.AddFunc(evalCron, s.evaluationTask)
	if err != nil {
		return fmt.Errorf("register evaluation task: %w", err)
	}
	s.evalEntryID = id
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

// RunAllNow executes every task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunAllNow() {
	s.filingsTask()
	s.marketsTask()
	s.evaluationTask()
}

func (s *Scheduler) filingsTask() {
	log.Println("[INFO] running filings fetch")
	s.runFetchers(s.Filings)
}

func (s *Scheduler) marketsTask() {
	log.Println("[INFO] running markets fetch")
	s.runFetchers(s.Markets)
}

func (s *Scheduler) runFetchers(fetchers []fetch.Fetcher) {
	for _, f := range fetchers {
		start := time.Now()
		err := f.Run(s.Ctx)
		run := &recorder.FetchRun{
			Fetcher:  f.Name(),
			OK:       err == nil,
			Duration: time.Since(start),
		}
		if err != nil {
			run.Error = err.Error()
			log.Printf("[ERROR] fetch %s: %v", f.Name(), err)
		}
		if recErr := s.Recorder.RecordFetchRun(run); recErr != nil {
			log.Printf("[ERROR] record fetch run: %v", recErr)
		}
	}
}

func (s *Scheduler) evaluationTask() {
	log.Println("[INFO] running alert evaluation")
	start := time.Now()

	snap := s.Loader.Refresh(s.Ctx)
	s.mu.Lock()
	s.lastLoaded = snap.LoadedAt
	s.mu.Unlock()

	alerts := s.Evaluator.CheckAll(s.Ctx, snap)
	log.Printf("[INFO] evaluation produced %d alert(s)", len(alerts))

	if err := s.Recorder.RecordEvaluation(&recorder.EvaluationPass{
		Alerts:   alerts,
		Duration: time.Since(start),
	}); err != nil {
		log.Printf("[ERROR] record evaluation: %v", err)
	}

	if len(alerts) > 0 {
		s.trySend(notifier.FormatAlertDigest(alerts))
	}
}

// HandleCommand processes an operator command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/alerts":
		return notifier.FormatAlertDigest(s.Evaluator.Active())
	case "/refresh":
		s.evaluationTask()
		return ""
	case "/status":
		s.mu.Lock()
		loaded := s.lastLoaded
		s.mu.Unlock()
		var next time.Time
		if s.evalEntryID != 0 {
			next = s.Cron.Entry(s.evalEntryID).Next
		}
		return notifier.FormatStatus(loaded, len(s.Evaluator.Active()), next)
	default:
		return "Available commands:\n• /alerts\n• /refresh\n• /status"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
