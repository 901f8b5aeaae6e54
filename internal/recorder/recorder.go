package recorder

import (
	"time"

	"MarketRadar/internal/model"
)

// FetchRun records one execution of a fetch job.
type FetchRun struct {
	Fetcher  string
	OK       bool
	Error    string
	Duration time.Duration
}

// EvaluationPass records one alert-evaluation pass and the alerts it
// produced.
type EvaluationPass struct {
	Alerts   []model.Alert
	Duration time.Duration
}

// Recorder persists run history for analysis. The alert rows are a run
// log only; the evaluator never reads them back, so repeat alerts are
// recorded again on every pass.
type Recorder interface {
	RecordFetchRun(run *FetchRun) error
	RecordEvaluation(pass *EvaluationPass) error
	Close() error
}
