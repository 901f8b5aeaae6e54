package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketRadar/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the radar writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			fetcher     TEXT NOT NULL,
			ok          INTEGER NOT NULL,
			error       TEXT,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS eval_passes (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			alert_count  INTEGER,
			high_count   INTEGER,
			medium_count INTEGER,
			low_count    INTEGER,
			duration_ms  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_eval_ts ON eval_passes(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id          TEXT PRIMARY KEY,
			pass_id     INTEGER NOT NULL,
			timestamp   INTEGER NOT NULL,
			rule_id     TEXT NOT NULL,
			name        TEXT,
			priority    TEXT,
			description TEXT,
			subject     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_pass ON alerts(pass_id)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_rule ON alerts(rule_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetchRun(run *FetchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_runs
		(timestamp, fetcher, ok, error, duration_ms)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), run.Fetcher, boolToInt(run.OK), run.Error,
		run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordEvaluation(pass *EvaluationPass) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[model.Priority]int{}
	for _, a := range pass.Alerts {
		counts[a.Priority]++
	}

	res, err := r.db.Exec(`INSERT INTO eval_passes
		(timestamp, alert_count, high_count, medium_count, low_count, duration_ms)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), len(pass.Alerts),
		counts[model.PriorityHigh], counts[model.PriorityMedium], counts[model.PriorityLow],
		pass.Duration.Milliseconds(),
	)
	if err != nil {
		return err
	}
	passID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, a := range pass.Alerts {
		if _, err := r.db.Exec(`INSERT INTO alerts
			(id, pass_id, timestamp, rule_id, name, priority, description, subject)
			VALUES (?,?,?,?,?,?,?,?)`,
			a.ID, passID, a.Timestamp.Unix(), a.RuleID, a.Name,
			string(a.Priority), a.Description, a.Subject,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
