// Package alert evaluates the declarative rule document against freshly
// loaded data and produces a priority-ordered list of alerts.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"MarketRadar/internal/loader"
	"MarketRadar/internal/model"
)

// Evaluator runs rule passes. Each Evaluator owns its own active-alert
// set, so independent sessions never see each other's results.
type Evaluator struct {
	source    loader.Source
	rulesPath string

	mu     sync.Mutex
	active []model.Alert
}

// NewEvaluator creates an Evaluator that loads its rule document from
// the given source and path on every pass.
func NewEvaluator(source loader.Source, rulesPath string) *Evaluator {
	return &Evaluator{source: source, rulesPath: rulesPath}
}

func (e *Evaluator) loadRules(ctx context.Context) (*model.RuleSet, error) {
	data, err := e.source.Fetch(ctx, e.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("fetch rules: %w", err)
	}
	rules := &model.RuleSet{}
	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return rules, nil
}

// CheckAll loads the rule set and evaluates every domain of the
// snapshot against it. A rule-load failure degrades the whole pass to
// zero alerts; a nil domain in the snapshot is skipped. The result
// replaces the previous pass's active set.
func (e *Evaluator) CheckAll(ctx context.Context, snap *loader.Snapshot) []model.Alert {
	alerts := []model.Alert{}

	rules, err := e.loadRules(ctx)
	if err != nil {
		log.Printf("[WARN] alert pass skipped: %v", err)
		e.setActive(alerts)
		return alerts
	}
	log.Printf("[INFO] evaluating %d rules", rules.Len())
	if snap == nil {
		snap = &loader.Snapshot{}
	}

	now := time.Now()
	alerts = append(alerts, checkCongress(rules.Alerts.Congress, snap.Congress, now)...)
	alerts = append(alerts, checkFunds(rules.Alerts.Funds13F, snap.Funds, now)...)
	alerts = append(alerts, checkMacro(rules.Alerts.Macro, snap.Macro, now)...)
	alerts = append(alerts, checkSentiment(rules.Alerts.Sentiment, snap.Sentiment, now)...)

	// Priority order; ties keep domain-then-record generation order.
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() < alerts[j].Priority.Rank()
	})

	e.setActive(alerts)
	return alerts
}

// Active returns a copy of the most recent pass's alerts.
func (e *Evaluator) Active() []model.Alert {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Alert, len(e.active))
	copy(out, e.active)
	return out
}

func (e *Evaluator) setActive(alerts []model.Alert) {
	e.mu.Lock()
	e.active = alerts
	e.mu.Unlock()
}

func newAlert(rule model.Rule, subject string, record any, ts time.Time) model.Alert {
	return model.Alert{
		ID:          uuid.New().String(),
		RuleID:      rule.ID,
		Name:        rule.Name,
		Priority:    rule.Priority,
		Description: rule.Description,
		Subject:     subject,
		Record:      record,
		Timestamp:   ts,
	}
}

func checkCongress(rules []model.Rule, doc *model.CongressDocument, ts time.Time) []model.Alert {
	if doc == nil {
		return nil
	}
	var alerts []model.Alert
	for _, tx := range doc.Transactions {
		for _, rule := range rules {
			check, ok := congressChecks[rule.ID]
			if !ok {
				continue
			}
			if hit, subject := check(tx); hit {
				alerts = append(alerts, newAlert(rule, subject, tx, ts))
			}
		}
	}
	return alerts
}

func checkFunds(rules []model.Rule, funds map[string]*model.FundDocument, ts time.Time) []model.Alert {
	if len(funds) == 0 {
		return nil
	}

	// Map order is not deterministic; fix it so identical inputs
	// always yield identical output order.
	slugs := make([]string, 0, len(funds))
	for slug := range funds {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var alerts []model.Alert
	for _, slug := range slugs {
		doc := funds[slug]
		for _, h := range doc.Holdings {
			for _, rule := range rules {
				check, ok := fundChecks[rule.ID]
				if !ok {
					continue
				}
				if hit, subject := check(slug, doc, h); hit {
					alerts = append(alerts, newAlert(rule, subject, h, ts))
				}
			}
		}
	}
	return alerts
}

func checkMacro(rules []model.Rule, doc *model.MacroDocument, ts time.Time) []model.Alert {
	if doc == nil {
		return nil
	}
	var alerts []model.Alert
	for _, rule := range rules {
		check, ok := macroChecks[rule.ID]
		if !ok {
			continue
		}
		if hit, subject := check(doc); hit {
			alerts = append(alerts, newAlert(rule, subject, doc.Indicators, ts))
		}
	}
	return alerts
}

func checkSentiment(rules []model.Rule, doc *model.SentimentDocument, ts time.Time) []model.Alert {
	if doc == nil {
		return nil
	}
	var alerts []model.Alert
	for _, rule := range rules {
		check, ok := sentimentChecks[rule.ID]
		if !ok {
			continue
		}
		if hit, subject := check(doc); hit {
			alerts = append(alerts, newAlert(rule, subject, doc.FearGreed, ts))
		}
	}
	return alerts
}
