package alert

import (
	"context"
	"fmt"
	"testing"

	"MarketRadar/internal/loader"
	"MarketRadar/internal/model"
)

const testRules = `{
  "alerts": {
    "congress": [
      {"id": "congress_large_trade", "name": "Large Congressional Trade", "priority": "high"}
    ],
    "funds_13f": [
      {"id": "burry_new_position", "name": "Scion New Position", "priority": "high"},
      {"id": "fund_large_increase", "name": "Large Position Increase", "priority": "medium"}
    ],
    "macro": [
      {"id": "yield_curve_inversion", "name": "Yield Curve Inversion", "priority": "high"},
      {"id": "vix_spike", "name": "VIX Spike", "priority": "high"},
      {"id": "vix_extreme_low", "name": "VIX Extreme Low", "priority": "low"}
    ],
    "sentiment": [
      {"id": "extreme_fear", "name": "Extreme Fear", "priority": "medium"},
      {"id": "extreme_greed", "name": "Extreme Greed", "priority": "medium"}
    ]
  }
}`

type staticSource struct {
	docs map[string][]byte
}

func (s *staticSource) Fetch(_ context.Context, path string) ([]byte, error) {
	data, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("no document at %s", path)
	}
	return data, nil
}

func (s *staticSource) Name() string { return "static" }

func newTestEvaluator() *Evaluator {
	src := &staticSource{docs: map[string][]byte{
		"rules.json": []byte(testRules),
	}}
	return NewEvaluator(src, "rules.json")
}

func f(v float64) *float64 { return &v }

func TestCheckAll_LargeTradeThreshold(t *testing.T) {
	ev := newTestEvaluator()

	tests := []struct {
		name   string
		min    *float64
		expect int
	}{
		{"above cutoff", f(250001), 1},
		{"exactly at cutoff", f(250000), 0},
		{"below cutoff", f(15001), 0},
		{"amount absent", nil, 0},
	}
	for _, tt := range tests {
		snap := &loader.Snapshot{
			Congress: &model.CongressDocument{
				Transactions: []model.CongressTransaction{
					{Person: "Jane Doe", Ticker: "NVDA", AmountMin: tt.min},
				},
			},
		}
		alerts := ev.CheckAll(context.Background(), snap)
		if len(alerts) != tt.expect {
			t.Errorf("%s: expected %d alerts, got %d", tt.name, tt.expect, len(alerts))
		}
		if tt.expect == 1 && alerts[0].Subject != "Jane Doe (NVDA)" {
			t.Errorf("%s: unexpected subject %q", tt.name, alerts[0].Subject)
		}
	}
}

func TestCheckAll_NoDeduplication(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Congress: &model.CongressDocument{
			Transactions: []model.CongressTransaction{
				{Person: "A", Ticker: "X", AmountMin: f(500000)},
				{Person: "B", Ticker: "Y", AmountMin: f(1000001)},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if len(alerts) != 2 {
		t.Fatalf("expected one alert per matching record, got %d", len(alerts))
	}
}

func TestCheckAll_ScionNewPosition(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Funds: map[string]*model.FundDocument{
			"scion": {
				FundInfo: model.FundInfo{Name: "Scion Asset Management"},
				Holdings: []model.Holding{
					{Ticker: "GOOG", PositionType: "NEW"},
					{Ticker: "BABA", PositionType: "HELD"},
				},
			},
			"berkshire": {
				FundInfo: model.FundInfo{Name: "Berkshire Hathaway"},
				Holdings: []model.Holding{
					{Ticker: "OXY", PositionType: "NEW"},
				},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].RuleID != "burry_new_position" {
		t.Errorf("unexpected rule %q", alerts[0].RuleID)
	}
	if alerts[0].Subject != "Scion Asset Management: GOOG" {
		t.Errorf("unexpected subject %q", alerts[0].Subject)
	}
}

func TestCheckAll_FundLargeIncreaseNeedsBothFields(t *testing.T) {
	ev := newTestEvaluator()

	tests := []struct {
		name    string
		holding model.Holding
		expect  int
	}{
		{"both above", model.Holding{Ticker: "AAPL", ChangePct: f(75), Value: f(20000000)}, 1},
		{"pct at boundary", model.Holding{Ticker: "AAPL", ChangePct: f(50), Value: f(20000000)}, 0},
		{"value too small", model.Holding{Ticker: "AAPL", ChangePct: f(75), Value: f(9000000)}, 0},
		{"pct absent", model.Holding{Ticker: "AAPL", Value: f(20000000)}, 0},
		{"value absent", model.Holding{Ticker: "AAPL", ChangePct: f(75)}, 0},
	}
	for _, tt := range tests {
		snap := &loader.Snapshot{
			Funds: map[string]*model.FundDocument{
				"berkshire": {
					FundInfo: model.FundInfo{Name: "Berkshire Hathaway"},
					Holdings: []model.Holding{tt.holding},
				},
			},
		}
		alerts := ev.CheckAll(context.Background(), snap)
		if len(alerts) != tt.expect {
			t.Errorf("%s: expected %d alerts, got %d", tt.name, tt.expect, len(alerts))
		}
	}
}

func TestCheckAll_YieldCurveInversion(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Macro: &model.MacroDocument{
			Indicators: model.MacroIndicators{
				Yields: model.YieldIndicators{US2Y: f(4.85), US10Y: f(4.70), Spread2s10s: f(-0.15)},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	if alerts[0].RuleID != "yield_curve_inversion" {
		t.Errorf("unexpected rule %q", alerts[0].RuleID)
	}
	if alerts[0].Subject != "2s10s spread -0.15" {
		t.Errorf("unexpected subject %q", alerts[0].Subject)
	}
}

func TestCheckAll_VIXThresholds(t *testing.T) {
	ev := newTestEvaluator()

	tests := []struct {
		name   string
		vix    float64
		rule   string
		expect int
	}{
		{"spike", 30.5, "vix_spike", 1},
		{"panic spike", 45, "vix_spike", 1},
		{"exactly at spike level", 30, "", 0},
		{"calm", 18.5, "", 0},
		{"exactly at low level", 12, "", 0},
		{"extreme low", 11.9, "vix_extreme_low", 1},
	}
	for _, tt := range tests {
		snap := &loader.Snapshot{
			Macro: &model.MacroDocument{
				Indicators: model.MacroIndicators{
					Volatility: model.VolatilityIndicators{VIX: f(tt.vix)},
				},
			},
		}
		alerts := ev.CheckAll(context.Background(), snap)
		if len(alerts) != tt.expect {
			t.Errorf("%s: expected %d alerts, got %d", tt.name, tt.expect, len(alerts))
			continue
		}
		if tt.expect == 1 && alerts[0].RuleID != tt.rule {
			t.Errorf("%s: expected rule %q, got %q", tt.name, tt.rule, alerts[0].RuleID)
		}
	}
}

func TestCheckAll_VIXAbsentTriggersNothing(t *testing.T) {
	ev := newTestEvaluator()
	// A missing VIX must not satisfy vix_extreme_low even though any
	// numeric zero would.
	snap := &loader.Snapshot{
		Macro: &model.MacroDocument{
			Indicators: model.MacroIndicators{
				Yields: model.YieldIndicators{Spread2s10s: f(0.45)},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts, got %d", len(alerts))
	}
}

func TestCheckAll_SentimentExtremes(t *testing.T) {
	ev := newTestEvaluator()

	tests := []struct {
		index  float64
		rule   string
		expect int
	}{
		{12.5, "extreme_fear", 1},
		{20, "", 0},
		{50, "", 0},
		{80, "", 0},
		{91.0, "extreme_greed", 1},
	}
	for _, tt := range tests {
		snap := &loader.Snapshot{
			Sentiment: &model.SentimentDocument{
				FearGreed: model.FearGreedIndex{Index: f(tt.index), Classification: "Whatever"},
			},
		}
		alerts := ev.CheckAll(context.Background(), snap)
		if len(alerts) != tt.expect {
			t.Errorf("index %.1f: expected %d alerts, got %d", tt.index, tt.expect, len(alerts))
			continue
		}
		if tt.expect == 1 && alerts[0].RuleID != tt.rule {
			t.Errorf("index %.1f: expected rule %q, got %q", tt.index, tt.rule, alerts[0].RuleID)
		}
	}
}

func TestCheckAll_PriorityOrdering(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Macro: &model.MacroDocument{
			Indicators: model.MacroIndicators{
				Volatility: model.VolatilityIndicators{VIX: f(10.5)},
			},
		},
		Sentiment: &model.SentimentDocument{
			FearGreed: model.FearGreedIndex{Index: f(95), Classification: "Extreme Greed"},
		},
		Congress: &model.CongressDocument{
			Transactions: []model.CongressTransaction{
				{Person: "A", Ticker: "X", AmountMin: f(500000)},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(alerts))
	}
	want := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	for i, p := range want {
		if alerts[i].Priority != p {
			t.Errorf("position %d: expected priority %s, got %s", i, p, alerts[i].Priority)
		}
	}
}

func TestCheckAll_Idempotent(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Congress: &model.CongressDocument{
			Transactions: []model.CongressTransaction{
				{Person: "A", Ticker: "X", AmountMin: f(300000)},
				{Person: "B", Ticker: "Y", AmountMin: f(400000)},
			},
		},
		Funds: map[string]*model.FundDocument{
			"scion": {
				FundInfo: model.FundInfo{Name: "Scion Asset Management"},
				Holdings: []model.Holding{{Ticker: "GOOG", PositionType: "NEW"}},
			},
		},
	}
	first := ev.CheckAll(context.Background(), snap)
	second := ev.CheckAll(context.Background(), snap)
	if len(first) != len(second) {
		t.Fatalf("pass sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].RuleID != second[i].RuleID || first[i].Subject != second[i].Subject {
			t.Errorf("position %d differs: %s/%s vs %s/%s",
				i, first[i].RuleID, first[i].Subject, second[i].RuleID, second[i].Subject)
		}
	}
}

func TestCheckAll_RuleLoadFailure(t *testing.T) {
	src := &staticSource{docs: map[string][]byte{}}
	ev := NewEvaluator(src, "rules.json")
	snap := &loader.Snapshot{
		Congress: &model.CongressDocument{
			Transactions: []model.CongressTransaction{
				{Person: "A", Ticker: "X", AmountMin: f(500000)},
			},
		},
	}
	alerts := ev.CheckAll(context.Background(), snap)
	if alerts == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts on rule-load failure, got %d", len(alerts))
	}
	if len(ev.Active()) != 0 {
		t.Error("active set should be cleared after a skipped pass")
	}
}

func TestCheckAll_UnknownRuleIDIgnored(t *testing.T) {
	rules := `{"alerts": {"macro": [{"id": "made_up_rule", "name": "X", "priority": "high"}]}}`
	src := &staticSource{docs: map[string][]byte{"rules.json": []byte(rules)}}
	ev := NewEvaluator(src, "rules.json")
	snap := &loader.Snapshot{
		Macro: &model.MacroDocument{
			Indicators: model.MacroIndicators{
				Volatility: model.VolatilityIndicators{VIX: f(45)},
			},
		},
	}
	if alerts := ev.CheckAll(context.Background(), snap); len(alerts) != 0 {
		t.Fatalf("unknown rule ID should never trigger, got %d alerts", len(alerts))
	}
}

func TestActive_ReturnsCopy(t *testing.T) {
	ev := newTestEvaluator()
	snap := &loader.Snapshot{
		Congress: &model.CongressDocument{
			Transactions: []model.CongressTransaction{
				{Person: "A", Ticker: "X", AmountMin: f(500000)},
			},
		},
	}
	ev.CheckAll(context.Background(), snap)
	got := ev.Active()
	if len(got) != 1 {
		t.Fatalf("expected 1 active alert, got %d", len(got))
	}
	got[0].Subject = "mutated"
	if ev.Active()[0].Subject == "mutated" {
		t.Error("Active must return a copy, not the internal slice")
	}
}
