package fetch

import (
	"math"
	"testing"
)

func TestClassifySentiment_Bands(t *testing.T) {
	tests := []struct {
		score          float64
		classification string
		signal         string
	}{
		{0, "Extreme Fear", "contrarian_buy"},
		{20, "Extreme Fear", "contrarian_buy"},
		{20.1, "Fear", "cautious"},
		{40, "Fear", "cautious"},
		{50, "Neutral", "neutral"},
		{60, "Neutral", "neutral"},
		{75, "Greed", "cautious"},
		{80, "Greed", "cautious"},
		{80.1, "Extreme Greed", "contrarian_sell"},
		{100, "Extreme Greed", "contrarian_sell"},
	}
	for _, tt := range tests {
		c, s := ClassifySentiment(tt.score)
		if c != tt.classification || s != tt.signal {
			t.Errorf("score %.1f: got (%q, %q), want (%q, %q)", tt.score, c, s, tt.classification, tt.signal)
		}
	}
}

func TestComputeFearGreed_DefaultReadings(t *testing.T) {
	fg := ComputeFearGreed(defaultVIX, defaultPutCall, defaultMomentum, defaultSafeHaven)
	if fg.Index == nil {
		t.Fatal("expected a computed index")
	}
	if *fg.Index != 65.3 {
		t.Errorf("expected composite 65.3 for default readings, got %.1f", *fg.Index)
	}
	if fg.Classification != "Greed" {
		t.Errorf("expected Greed classification, got %q", fg.Classification)
	}
	if len(fg.Components) != 4 {
		t.Fatalf("expected 4 components, got %d", len(fg.Components))
	}
	var total float64
	for _, c := range fg.Components {
		total += c.Weight
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("component weights should sum to 1, got %.2f", total)
	}
}

func TestComputeFearGreed_PanicReadings(t *testing.T) {
	// VIX 45 normalizes below zero and must clamp to 0.
	fg := ComputeFearGreed(45, 1.2, 0.1, 0.9)
	if fg.Index == nil {
		t.Fatal("expected a computed index")
	}
	if *fg.Index != 12.0 {
		t.Errorf("expected composite 12.0, got %.1f", *fg.Index)
	}
	if fg.Classification != "Extreme Fear" || fg.Signal != "contrarian_buy" {
		t.Errorf("expected Extreme Fear/contrarian_buy, got %q/%q", fg.Classification, fg.Signal)
	}
	if fg.Components["vix"].Normalized != 0 {
		t.Errorf("VIX normalization should clamp at 0, got %.1f", fg.Components["vix"].Normalized)
	}
}
