package fetch

import (
	"context"
	"log"
	"math"
	"path/filepath"
	"time"

	"MarketRadar/internal/model"
)

// SentimentFetcher computes a synthetic Fear & Greed composite and
// publishes it together with the AAII survey snapshot. VIX comes live
// from Yahoo when reachable; the other components use survey-style
// placeholder readings until their paid sources are wired up.
type SentimentFetcher struct {
	macro   *MacroFetcher
	outPath string
}

// NewSentimentFetcher creates the market-sentiment fetch job.
func NewSentimentFetcher(dataDir, proxyURL string) *SentimentFetcher {
	return &SentimentFetcher{
		macro:   NewMacroFetcher(dataDir, proxyURL),
		outPath: filepath.Join(dataDir, "sentiment", "latest.json"),
	}
}

func (f *SentimentFetcher) Name() string { return "sentiment" }

// Composite component weights.
var fearGreedWeights = map[string]float64{
	"vix":        0.30,
	"put_call":   0.25,
	"momentum":   0.25,
	"safe_haven": 0.20,
}

// Default component readings, used when a live source is unavailable.
const (
	defaultVIX       = 18.5
	defaultPutCall   = 0.75
	defaultMomentum  = 0.65 // fraction above the 52-week low
	defaultSafeHaven = 0.35 // demand for treasuries/gold, 0-1
)

// Run computes the composite and publishes the sentiment document.
func (f *SentimentFetcher) Run(ctx context.Context) error {
	vix := defaultVIX
	if live, err := f.macro.fetchQuote(ctx, "^VIX"); err != nil {
		log.Printf("[WARN] live VIX unavailable, using default %.1f: %v", defaultVIX, err)
	} else {
		vix = live
	}

	doc := model.SentimentDocument{
		Metadata:  model.Metadata{LastUpdated: timestamp()},
		FearGreed: ComputeFearGreed(vix, defaultPutCall, defaultMomentum, defaultSafeHaven),
		AAII:      sampleAAII(),
	}
	if doc.FearGreed.Index != nil {
		log.Printf("[INFO] fear & greed index: %.1f (%s)", *doc.FearGreed.Index, doc.FearGreed.Classification)
	}
	return writeDocument(f.outPath, doc)
}

// ComputeFearGreed blends the four normalized components into a 0-100
// composite and classifies it.
func ComputeFearGreed(vix, putCall, momentum, safeHaven float64) model.FearGreedIndex {
	vixNorm := clamp100(100 - (vix-10)*5)
	putCallNorm := clamp100(100 - (putCall-0.5)*100)
	momentumNorm := momentum * 100
	safeHavenNorm := (1 - safeHaven) * 100

	score := vixNorm*fearGreedWeights["vix"] +
		putCallNorm*fearGreedWeights["put_call"] +
		momentumNorm*fearGreedWeights["momentum"] +
		safeHavenNorm*fearGreedWeights["safe_haven"]
	score = math.Round(score*10) / 10

	classification, signal := ClassifySentiment(score)

	return model.FearGreedIndex{
		Index:          f64(score),
		Classification: classification,
		Signal:         signal,
		Components: map[string]model.FearGreedComponent{
			"vix": {
				Value:      vix,
				Normalized: math.Round(vixNorm*10) / 10,
				Weight:     fearGreedWeights["vix"],
			},
			"put_call_ratio": {
				Value:      putCall,
				Normalized: math.Round(putCallNorm*10) / 10,
				Weight:     fearGreedWeights["put_call"],
			},
			"market_momentum": {
				Value:      momentum,
				Normalized: math.Round(momentumNorm*10) / 10,
				Weight:     fearGreedWeights["momentum"],
			},
			"safe_haven_demand": {
				Value:      safeHaven,
				Normalized: math.Round(safeHavenNorm*10) / 10,
				Weight:     fearGreedWeights["safe_haven"],
			},
		},
	}
}

// ClassifySentiment maps a composite score onto the 20/40/60/80 bands.
func ClassifySentiment(score float64) (classification, signal string) {
	switch {
	case score <= 20:
		return "Extreme Fear", "contrarian_buy"
	case score <= 40:
		return "Fear", "cautious"
	case score <= 60:
		return "Neutral", "neutral"
	case score <= 80:
		return "Greed", "cautious"
	default:
		return "Extreme Greed", "contrarian_sell"
	}
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func sampleAAII() model.AAIISurvey {
	// AAII survey data requires a subscription; representative values
	// stand in until that feed is licensed.
	return model.AAIISurvey{
		Bullish:        f64(32.5),
		Neutral:        f64(30.0),
		Bearish:        f64(37.5),
		BullBearSpread: f64(-5.0),
		Date:           time.Now().UTC().Format("2006-01-02"),
		Interpretation: "Slightly Bearish",
	}
}
