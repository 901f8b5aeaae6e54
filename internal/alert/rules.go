package alert

import (
	"fmt"

	"MarketRadar/internal/model"
)

// Fixed trigger thresholds. These back the rule IDs shipped in the rule
// configuration document; the document's condition text is display-only.
const (
	largeTradeCutoff    = 250000
	largeIncreasePct    = 50
	largeIncreaseValue  = 10000000
	vixSpikeLevel       = 30
	vixExtremeLowLevel  = 12
	extremeFearCutoff   = 20
	extremeGreedCutoff  = 80
	newPositionFundSlug = "scion"
)

// Each check reports whether a record triggers its rule and, if so, the
// subject line to tag the alert with. Rule IDs not present in a
// registry never trigger.

type congressCheck func(tx model.CongressTransaction) (bool, string)

var congressChecks = map[string]congressCheck{
	"congress_large_trade": func(tx model.CongressTransaction) (bool, string) {
		if tx.AmountMin == nil || *tx.AmountMin <= largeTradeCutoff {
			return false, ""
		}
		return true, fmt.Sprintf("%s (%s)", tx.Person, tx.Ticker)
	},
}

type fundCheck func(slug string, doc *model.FundDocument, h model.Holding) (bool, string)

var fundChecks = map[string]fundCheck{
	"burry_new_position": func(slug string, doc *model.FundDocument, h model.Holding) (bool, string) {
		if slug != newPositionFundSlug || h.PositionType != "NEW" {
			return false, ""
		}
		return true, fundSubject(doc, h)
	},
	"fund_large_increase": func(_ string, doc *model.FundDocument, h model.Holding) (bool, string) {
		if h.ChangePct == nil || *h.ChangePct <= largeIncreasePct {
			return false, ""
		}
		if h.Value == nil || *h.Value <= largeIncreaseValue {
			return false, ""
		}
		return true, fundSubject(doc, h)
	},
}

func fundSubject(doc *model.FundDocument, h model.Holding) string {
	if h.Ticker == "" {
		return doc.FundInfo.Name
	}
	return fmt.Sprintf("%s: %s", doc.FundInfo.Name, h.Ticker)
}

type macroCheck func(doc *model.MacroDocument) (bool, string)

var macroChecks = map[string]macroCheck{
	"yield_curve_inversion": func(doc *model.MacroDocument) (bool, string) {
		s := doc.Indicators.Yields.Spread2s10s
		if s == nil || *s >= 0 {
			return false, ""
		}
		return true, fmt.Sprintf("2s10s spread %.2f", *s)
	},
	"vix_spike": func(doc *model.MacroDocument) (bool, string) {
		v := doc.Indicators.Volatility.VIX
		if v == nil || *v <= vixSpikeLevel {
			return false, ""
		}
		return true, fmt.Sprintf("VIX %.1f", *v)
	},
	"vix_extreme_low": func(doc *model.MacroDocument) (bool, string) {
		v := doc.Indicators.Volatility.VIX
		if v == nil || *v >= vixExtremeLowLevel {
			return false, ""
		}
		return true, fmt.Sprintf("VIX %.1f", *v)
	},
}

type sentimentCheck func(doc *model.SentimentDocument) (bool, string)

var sentimentChecks = map[string]sentimentCheck{
	"extreme_fear": func(doc *model.SentimentDocument) (bool, string) {
		idx := doc.FearGreed.Index
		if idx == nil || *idx >= extremeFearCutoff {
			return false, ""
		}
		return true, fmt.Sprintf("Fear & Greed %.1f (%s)", *idx, doc.FearGreed.Classification)
	},
	"extreme_greed": func(doc *model.SentimentDocument) (bool, string) {
		idx := doc.FearGreed.Index
		if idx == nil || *idx <= extremeGreedCutoff {
			return false, ""
		}
		return true, fmt.Sprintf("Fear & Greed %.1f (%s)", *idx, doc.FearGreed.Classification)
	},
}
