// Package filter provides pure, side-effect-free transformations over
// record collections. Every function returns a new slice and never
// mutates its input; absent criteria impose no constraint.
package filter

import (
	"strings"

	"MarketRadar/internal/model"
)

// Search narrows records to those where any of the extracted fields
// contains term, case-insensitively. An empty term returns the input
// unchanged.
func Search[T any](records []T, term string, fields func(T) []string) []T {
	term = strings.TrimSpace(term)
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	out := make([]T, 0, len(records))
	for _, r := range records {
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// CongressFilter narrows political-trade transactions. Zero-value
// fields are ignored.
type CongressFilter struct {
	Search    string
	Chamber   string
	Type      string
	Sector    string
	MinAmount *float64
}

// CongressTransactions applies a CongressFilter, ANDing every present
// criterion.
func CongressTransactions(txs []model.CongressTransaction, f CongressFilter) []model.CongressTransaction {
	txs = Search(txs, f.Search, func(tx model.CongressTransaction) []string {
		return []string{tx.Person, tx.Ticker, tx.Sector}
	})

	out := make([]model.CongressTransaction, 0, len(txs))
	for _, tx := range txs {
		if f.Chamber != "" && tx.Chamber != f.Chamber {
			continue
		}
		if f.Type != "" && tx.TransactionType != f.Type {
			continue
		}
		if f.Sector != "" && tx.Sector != f.Sector {
			continue
		}
		if f.MinAmount != nil && (tx.AmountMin == nil || *tx.AmountMin < *f.MinAmount) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// HoldingFilter narrows 13F holdings.
type HoldingFilter struct {
	Search       string
	PositionType string
	MinValue     *float64
}

// Holdings applies a HoldingFilter.
func Holdings(holdings []model.Holding, f HoldingFilter) []model.Holding {
	holdings = Search(holdings, f.Search, func(h model.Holding) []string {
		return []string{h.Ticker, h.Name}
	})

	out := make([]model.Holding, 0, len(holdings))
	for _, h := range holdings {
		if f.PositionType != "" && h.PositionType != f.PositionType {
			continue
		}
		if f.MinValue != nil && (h.Value == nil || *h.Value < *f.MinValue) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// InsiderFilter narrows insider transactions.
type InsiderFilter struct {
	Search   string
	Type     string
	MinValue *float64
}

// InsiderTransactions applies an InsiderFilter.
func InsiderTransactions(txs []model.InsiderTransaction, f InsiderFilter) []model.InsiderTransaction {
	txs = Search(txs, f.Search, func(tx model.InsiderTransaction) []string {
		return []string{tx.InsiderName, tx.Company, tx.Ticker}
	})

	out := make([]model.InsiderTransaction, 0, len(txs))
	for _, tx := range txs {
		if f.Type != "" && tx.TransactionType != f.Type {
			continue
		}
		if f.MinValue != nil && (tx.Value == nil || *tx.Value < *f.MinValue) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
