package fetch

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"MarketRadar/internal/model"
)

// InsidersFetcher publishes the insider-transactions document.
//
// TODO: parse real Form 4 filings from the EDGAR full-text search feed;
// until that XML parsing lands, representative sample transactions keep
// the document contract exercised end to end.
type InsidersFetcher struct {
	outPath string
}

// NewInsidersFetcher creates the insider-transactions fetch job.
func NewInsidersFetcher(dataDir string) *InsidersFetcher {
	return &InsidersFetcher{
		outPath: filepath.Join(dataDir, "insiders", "latest.json"),
	}
}

func (f *InsidersFetcher) Name() string { return "insiders" }

// Run publishes the document, newest transactions first.
func (f *InsidersFetcher) Run(_ context.Context) error {
	txs := sampleInsiderTransactions(time.Now())
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date > txs[j].Date })

	doc := model.InsiderDocument{
		Metadata: model.Metadata{
			LastUpdated: timestamp(),
			TotalCount:  len(txs),
		},
		Transactions: txs,
	}
	return writeDocument(f.outPath, doc)
}

func sampleInsiderTransactions(now time.Time) []model.InsiderTransaction {
	day := func(daysAgo int) string {
		return now.AddDate(0, 0, -daysAgo).UTC().Format("2006-01-02")
	}
	return []model.InsiderTransaction{
		{
			InsiderName:      "John Smith",
			InsiderTitle:     "CEO",
			Company:          "Tech Corp",
			Ticker:           "TECH",
			TransactionType:  "BUY",
			Shares:           f64(10000),
			PricePerShare:    f64(150.50),
			Value:            f64(1505000),
			SharesOwnedAfter: f64(250000),
			Date:             day(4),
			FilingDate:       day(2),
		},
		{
			InsiderName:      "Jane Doe",
			InsiderTitle:     "CFO",
			Company:          "Finance Inc",
			Ticker:           "FIN",
			TransactionType:  "SELL",
			Shares:           f64(5000),
			PricePerShare:    f64(85.25),
			Value:            f64(426250),
			SharesOwnedAfter: f64(50000),
			Date:             day(3),
			FilingDate:       day(1),
		},
	}
}
