package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"MarketRadar/internal/model"
)

// CongressFetcher pulls disclosed stock trades from the House and
// Senate stock-watcher feeds and merges them into one document.
type CongressFetcher struct {
	client    *resty.Client
	houseURL  string
	senateURL string
	outPath   string
}

// NewCongressFetcher creates the political-trades fetch job.
func NewCongressFetcher(houseURL, senateURL, dataDir, proxyURL string) *CongressFetcher {
	return &CongressFetcher{
		client:    newClient(proxyURL),
		houseURL:  houseURL,
		senateURL: senateURL,
		outPath:   filepath.Join(dataDir, "congress", "all.json"),
	}
}

func (f *CongressFetcher) Name() string { return "congress" }

// rawDisclosure covers both feeds; the House feed names the filer
// "representative", the Senate feed "senator".
type rawDisclosure struct {
	Representative  string `json:"representative"`
	Senator         string `json:"senator"`
	Ticker          string `json:"ticker"`
	Sector          string `json:"sector"`
	Type            string `json:"type"`
	Amount          string `json:"amount"`
	TransactionDate string `json:"transaction_date"`
	DisclosureDate  string `json:"disclosure_date"`
	PtrLink         string `json:"ptr_link"`
}

// Run fetches both chambers, merges, sorts newest-first, and publishes.
// A single chamber failing degrades to the other chamber's data alone.
func (f *CongressFetcher) Run(ctx context.Context) error {
	house := f.fetchChamber(ctx, f.houseURL, "House")
	senate := f.fetchChamber(ctx, f.senateURL, "Senate")

	all := append(house, senate...)
	if len(all) == 0 {
		return fmt.Errorf("no transactions from either chamber")
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Date > all[j].Date })

	doc := model.CongressDocument{
		Metadata: model.CongressMetadata{
			Metadata: model.Metadata{
				LastUpdated: timestamp(),
				TotalCount:  len(all),
			},
			HouseCount:  len(house),
			SenateCount: len(senate),
			DateRange: model.DateRange{
				From: all[len(all)-1].Date,
				To:   all[0].Date,
			},
		},
		Transactions: all,
	}
	return writeDocument(f.outPath, doc)
}

func (f *CongressFetcher) fetchChamber(ctx context.Context, url, chamber string) []model.CongressTransaction {
	if url == "" {
		return nil
	}
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		log.Printf("[WARN] fetch %s disclosures: %v", chamber, err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("[WARN] fetch %s disclosures: status %d", chamber, resp.StatusCode())
		return nil
	}

	var raw []rawDisclosure
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		log.Printf("[WARN] decode %s disclosures: %v", chamber, err)
		return nil
	}

	txs := make([]model.CongressTransaction, 0, len(raw))
	for _, r := range raw {
		txs = append(txs, normalizeDisclosure(r, chamber))
	}
	log.Printf("[INFO] fetched %d %s transactions", len(txs), chamber)
	return txs
}

func normalizeDisclosure(r rawDisclosure, chamber string) model.CongressTransaction {
	person := r.Representative
	if person == "" {
		person = r.Senator
	}
	if person == "" {
		person = "Unknown"
	}
	sector := r.Sector
	if sector == "" {
		sector = "Unknown"
	}

	tx := model.CongressTransaction{
		Person:          person,
		Chamber:         chamber,
		Ticker:          r.Ticker,
		Sector:          sector,
		TransactionType: normalizeTransactionType(r.Type),
		AmountRange:     r.Amount,
		Date:            r.TransactionDate,
		DisclosureDate:  r.DisclosureDate,
		Link:            r.PtrLink,
	}
	if tx.Ticker == "" {
		tx.Ticker = "N/A"
	}

	amountMin, amountMax := parseAmountRange(r.Amount)
	tx.AmountMin = f64(amountMin)
	tx.AmountMax = f64(amountMax)
	return tx
}

// normalizeTransactionType folds the feeds' free-text types into
// purchase/sale/exchange.
func normalizeTransactionType(raw string) string {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "purchase"), strings.Contains(t, "buy"):
		return "purchase"
	case strings.Contains(t, "sale"), strings.Contains(t, "sell"):
		return "sale"
	case strings.Contains(t, "exchange"):
		return "exchange"
	default:
		return "purchase"
	}
}

// parseAmountRange parses disclosure ranges like "$15,001 - $50,000"
// into their numeric bounds. A single value yields (v, v); anything
// unparseable yields (0, 0).
func parseAmountRange(s string) (float64, float64) {
	s = strings.NewReplacer("$", "", ",", "").Replace(s)

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		minVal, errLo := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		maxVal, errHi := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errLo != nil || errHi != nil {
			return 0, 0
		}
		return minVal, maxVal
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, 0
	}
	return v, v
}
