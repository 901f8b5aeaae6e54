package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"MarketRadar/internal/model"
)

// MacroFetcher pulls yields, volatility, currency, and commodity
// readings from the Yahoo Finance chart API.
type MacroFetcher struct {
	client  *resty.Client
	outPath string
}

// NewMacroFetcher creates the macro-indicators fetch job.
func NewMacroFetcher(dataDir, proxyURL string) *MacroFetcher {
	client := newClient(proxyURL).SetHeader("User-Agent", "Mozilla/5.0")
	return &MacroFetcher{
		client:  client,
		outPath: filepath.Join(dataDir, "macro", "indicators.json"),
	}
}

func (f *MacroFetcher) Name() string { return "macro" }

// macroSymbols maps Yahoo tickers to published indicator names.
// Order is fixed so runs are deterministic.
var macroSymbols = []struct {
	Symbol string
	Name   string
}{
	{"^IRX", "US2Y"},
	{"^TNX", "US10Y"},
	{"DX-Y.NYB", "DXY"},
	{"^VIX", "VIX"},
	{"GC=F", "gold"},
	{"CL=F", "oil"},
	{"HG=F", "copper"},
}

const historyDays = 90

// Run fetches each symbol's quote and history. A failed symbol leaves
// its indicator absent; the document publishes as long as anything
// came back.
func (f *MacroFetcher) Run(ctx context.Context) error {
	doc := model.MacroDocument{
		Metadata: model.Metadata{LastUpdated: timestamp()},
		History:  make(map[string][]model.HistoryPoint),
	}

	fetched := 0
	for _, s := range macroSymbols {
		price, err := f.fetchQuote(ctx, s.Symbol)
		if err != nil {
			log.Printf("[WARN] fetch %s (%s): %v", s.Name, s.Symbol, err)
		} else {
			categorize(&doc.Indicators, s.Name, price)
			fetched++
		}

		history, err := f.fetchHistory(ctx, s.Symbol, historyDays)
		if err != nil {
			log.Printf("[WARN] fetch %s history: %v", s.Name, err)
		} else if len(history) > 0 {
			doc.History[s.Name] = history
		}
	}
	if fetched == 0 {
		return fmt.Errorf("no macro indicators fetched")
	}

	yields := &doc.Indicators.Yields
	if yields.US2Y != nil && yields.US10Y != nil {
		yields.Spread2s10s = f64(*yields.US10Y - *yields.US2Y)
		log.Printf("[INFO] 2s10s spread: %.4f", *yields.Spread2s10s)
	}

	return writeDocument(f.outPath, doc)
}

func categorize(ind *model.MacroIndicators, name string, price float64) {
	switch name {
	case "US2Y":
		ind.Yields.US2Y = f64(price)
	case "US10Y":
		ind.Yields.US10Y = f64(price)
	case "DXY":
		ind.Currencies.DXY = f64(price)
	case "VIX":
		ind.Volatility.VIX = f64(price)
	case "gold":
		ind.Commodities.Gold = f64(price)
	case "oil":
		ind.Commodities.Oil = f64(price)
	case "copper":
		ind.Commodities.Copper = f64(price)
	}
}

// yahooChart is the response shape of the Yahoo v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (f *MacroFetcher) fetchChart(ctx context.Context, symbol string, params map[string]string) (*yahooChart, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("https://query1.finance.yahoo.com/v8/finance/chart/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}

	chart := &yahooChart{}
	if err := json.Unmarshal(resp.Body(), chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return chart, nil
}

func (f *MacroFetcher) fetchQuote(ctx context.Context, symbol string) (float64, error) {
	chart, err := f.fetchChart(ctx, symbol, map[string]string{
		"range":    "1d",
		"interval": "1d",
	})
	if err != nil {
		return 0, err
	}
	price := chart.Chart.Result[0].Meta.RegularMarketPrice
	if price == 0 {
		return 0, fmt.Errorf("yahoo: no price for %s", symbol)
	}
	return price, nil
}

func (f *MacroFetcher) fetchHistory(ctx context.Context, symbol string, days int) ([]model.HistoryPoint, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	chart, err := f.fetchChart(ctx, symbol, map[string]string{
		"period1":  fmt.Sprintf("%d", start.Unix()),
		"period2":  fmt.Sprintf("%d", end.Unix()),
		"interval": "1d",
	})
	if err != nil {
		return nil, err
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]model.HistoryPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // null bars (holidays etc.)
		}
		points = append(points, model.HistoryPoint{
			Date:  time.Unix(ts, 0).UTC().Format("2006-01-02"),
			Value: *closes[i],
		})
	}
	return points, nil
}
