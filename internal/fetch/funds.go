package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-resty/resty/v2"

	"MarketRadar/internal/model"
)

// Fund identifies one 13F filer to track.
type Fund struct {
	Slug string
	CIK  string
	Name string
}

// FundsFetcher pulls the latest 13F-HR filing metadata for each
// priority fund from SEC EDGAR and publishes one document per fund.
type FundsFetcher struct {
	client  *resty.Client
	funds   []Fund
	dataDir string
}

const secSubmissionsBase = "https://data.sec.gov/submissions/"

// NewFundsFetcher creates the 13F fetch job. The SEC requires a
// descriptive User-Agent on every request.
func NewFundsFetcher(funds []Fund, userAgent, dataDir, proxyURL string) *FundsFetcher {
	client := newClient(proxyURL).SetHeader("User-Agent", userAgent)
	return &FundsFetcher{
		client:  client,
		funds:   funds,
		dataDir: dataDir,
	}
}

func (f *FundsFetcher) Name() string { return "funds_13f" }

// secSubmissions is the slice of the EDGAR submissions response we use:
// parallel arrays of recent filings.
type secSubmissions struct {
	Filings struct {
		Recent struct {
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			AccessionNumber []string `json:"accessionNumber"`
		} `json:"recent"`
	} `json:"filings"`
}

// Run fetches every priority fund; a failed fund is skipped, not fatal,
// and its previously published document stays in place.
func (f *FundsFetcher) Run(ctx context.Context) error {
	fetched := 0
	for _, fund := range f.funds {
		doc, err := f.fetchFund(ctx, fund)
		if err != nil {
			log.Printf("[WARN] fetch 13F for %s: %v", fund.Name, err)
			continue
		}
		outPath := filepath.Join(f.dataDir, "funds", fund.Slug+".json")
		if err := writeDocument(outPath, doc); err != nil {
			log.Printf("[ERROR] write 13F for %s: %v", fund.Name, err)
			continue
		}
		fetched++
	}
	if fetched == 0 {
		return fmt.Errorf("no fund documents fetched (%d configured)", len(f.funds))
	}
	log.Printf("[INFO] fetched 13F data for %d/%d funds", fetched, len(f.funds))
	return nil
}

func (f *FundsFetcher) fetchFund(ctx context.Context, fund Fund) (*model.FundDocument, error) {
	url := fmt.Sprintf("%sCIK%010s.json", secSubmissionsBase, fund.CIK)
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	var sub secSubmissions
	if err := json.Unmarshal(resp.Body(), &sub); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	recent := sub.Filings.Recent
	idx := -1
	for i, form := range recent.Form {
		if form == "13F-HR" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no 13F-HR filings")
	}

	doc := &model.FundDocument{
		FundInfo: model.FundInfo{
			Name: fund.Name,
			CIK:  fund.CIK,
		},
		Metadata: model.FundMetadata{
			Metadata: model.Metadata{LastUpdated: timestamp()},
		},
		// TODO: fetch the filing's information table XML and parse the
		// actual holdings; the filing metadata alone ships for now.
		Holdings: []model.Holding{},
	}
	if idx < len(recent.FilingDate) {
		doc.FundInfo.FilingDate = recent.FilingDate[idx]
	}
	if idx < len(recent.ReportDate) {
		doc.FundInfo.PeriodEnd = recent.ReportDate[idx]
	}
	if idx < len(recent.AccessionNumber) {
		doc.Metadata.AccessionNumber = recent.AccessionNumber[idx]
	}
	return doc, nil
}
