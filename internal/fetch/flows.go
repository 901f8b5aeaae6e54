package fetch

import (
	"context"
	"path/filepath"
	"time"

	"MarketRadar/internal/model"
)

// FlowsFetcher publishes the capital-flows document (ETF in/outflows
// and options volume). The upstream sources are paid APIs, so
// representative sample data keeps the contract exercised until one is
// licensed.
type FlowsFetcher struct {
	outPath string
}

// NewFlowsFetcher creates the capital-flows fetch job.
func NewFlowsFetcher(dataDir string) *FlowsFetcher {
	return &FlowsFetcher{
		outPath: filepath.Join(dataDir, "flows", "latest.json"),
	}
}

func (f *FlowsFetcher) Name() string { return "flows" }

// Run publishes the document.
func (f *FlowsFetcher) Run(_ context.Context) error {
	today := time.Now().UTC().Format("2006-01-02")
	etfFlows := sampleETFFlows(today)
	options := sampleOptions(today)

	doc := model.FlowsDocument{
		Metadata: model.FlowsMetadata{
			Metadata:     model.Metadata{LastUpdated: timestamp()},
			ETFCount:     len(etfFlows),
			OptionsCount: len(options),
		},
		ETFFlows: etfFlows,
		Options:  options,
	}
	return writeDocument(f.outPath, doc)
}

func sampleETFFlows(date string) []model.ETFFlow {
	return []model.ETFFlow{
		{
			Ticker:  "SPY",
			Name:    "SPDR S&P 500 ETF",
			Flow1D:  f64(-250000000),
			Flow5D:  f64(-1200000000),
			Flow30D: f64(3500000000),
			AUM:     f64(450000000000),
			Date:    date,
		},
		{
			Ticker:  "QQQ",
			Name:    "Invesco QQQ Trust",
			Flow1D:  f64(150000000),
			Flow5D:  f64(800000000),
			Flow30D: f64(5200000000),
			AUM:     f64(250000000000),
			Date:    date,
		},
		{
			Ticker:  "IWM",
			Name:    "iShares Russell 2000 ETF",
			Flow1D:  f64(-50000000),
			Flow5D:  f64(-200000000),
			Flow30D: f64(-1500000000),
			AUM:     f64(65000000000),
			Date:    date,
		},
	}
}

func sampleOptions(date string) []model.OptionsActivity {
	return []model.OptionsActivity{
		{
			Ticker:        "SPY",
			TotalVolume:   f64(8500000),
			CallVolume:    f64(5000000),
			PutVolume:     f64(3500000),
			PutCallRatio:  f64(0.70),
			TotalOI:       f64(15000000),
			AvgVolume30D:  f64(6500000),
			VolumeAnomaly: true,
			Date:          date,
		},
		{
			Ticker:        "AAPL",
			TotalVolume:   f64(1200000),
			CallVolume:    f64(800000),
			PutVolume:     f64(400000),
			PutCallRatio:  f64(0.50),
			TotalOI:       f64(2500000),
			AvgVolume30D:  f64(950000),
			VolumeAnomaly: true,
			Date:          date,
		},
		{
			Ticker:        "TSLA",
			TotalVolume:   f64(2000000),
			CallVolume:    f64(1400000),
			PutVolume:     f64(600000),
			PutCallRatio:  f64(0.43),
			TotalOI:       f64(3200000),
			AvgVolume30D:  f64(1800000),
			VolumeAnomaly: false,
			Date:          date,
		},
	}
}
