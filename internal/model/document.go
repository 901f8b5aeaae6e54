package model

// Metadata is the envelope every published data document carries.
type Metadata struct {
	LastUpdated string `json:"last_updated"`
	TotalCount  int    `json:"total_count,omitempty"`
}

// DateRange bounds the dates covered by a document.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// CongressMetadata extends Metadata with per-chamber counts.
type CongressMetadata struct {
	Metadata
	HouseCount  int       `json:"house_count"`
	SenateCount int       `json:"senate_count"`
	DateRange   DateRange `json:"date_range"`
}

// CongressTransaction is one disclosed trade by a House or Senate member.
// Numeric fields are pointers: absent is not the same as zero.
type CongressTransaction struct {
	Person          string   `json:"person"`
	Chamber         string   `json:"chamber"`
	Ticker          string   `json:"ticker"`
	Sector          string   `json:"sector"`
	TransactionType string   `json:"transaction_type"`
	AmountRange     string   `json:"amount_range"`
	AmountMin       *float64 `json:"amount_min,omitempty"`
	AmountMax       *float64 `json:"amount_max,omitempty"`
	Date            string   `json:"date"`
	DisclosureDate  string   `json:"disclosure_date,omitempty"`
	Link            string   `json:"link,omitempty"`
}

// CongressDocument is the published political-trades document.
type CongressDocument struct {
	Metadata     CongressMetadata      `json:"metadata"`
	Transactions []CongressTransaction `json:"transactions"`
}

// FundInfo identifies one 13F filer.
type FundInfo struct {
	Name       string  `json:"name"`
	CIK        string  `json:"cik,omitempty"`
	FilingDate string  `json:"filing_date,omitempty"`
	PeriodEnd  string  `json:"period_end,omitempty"`
	TotalValue float64 `json:"total_value,omitempty"`
}

// FundMetadata extends Metadata with filing bookkeeping.
type FundMetadata struct {
	Metadata
	HoldingsCount   int    `json:"holdings_count"`
	AccessionNumber string `json:"accession_number,omitempty"`
}

// Holding is one position reported in a 13F filing.
type Holding struct {
	Ticker       string   `json:"ticker"`
	Name         string   `json:"name"`
	Value        *float64 `json:"value,omitempty"`
	Shares       *float64 `json:"shares,omitempty"`
	PositionType string   `json:"position_type,omitempty"`
	ChangePct    *float64 `json:"change_pct,omitempty"`
}

// FundDocument is the published document for a single fund.
type FundDocument struct {
	FundInfo FundInfo     `json:"fund_info"`
	Metadata FundMetadata `json:"metadata"`
	Holdings []Holding    `json:"holdings"`
}

// InsiderTransaction is one Form 4 transaction.
type InsiderTransaction struct {
	InsiderName      string   `json:"insider_name"`
	InsiderTitle     string   `json:"insider_title"`
	Company          string   `json:"company"`
	Ticker           string   `json:"ticker"`
	TransactionType  string   `json:"transaction_type"`
	Shares           *float64 `json:"shares,omitempty"`
	PricePerShare    *float64 `json:"price_per_share,omitempty"`
	Value            *float64 `json:"value,omitempty"`
	SharesOwnedAfter *float64 `json:"shares_owned_after,omitempty"`
	Date             string   `json:"date"`
	FilingDate       string   `json:"filing_date,omitempty"`
	FormURL          string   `json:"form_url,omitempty"`
}

// InsiderDocument is the published insider-transactions document.
type InsiderDocument struct {
	Metadata     Metadata             `json:"metadata"`
	Transactions []InsiderTransaction `json:"transactions"`
}

// YieldIndicators holds treasury yields and the 2s10s spread.
type YieldIndicators struct {
	US2Y        *float64 `json:"US2Y,omitempty"`
	US10Y       *float64 `json:"US10Y,omitempty"`
	Spread2s10s *float64 `json:"spread_2s10s,omitempty"`
}

// VolatilityIndicators holds volatility gauges.
type VolatilityIndicators struct {
	VIX *float64 `json:"VIX,omitempty"`
}

// CurrencyIndicators holds currency gauges.
type CurrencyIndicators struct {
	DXY *float64 `json:"DXY,omitempty"`
}

// CommodityIndicators holds commodity spot prices.
type CommodityIndicators struct {
	Gold   *float64 `json:"gold,omitempty"`
	Oil    *float64 `json:"oil,omitempty"`
	Copper *float64 `json:"copper,omitempty"`
}

// MacroIndicators groups the current macro readings by category.
type MacroIndicators struct {
	Yields      YieldIndicators      `json:"yields"`
	Volatility  VolatilityIndicators `json:"volatility"`
	Currencies  CurrencyIndicators   `json:"currencies"`
	Commodities CommodityIndicators  `json:"commodities"`
}

// HistoryPoint is one dated value in an indicator's history series.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// MacroDocument is the published macro-indicators document.
type MacroDocument struct {
	Metadata   Metadata                  `json:"metadata"`
	Indicators MacroIndicators           `json:"indicators"`
	History    map[string][]HistoryPoint `json:"history,omitempty"`
}

// FearGreedComponent is one weighted input to the composite index.
type FearGreedComponent struct {
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"`
	Weight     float64 `json:"weight"`
}

// FearGreedIndex is the composite sentiment score on a 0-100 scale.
type FearGreedIndex struct {
	Index          *float64                      `json:"index,omitempty"`
	Classification string                        `json:"classification,omitempty"`
	Signal         string                        `json:"signal,omitempty"`
	Components     map[string]FearGreedComponent `json:"components,omitempty"`
}

// AAIISurvey holds the weekly AAII bull/bear percentages.
type AAIISurvey struct {
	Bullish        *float64 `json:"bullish,omitempty"`
	Neutral        *float64 `json:"neutral,omitempty"`
	Bearish        *float64 `json:"bearish,omitempty"`
	BullBearSpread *float64 `json:"bull_bear_spread,omitempty"`
	Date           string   `json:"date,omitempty"`
	Interpretation string   `json:"interpretation,omitempty"`
}

// SentimentDocument is the published market-sentiment document.
type SentimentDocument struct {
	Metadata  Metadata       `json:"metadata"`
	FearGreed FearGreedIndex `json:"fear_greed"`
	AAII      AAIISurvey     `json:"aaii"`
}

// ETFFlow is one ETF's recent in/outflow figures.
type ETFFlow struct {
	Ticker  string   `json:"ticker"`
	Name    string   `json:"name"`
	Flow1D  *float64 `json:"flow_1d,omitempty"`
	Flow5D  *float64 `json:"flow_5d,omitempty"`
	Flow30D *float64 `json:"flow_30d,omitempty"`
	AUM     *float64 `json:"aum,omitempty"`
	Date    string   `json:"date"`
}

// OptionsActivity is one ticker's option volume snapshot.
type OptionsActivity struct {
	Ticker        string   `json:"ticker"`
	TotalVolume   *float64 `json:"total_volume,omitempty"`
	CallVolume    *float64 `json:"call_volume,omitempty"`
	PutVolume     *float64 `json:"put_volume,omitempty"`
	PutCallRatio  *float64 `json:"put_call_ratio,omitempty"`
	TotalOI       *float64 `json:"total_oi,omitempty"`
	AvgVolume30D  *float64 `json:"avg_volume_30d,omitempty"`
	VolumeAnomaly bool     `json:"volume_anomaly"`
	Date          string   `json:"date"`
}

// FlowsMetadata extends Metadata with per-section counts.
type FlowsMetadata struct {
	Metadata
	ETFCount     int `json:"etf_count"`
	OptionsCount int `json:"options_count"`
}

// FlowsDocument is the published capital-flows document.
type FlowsDocument struct {
	Metadata FlowsMetadata     `json:"metadata"`
	ETFFlows []ETFFlow         `json:"etf_flows"`
	Options  []OptionsActivity `json:"options"`
}
