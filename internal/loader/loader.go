package loader

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"MarketRadar/internal/model"
)

// Resource paths, relative to the data root. These mirror where the
// fetch jobs publish each domain's document.
const (
	PathCongress  = "congress/all.json"
	PathInsiders  = "insiders/latest.json"
	PathMacro     = "macro/indicators.json"
	PathFlows     = "flows/latest.json"
	PathSentiment = "sentiment/latest.json"
)

// FundPath returns the resource path for one fund's document.
func FundPath(slug string) string {
	return "funds/" + slug + ".json"
}

// Snapshot is the composite per-domain view of all loaded documents.
// A nil field means that domain's data was unavailable this pass;
// consumers render/evaluate nothing for it and carry on.
type Snapshot struct {
	Congress  *model.CongressDocument
	Funds     map[string]*model.FundDocument
	Insiders  *model.InsiderDocument
	Macro     *model.MacroDocument
	Flows     *model.FlowsDocument
	Sentiment *model.SentimentDocument
	LoadedAt  time.Time
}

// Loader reads and caches the published data documents for one session.
// Each Loader owns its memo; independent sessions never share state.
type Loader struct {
	source    Source
	fundSlugs []string

	mu   sync.Mutex
	memo map[string][]byte
}

// New creates a Loader over the given source. fundSlugs is the fixed
// set of fund identifiers to include in the secondary fan-out.
func New(source Source, fundSlugs []string) *Loader {
	return &Loader{
		source:    source,
		fundSlugs: fundSlugs,
		memo:      make(map[string][]byte),
	}
}

// fetch returns the memoized bytes for path, fetching on first request.
func (l *Loader) fetch(ctx context.Context, path string) ([]byte, error) {
	l.mu.Lock()
	data, ok := l.memo[path]
	l.mu.Unlock()
	if ok {
		return data, nil
	}

	data, err := l.source.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.memo[path] = data
	l.mu.Unlock()
	return data, nil
}

// load decodes one document, reporting failure instead of raising it.
func (l *Loader) load(ctx context.Context, path string, v any) bool {
	data, err := l.fetch(ctx, path)
	if err != nil {
		log.Printf("[WARN] load %s: %v", path, err)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("[WARN] decode %s: %v", path, err)
		return false
	}
	return true
}

// Congress loads the political-trades document, or nil if unavailable.
func (l *Loader) Congress(ctx context.Context) *model.CongressDocument {
	doc := &model.CongressDocument{}
	if !l.load(ctx, PathCongress, doc) {
		return nil
	}
	return doc
}

// Insiders loads the insider-transactions document, or nil if unavailable.
func (l *Loader) Insiders(ctx context.Context) *model.InsiderDocument {
	doc := &model.InsiderDocument{}
	if !l.load(ctx, PathInsiders, doc) {
		return nil
	}
	return doc
}

// Macro loads the macro-indicators document, or nil if unavailable.
func (l *Loader) Macro(ctx context.Context) *model.MacroDocument {
	doc := &model.MacroDocument{}
	if !l.load(ctx, PathMacro, doc) {
		return nil
	}
	return doc
}

// Flows loads the capital-flows document, or nil if unavailable.
func (l *Loader) Flows(ctx context.Context) *model.FlowsDocument {
	doc := &model.FlowsDocument{}
	if !l.load(ctx, PathFlows, doc) {
		return nil
	}
	return doc
}

// Sentiment loads the market-sentiment document, or nil if unavailable.
func (l *Loader) Sentiment(ctx context.Context) *model.SentimentDocument {
	doc := &model.SentimentDocument{}
	if !l.load(ctx, PathSentiment, doc) {
		return nil
	}
	return doc
}

// Fund loads a single fund document, or nil if unavailable.
func (l *Loader) Fund(ctx context.Context, slug string) *model.FundDocument {
	doc := &model.FundDocument{}
	if !l.load(ctx, FundPath(slug), doc) {
		return nil
	}
	return doc
}

// Funds fans out one load per configured fund and merges the results.
// A fund whose load fails is simply absent from the map.
func (l *Loader) Funds(ctx context.Context) map[string]*model.FundDocument {
	funds := make(map[string]*model.FundDocument, len(l.fundSlugs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, slug := range l.fundSlugs {
		wg.Add(1)
		go func(slug string) {
			defer wg.Done()
			if doc := l.Fund(ctx, slug); doc != nil {
				mu.Lock()
				funds[slug] = doc
				mu.Unlock()
			}
		}(slug)
	}
	wg.Wait()

	return funds
}

// LoadAll loads every domain concurrently and waits for all of them to
// settle. Partial failure in one domain never blocks the others; the
// returned Snapshot is always non-nil.
func (l *Loader) LoadAll(ctx context.Context) *Snapshot {
	snap := &Snapshot{}

	var wg sync.WaitGroup
	wg.Add(6)
	go func() { defer wg.Done(); snap.Congress = l.Congress(ctx) }()
	go func() { defer wg.Done(); snap.Funds = l.Funds(ctx) }()
	go func() { defer wg.Done(); snap.Insiders = l.Insiders(ctx) }()
	go func() { defer wg.Done(); snap.Macro = l.Macro(ctx) }()
	go func() { defer wg.Done(); snap.Flows = l.Flows(ctx) }()
	go func() { defer wg.Done(); snap.Sentiment = l.Sentiment(ctx) }()
	wg.Wait()

	snap.LoadedAt = time.Now()
	return snap
}

// Refresh drops the memo and loads everything fresh.
func (l *Loader) Refresh(ctx context.Context) *Snapshot {
	l.Invalidate()
	return l.LoadAll(ctx)
}

// Invalidate clears the memo so the next load hits the source again.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.memo = make(map[string][]byte)
	l.mu.Unlock()
}
