package loader

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

// countingSource records how many times each path is fetched.
type countingSource struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls map[string]int
}

func newCountingSource(docs map[string][]byte) *countingSource {
	return &countingSource{docs: docs, calls: make(map[string]int)}
}

func (s *countingSource) Fetch(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	s.calls[path]++
	s.mu.Unlock()
	data, ok := s.docs[path]
	if !ok {
		return nil, fmt.Errorf("no document at %s", path)
	}
	return data, nil
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func testDocs() map[string][]byte {
	return map[string][]byte{
		PathCongress:      []byte(`{"metadata": {"total_count": 1}, "transactions": [{"person": "A", "ticker": "X"}]}`),
		PathInsiders:      []byte(`{"metadata": {"total_count": 0}, "transactions": []}`),
		PathMacro:         []byte(`{"indicators": {"yields": {"US10Y": 4.2}}}`),
		PathFlows:         []byte(`{"etf_flows": []}`),
		PathSentiment:     []byte(`{"fear_greed": {"index": 55}}`),
		FundPath("alpha"): []byte(`{"fund_info": {"name": "Alpha Fund"}, "holdings": []}`),
		FundPath("beta"):  []byte(`{"fund_info": {"name": "Beta Fund"}, "holdings": []}`),
	}
}

func TestLoader_Memoization(t *testing.T) {
	src := newCountingSource(testDocs())
	l := New(src, nil)
	ctx := context.Background()

	if doc := l.Congress(ctx); doc == nil {
		t.Fatal("expected congress document")
	}
	if doc := l.Congress(ctx); doc == nil {
		t.Fatal("expected congress document on second load")
	}
	if got := src.count(PathCongress); got != 1 {
		t.Errorf("expected exactly 1 source fetch, got %d", got)
	}
}

func TestLoader_FailuresAreNotMemoized(t *testing.T) {
	src := newCountingSource(map[string][]byte{})
	l := New(src, nil)
	ctx := context.Background()

	if doc := l.Macro(ctx); doc != nil {
		t.Fatal("expected nil document for missing path")
	}
	l.Macro(ctx)
	if got := src.count(PathMacro); got != 2 {
		t.Errorf("failed loads should retry the source, got %d fetches", got)
	}
}

func TestLoadAll_PartialFailure(t *testing.T) {
	docs := testDocs()
	delete(docs, PathInsiders)
	src := newCountingSource(docs)
	l := New(src, []string{"alpha", "beta"})

	snap := l.LoadAll(context.Background())
	if snap == nil {
		t.Fatal("LoadAll must never return nil")
	}
	if snap.Insiders != nil {
		t.Error("failed domain should be nil")
	}
	if snap.Congress == nil || snap.Macro == nil || snap.Flows == nil || snap.Sentiment == nil {
		t.Error("unrelated domains should still load")
	}
	if len(snap.Funds) != 2 {
		t.Errorf("expected 2 funds, got %d", len(snap.Funds))
	}
	if snap.LoadedAt.IsZero() {
		t.Error("LoadedAt should be stamped")
	}
}

func TestFunds_FailedFundAbsent(t *testing.T) {
	docs := testDocs()
	delete(docs, FundPath("beta"))
	src := newCountingSource(docs)
	l := New(src, []string{"alpha", "beta"})

	funds := l.Funds(context.Background())
	if len(funds) != 1 {
		t.Fatalf("expected 1 fund, got %d", len(funds))
	}
	if _, ok := funds["alpha"]; !ok {
		t.Error("alpha should be present")
	}
	if _, ok := funds["beta"]; ok {
		t.Error("failed fund must be absent from the map, not nil-valued")
	}
}

func TestRefresh_DropsMemo(t *testing.T) {
	src := newCountingSource(testDocs())
	l := New(src, []string{"alpha"})
	ctx := context.Background()

	l.LoadAll(ctx)
	if got := src.count(PathCongress); got != 1 {
		t.Fatalf("expected 1 fetch after first load, got %d", got)
	}

	l.LoadAll(ctx)
	if got := src.count(PathCongress); got != 1 {
		t.Fatalf("second LoadAll should hit the memo, got %d fetches", got)
	}

	l.Refresh(ctx)
	if got := src.count(PathCongress); got != 2 {
		t.Errorf("Refresh should refetch, got %d fetches", got)
	}
}
