// Package fetch implements the scheduled jobs that pull public filings
// and market indicators from external sources, normalize them, and
// publish them as JSON documents under the data directory.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher is one independent, stateless fetch-and-normalize job.
type Fetcher interface {
	Name() string
	Run(ctx context.Context) error
}

// newClient builds the shared outbound HTTP client shape.
func newClient(proxyURL string) *resty.Client {
	client := resty.New().SetTimeout(30 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return client
}

// writeDocument marshals v and writes it to path, creating parent
// directories as needed.
func writeDocument(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("[INFO] wrote %s (%.1f KB)", path, float64(len(data))/1024)
	return nil
}

// timestamp returns the shared last_updated format.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func f64(v float64) *float64 { return &v }
