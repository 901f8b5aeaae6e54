package loader

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// Source fetches the raw bytes of a published data document.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	Name() string
}

// FileSource reads documents from a local data directory. This is the
// normal mode when the fetch jobs run in the same process.
type FileSource struct {
	Root string
}

// NewFileSource creates a Source rooted at the given directory.
func NewFileSource(root string) *FileSource {
	return &FileSource{Root: root}
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Fetch(_ context.Context, path string) ([]byte, error) {
	name := filepath.FromSlash(path)
	// Absolute paths (an operator pointing rules_file somewhere fixed)
	// bypass the root.
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.Root, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// HTTPSource reads documents from a remote base URL, for pointing a
// radar instance at another instance's published data directory.
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource creates a Source with optional proxy support.
func NewHTTPSource(baseURL, proxyURL string) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &HTTPSource{client: client}
}

func (s *HTTPSource) Name() string { return "http" }

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, error) {
	resp, err := s.client.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", path, resp.StatusCode())
	}
	return resp.Body(), nil
}
