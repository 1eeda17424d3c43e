package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ErrStatus is returned when an HTTP asset request answers with a non-2xx status
var ErrStatus = errors.New("unexpected response status")

// Fetcher opens an asset by its slash-separated relative path.
// The returned size is -1 when unknown.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (io.ReadCloser, int64, error)
}

// FileFetcher reads assets from a directory on disk
type FileFetcher struct {
	Root string
}

// Fetch opens Root/path
func (f FileFetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	file, err := os.Open(filepath.Join(f.Root, filepath.FromSlash(path)))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open asset: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to stat asset: %w", err)
	}

	return file, info.Size(), nil
}

// HTTPFetcher downloads assets with a plain GET relative to BaseURL
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// Fetch issues GET BaseURL/path
func (f HTTPFetcher) Fetch(ctx context.Context, path string) (io.ReadCloser, int64, error) {
	target, err := url.JoinPath(f.BaseURL, path)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid asset url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch asset: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: %s %s", ErrStatus, target, resp.Status)
	}

	return resp.Body, resp.ContentLength, nil
}

// progressReader reports the running byte count after every read
type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	report func(loaded, total int64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.loaded += int64(n)
		p.report(p.loaded, p.total)
	}
	return n, err
}
