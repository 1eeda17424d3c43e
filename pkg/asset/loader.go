// Package asset fetches and decodes the viewer's 3D model off the render thread.
package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/leterax/moonview/pkg/scene"
)

// ModelName selects the model folder under models/
const ModelName = "my_glb_model"

// AssetPath returns the fixed relative path of the model asset
func AssetPath() string {
	return path.Join("models", ModelName, "moon.glb")
}

// Status is the state carried by a load Result
type Status int

const (
	// InProgress reports download progress; it never decides anything
	InProgress Status = iota
	// Loaded carries the decoded model
	Loaded
	// Failed carries the error; there is no retry
	Failed
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is one message from a running load
type Result struct {
	Status Status
	Path   string
	Model  *scene.Model
	Err    error

	LoadedBytes int64
	TotalBytes  int64 // -1 when the size is unknown
}

// Fraction returns the completed share of the download, if the total is known
func (r Result) Fraction() (float64, bool) {
	if r.TotalBytes <= 0 {
		return 0, false
	}
	return float64(r.LoadedBytes) / float64(r.TotalBytes), true
}

// Loader runs single-attempt asynchronous loads and hands results to the render loop
type Loader struct {
	fetcher Fetcher
	log     *slog.Logger
	results chan Result
}

// NewLoader creates a loader reading through the given fetcher
func NewLoader(fetcher Fetcher, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		log:     log,
		results: make(chan Result, 16),
	}
}

// Load starts fetching and decoding path in the background and returns immediately.
// Exactly one Loaded or Failed result follows, preceded by any number of InProgress results.
func (l *Loader) Load(ctx context.Context, path string) {
	l.log.Debug("Loading asset", "path", path)
	go l.run(ctx, path)
}

// Poll returns the next pending result without blocking
func (l *Loader) Poll() (Result, bool) {
	select {
	case res := <-l.results:
		return res, true
	default:
		return Result{}, false
	}
}

func (l *Loader) run(ctx context.Context, path string) {
	model, err := l.fetchAndDecode(ctx, path)
	if err != nil {
		l.results <- Result{Status: Failed, Path: path, Err: err}
		return
	}
	l.results <- Result{Status: Loaded, Path: path, Model: model}
}

func (l *Loader) fetchAndDecode(ctx context.Context, path string) (*scene.Model, error) {
	body, size, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	reader := &progressReader{
		r:     body,
		total: size,
		report: func(loaded, total int64) {
			l.progress(Result{Status: InProgress, Path: path, LoadedBytes: loaded, TotalBytes: total})
		},
	}

	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}

	return Decode(bytes.NewReader(buf.Bytes()), path)
}

// progress is advisory and dropped when the consumer is behind
func (l *Loader) progress(res Result) {
	select {
	case l.results <- res:
	default:
	}
}
