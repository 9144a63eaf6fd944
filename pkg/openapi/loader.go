package openapi

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

// LoaderOptions configures how a Loader resolves sources. Loading stays
// offline-first: HTTP sources are disabled unless a client is injected or the
// fallback is switched on.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem for
	// SourceKindFS sources.
	FileSystem fs.FS

	// HTTPClient allows callers to inject custom HTTP behaviour (timeouts,
	// proxies). Nil means HTTP sources are disabled unless
	// AllowHTTPFallback is true.
	HTTPClient *http.Client

	// AllowHTTPFallback toggles a default HTTP client when none is
	// supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote OpenAPI documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// Loader fetches OpenAPI documents by delegating to file, fs.FS, or HTTP
// strategies depending on the source kind.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// NewLoader constructs a Loader from the supplied options.
func NewLoader(options ...LoaderOption) *Loader {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	timeout := cfg.RequestTimeout

	var httpClient *http.Client
	switch {
	case cfg.HTTPClient != nil:
		clone := *cfg.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case cfg.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        cfg.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src Source) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case SourceKindURL:
		if !l.allowHTTP {
			return Document{}, errors.New("openapi loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.Newf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return Document{}, err
	}

	return NewDocument(src, data)
}

func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(filesystem, name)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if client == nil {
		return nil, errors.New("openapi loader: http client is not configured")
	}
	if url == "" {
		return nil, errors.New("openapi loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Newf("openapi loader: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
