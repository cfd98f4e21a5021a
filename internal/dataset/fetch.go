package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FetchOptions controls reads from http(s) locations.
type FetchOptions struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Attempts int           `mapstructure:"attempts"`
	Delay    time.Duration `mapstructure:"delay"`
}

// DefaultFetchOptions returns a 10s timeout with 3 attempts spaced 1s apart.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{Timeout: 10 * time.Second, Attempts: 3, Delay: time.Second}
}

// errPermanent marks failures that retrying cannot fix.
var errPermanent = errors.New("permanent failure")

// maxBodySize bounds a remote dataset download.
const maxBodySize = 16 << 20

type fetcher struct {
	client *http.Client
	opts   FetchOptions
	logger *zap.Logger
}

func newFetcher(opts FetchOptions, logger *zap.Logger) *fetcher {
	def := DefaultFetchOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = def.Attempts
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fetcher{client: &http.Client{Timeout: opts.Timeout}, opts: opts, logger: logger}
}

// isRemote reports whether location is an http(s) URL.
func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// extension returns the lower-cased file extension of a path or URL.
func extension(location string) string {
	if isRemote(location) {
		if u, err := url.Parse(location); err == nil {
			return strings.ToLower(path.Ext(u.Path))
		}
	}
	return strings.ToLower(path.Ext(location))
}

// read returns the contents of a local file or remote URL.
func (f *fetcher) read(ctx context.Context, location string) ([]byte, error) {
	if !isRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	var lastErr error
	for attempt := 1; attempt <= f.opts.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data, err := f.get(ctx, location)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, errPermanent) || attempt == f.opts.Attempts {
			break
		}

		wait := f.opts.Delay * time.Duration(attempt)
		f.logger.Warn("dataset fetch failed, retrying",
			zap.String("location", location),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", f.opts.Attempts),
			zap.Duration("delay", wait),
			zap.Error(err),
		)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("fetch %s: %w", location, lastErr)
}

func (f *fetcher) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w: %w", errPermanent, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: status %d", errPermanent, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
