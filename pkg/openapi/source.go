package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// ReadOption configures Read.
type ReadOption func(*reader)

type reader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

// FromFS resolves relative locations inside files instead of the working
// directory.
func FromFS(files fs.FS) ReadOption {
	return func(r *reader) {
		r.files = files
	}
}

// WithHTTPClient sets the client used for http and https locations.
func WithHTTPClient(client *http.Client) ReadOption {
	return func(r *reader) {
		r.client = client
	}
}

// WithTimeout bounds remote fetches.
func WithTimeout(timeout time.Duration) ReadOption {
	return func(r *reader) {
		r.timeout = timeout
	}
}

// Read loads a document from a file path, an fs.FS entry or an http(s) URL.
func Read(ctx context.Context, location string, opts ...ReadOption) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: document location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := reader{}
	for _, opt := range opts {
		if opt != nil {
			opt(&r)
		}
	}

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return r.fetch(ctx, location)
	case r.files != nil:
		data, err := fs.ReadFile(r.files, location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	default:
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("openapi: read %s: %w", location, err)
		}
		return data, nil
	}
}

func (r reader) fetch(ctx context.Context, location string) ([]byte, error) {
	client := r.client
	if client == nil {
		client = http.DefaultClient
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read body: %w", err)
	}
	return data, nil
}
