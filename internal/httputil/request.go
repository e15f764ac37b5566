// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil builds and sends the POST requests made to the
// conversion service.
package httputil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// BodyError reports that a request body could not be produced, so nothing
// was sent.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string { return e.Err.Error() }

func (e *BodyError) Unwrap() error { return e.Err }

// Body produces the payload and content type of a request.
type Body interface {
	// Open returns the encoded body and its Content-Type header value.
	Open() (io.Reader, string, error)
}

// FormBody encodes fields as application/x-www-form-urlencoded.
type FormBody url.Values

func (f FormBody) Open() (io.Reader, string, error) {
	return strings.NewReader(url.Values(f).Encode()), "application/x-www-form-urlencoded", nil
}

// MultipartFileBody uploads the file at Path under form field Field. Extra
// fields are written after the file part.
type MultipartFileBody struct {
	Field  string
	Path   string
	Fields url.Values
}

func (m MultipartFileBody) Open() (io.Reader, string, error) {
	f, err := os.Open(m.Path)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s: %w", m.Path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile(m.Field, filepath.Base(m.Path))
	if err != nil {
		return nil, "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", m.Path, err)
	}
	for k, vs := range m.Fields {
		for _, v := range vs {
			if err := form.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", k, err)
			}
		}
	}
	if err := form.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, form.FormDataContentType(), nil
}

// RequestOptions are the per-request settings merged over the defaults.
type RequestOptions struct {
	// Query is added to the endpoint's query string, replacing keys that
	// are already present.
	Query url.Values

	// Header holds extra request headers.
	Header http.Header

	// Sink receives the response body. The default discards it.
	Sink io.Writer
}

// RequestOption mutates RequestOptions.
type RequestOption func(opts *RequestOptions)

// WithQuery sets a query parameter on the request URL.
func WithQuery(key, value string) RequestOption {
	return func(opts *RequestOptions) {
		opts.Query.Set(key, value)
	}
}

// WithHeader sets a request header. Empty values are ignored.
func WithHeader(key, value string) RequestOption {
	return func(opts *RequestOptions) {
		if value == "" {
			return
		}
		opts.Header.Set(key, value)
	}
}

// WithSink directs the response body to w.
func WithSink(w io.Writer) RequestOption {
	return func(opts *RequestOptions) {
		opts.Sink = w
	}
}

// NewRequestOptions returns the defaults with funcs applied in order.
func NewRequestOptions(funcs ...RequestOption) *RequestOptions {
	opts := &RequestOptions{
		Query:  url.Values{},
		Header: http.Header{},
		Sink:   io.Discard,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// Post sends body to endpoint and copies the response body into the
// configured sink. A non-2xx status is returned as an error; nothing is
// retried.
func Post(ctx context.Context, client *http.Client, endpoint string, body Body, funcs ...RequestOption) (int64, error) {
	opts := NewRequestOptions(funcs...)

	u, err := url.Parse(endpoint)
	if err != nil {
		return 0, fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	for k, vs := range opts.Query {
		q[k] = vs
	}
	u.RawQuery = q.Encode()

	r, contentType, err := body.Open()
	if err != nil {
		return 0, &BodyError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), r)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	for k, vs := range opts.Header {
		req.Header[k] = vs
	}

	slog.DebugContext(ctx, "posting conversion request",
		slog.String("host", u.Host),
		slog.String("path", u.Path),
		slog.String("query", u.RawQuery),
		slog.String("content_type", contentType),
	)

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("HTTP %d from %s", resp.StatusCode, endpoint)
	}

	n, err := io.Copy(opts.Sink, resp.Body)
	if err != nil {
		return n, fmt.Errorf("reading response: %w", err)
	}

	slog.DebugContext(ctx, "conversion response received", slog.Int64("bytes", n))
	return n, nil
}
