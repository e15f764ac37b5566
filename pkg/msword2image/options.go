package msword2image

import (
	"net/http"
	"time"

	"github.com/pdiddy/msword2image/internal/httputil"
)

// DefaultEndpoint is the conversion service URL.
const DefaultEndpoint = "http://msword2image.com/convert"

type Options struct {
	Endpoint   string
	HTTPClient *http.Client
	UserAgent  string
}

type OptionFunc func(opts *Options)

// WithEndpoint overrides the conversion URL.
func WithEndpoint(endpoint string) OptionFunc {
	return func(opts *Options) {
		opts.Endpoint = endpoint
	}
}

// WithHTTPClient replaces the HTTP client. Passing nil leaves the converter
// without one, and every conversion then fails with ErrNoHTTPClient.
func WithHTTPClient(client *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = client
	}
}

// WithUserAgent sets the User-Agent header on conversion requests.
func WithUserAgent(ua string) OptionFunc {
	return func(opts *Options) {
		opts.UserAgent = ua
	}
}

// WithRateLimit wraps the current client's transport so that requests from
// this converter are at least interval apart, allowing bursts of maxBurst.
// Apply it after WithHTTPClient.
func WithRateLimit(interval time.Duration, maxBurst int) OptionFunc {
	return func(opts *Options) {
		if opts.HTTPClient == nil || interval <= 0 {
			return
		}
		client := *opts.HTTPClient
		client.Transport = httputil.NewRateLimitTransport(client.Transport, interval, maxBurst)
		opts.HTTPClient = &client
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
