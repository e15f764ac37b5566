// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitTransport spaces out requests by waiting on a token bucket
// before handing each one to Base. If the request context ends while
// waiting, the context error is returned and nothing is sent.
type RateLimitTransport struct {
	Base    http.RoundTripper
	limiter *rate.Limiter
}

// NewRateLimitTransport allows one request per interval with bursts of up
// to maxBurst. A nil base uses http.DefaultTransport.
func NewRateLimitTransport(base http.RoundTripper, interval time.Duration, maxBurst int) *RateLimitTransport {
	if maxBurst < 1 {
		maxBurst = 1
	}
	return &RateLimitTransport{
		Base:    base,
		limiter: rate.NewLimiter(rate.Every(interval), maxBurst),
	}
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

var _ http.RoundTripper = &RateLimitTransport{}
