package msword2image

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/msword2image/internal/httputil"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, DefaultEndpoint, opts.Endpoint)
	assert.NotNil(t, opts.HTTPClient)
	assert.Empty(t, opts.UserAgent)
}

func TestWithRateLimit(t *testing.T) {
	base := &http.Client{Timeout: time.Second}

	opts := NewOptions(WithHTTPClient(base), WithRateLimit(time.Second, 2))
	assert.NotSame(t, base, opts.HTTPClient, "the caller's client must not be modified")
	assert.Nil(t, base.Transport)
	assert.Equal(t, time.Second, opts.HTTPClient.Timeout)
	assert.IsType(t, &httputil.RateLimitTransport{}, opts.HTTPClient.Transport)
}

func TestWithRateLimit_Disabled(t *testing.T) {
	base := &http.Client{}

	opts := NewOptions(WithHTTPClient(base), WithRateLimit(0, 1))
	assert.Same(t, base, opts.HTTPClient)

	opts = NewOptions(WithHTTPClient(nil), WithRateLimit(time.Second, 1))
	assert.Nil(t, opts.HTTPClient)
}
