package middleware_test

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthaul/internal/config"
	"smarthaul/internal/middleware"
	"smarthaul/internal/middleware/mocks"
	"smarthaul/internal/ratelimit"
)

func newRateLimitedEcho(limiter middleware.ClientLimiter, cfg *config.RateLimitConfig) *echo.Echo {
	return newRateLimitedEchoBehind(nil, limiter, cfg)
}

func newRateLimitedEchoBehind(trustedProxies []string, limiter middleware.ClientLimiter, cfg *config.RateLimitConfig) *echo.Echo {
	e := echo.New()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	extractor, err := middleware.ClientIPExtractor(trustedProxies)
	if err != nil {
		panic(err)
	}
	e.IPExtractor = extractor

	e.Use(middleware.RateLimit(limiter, cfg, logger))
	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return e
}

func doForwardedRequest(e *echo.Echo, peer, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = peer + ":40000"
	req.Header.Set(echo.HeaderXForwardedFor, forwardedFor)
	req.Header.Set(echo.HeaderXRealIP, forwardedFor)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doRequest(e *echo.Echo, ip, bypass string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":12345"
	if bypass != "" {
		req.Header.Set("X-Rate-Limit-Bypass", bypass)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AllowsRequestsUnderLimit(t *testing.T) {
	e := newRateLimitedEcho(ratelimit.New(5), &config.RateLimitConfig{})

	for i := 0; i < 5; i++ {
		rec := doRequest(e, "192.168.1.1", "")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i)
	}
}

func TestRateLimit_Returns429WithCorrectResponse(t *testing.T) {
	e := newRateLimitedEcho(ratelimit.New(1), &config.RateLimitConfig{})

	rec1 := doRequest(e, "192.168.1.3", "")
	require.Equal(t, http.StatusOK, rec1.Code)

	rec2 := doRequest(e, "192.168.1.3", "")
	require.Equal(t, http.StatusTooManyRequests, rec2.Code)
	assert.Equal(t, "60", rec2.Header().Get("Retry-After"))

	var resp struct {
		Error      string `json:"error"`
		RetryAfter int    `json:"retry_after"`
	}
	err := json.Unmarshal(rec2.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "rate limit exceeded", resp.Error)
	assert.Equal(t, 60, resp.RetryAfter)
}

func TestRateLimit_KeysByClientIP(t *testing.T) {
	limiter := mocks.NewMockClientLimiter(t)
	limiter.EXPECT().IsAllowed("192.168.1.4").Return(true).Once()
	limiter.EXPECT().IsAllowed("192.168.1.5").Return(false).Once()

	e := newRateLimitedEcho(limiter, &config.RateLimitConfig{})

	assert.Equal(t, http.StatusOK, doRequest(e, "192.168.1.4", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, "192.168.1.5", "").Code)
}

func TestRateLimit_DifferentIPsHaveSeparateLimits(t *testing.T) {
	e := newRateLimitedEcho(ratelimit.New(1), &config.RateLimitConfig{})

	assert.Equal(t, http.StatusOK, doRequest(e, "192.168.1.4", "").Code, "IP1 first request should succeed")
	assert.Equal(t, http.StatusOK, doRequest(e, "192.168.1.5", "").Code, "IP2 first request should succeed")
}

func TestRateLimit_BypassWithCorrectSecret(t *testing.T) {
	limiter := mocks.NewMockClientLimiter(t)
	e := newRateLimitedEcho(limiter, &config.RateLimitConfig{BypassSecret: "test_secret"})

	for i := 0; i < 10; i++ {
		rec := doRequest(e, "192.168.1.6", "test_secret")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d with bypass should succeed", i)
	}
	limiter.AssertNotCalled(t, "IsAllowed")
}

func TestRateLimit_BypassWithWrongSecret(t *testing.T) {
	e := newRateLimitedEcho(ratelimit.New(1), &config.RateLimitConfig{BypassSecret: "test_secret"})

	doRequest(e, "192.168.1.7", "wrong_secret")
	rec2 := doRequest(e, "192.168.1.7", "wrong_secret")

	assert.Equal(t, http.StatusTooManyRequests, rec2.Code, "wrong secret should not bypass rate limit")
}

func TestRateLimit_BypassDisabledWhenSecretEmpty(t *testing.T) {
	e := newRateLimitedEcho(ratelimit.New(1), &config.RateLimitConfig{})

	doRequest(e, "192.168.1.8", "any_value")
	rec2 := doRequest(e, "192.168.1.8", "any_value")

	assert.Equal(t, http.StatusTooManyRequests, rec2.Code, "bypass should be disabled when secret is empty")
}

func TestRateLimit_ForwardedHeadersFromUntrustedPeerAreIgnored(t *testing.T) {
	limiter := ratelimit.New(1)
	e := newRateLimitedEcho(limiter, &config.RateLimitConfig{})

	admitted := 0
	for i := range 50 {
		rec := doForwardedRequest(e, "203.0.113.7", fmt.Sprintf("198.51.100.%d", i+1))
		if rec.Code == http.StatusOK {
			admitted++
		} else {
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		}
	}

	assert.Equal(t, 1, admitted)
	assert.Equal(t, 1, limiter.Status().ActiveClients)
}

func TestRateLimit_UntrustedPeerBehindConfiguredProxyRange(t *testing.T) {
	limiter := ratelimit.New(1)
	e := newRateLimitedEchoBehind([]string{"10.0.0.0/8"}, limiter, &config.RateLimitConfig{})

	assert.Equal(t, http.StatusOK, doForwardedRequest(e, "203.0.113.7", "198.51.100.1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doForwardedRequest(e, "203.0.113.7", "198.51.100.2").Code)
	assert.Equal(t, 1, limiter.Status().ActiveClients)
}

func TestRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	limiter := mocks.NewMockClientLimiter(t)
	limiter.EXPECT().IsAllowed("198.51.100.1").Return(true).Once()
	limiter.EXPECT().IsAllowed("198.51.100.2").Return(false).Once()

	e := newRateLimitedEchoBehind([]string{"10.0.0.0/8"}, limiter, &config.RateLimitConfig{})

	assert.Equal(t, http.StatusOK, doForwardedRequest(e, "10.0.0.5", "198.51.100.1").Code)
	// A spoofed left-most hop is skipped; the proxy appended the real peer.
	assert.Equal(t, http.StatusTooManyRequests, doForwardedRequest(e, "10.0.0.5", "1.2.3.4, 198.51.100.2").Code)
}

func TestClientIPExtractor_RejectsBadRange(t *testing.T) {
	_, err := middleware.ClientIPExtractor([]string{"10.0.0.1"})
	assert.Error(t, err)
}
