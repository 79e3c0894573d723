package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRealIP_XForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	assert.Equal(t, "1.2.3.4", realIP(req))
}

func TestRealIP_XRealIP_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-Ip", "9.10.11.12")
	assert.Equal(t, "9.10.11.12", realIP(req))
}

func TestRealIP_RemoteAddr_Fallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:54321"
	assert.Equal(t, "192.168.1.1", realIP(req))
}

func TestRealIP_XForwardedFor_TakesPrecedenceOverXRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.1.1.1")
	req.Header.Set("X-Real-Ip", "2.2.2.2")
	assert.Equal(t, "1.1.1.1", realIP(req))
}

func doLimited(rl *RateLimiter, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Real-Ip", ip)
	rr := httptest.NewRecorder()
	rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rr, req)
	return rr.Code
}

// Three OTP requests per minute are allowed; the fourth inside the window
// is rejected.
func TestLimit_FourthRequestRejected(t *testing.T) {
	rl := NewRateLimiter(rate.Every(20*time.Second), 3, "Too many OTP requests. Please wait a minute before requesting again.")

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doLimited(rl, "1.2.3.4"))
	}
	assert.Equal(t, http.StatusTooManyRequests, doLimited(rl, "1.2.3.4"))
}

func TestLimit_PerIPIndependence(t *testing.T) {
	rl := NewRateLimiter(rate.Every(20*time.Second), 1, "slow down")

	assert.Equal(t, http.StatusOK, doLimited(rl, "1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, doLimited(rl, "1.1.1.1"))
	assert.Equal(t, http.StatusOK, doLimited(rl, "2.2.2.2"))
}
