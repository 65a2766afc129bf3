package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRecovery_CatchesPanic(t *testing.T) {
	h := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
}

func TestRequestLogging_SetsCorrelationHeader(t *testing.T) {
	h := RequestLogging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogging_PropagatesProvidedCorrelationID(t *testing.T) {
	h := RequestLogging(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Correlation-ID", "fixed-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Correlation-ID"))
}

func TestAuth_MissingHeader(t *testing.T) {
	h := Auth(func(string) (*Claims, error) {
		return &Claims{SellerID: "s1"}, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	h := Auth(func(string) (*Claims, error) {
		return nil, errors.New("bad token")
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InjectsClaims(t *testing.T) {
	var gotSeller, gotEmail string
	h := Auth(func(token string) (*Claims, error) {
		require.Equal(t, "tok", token)
		return &Claims{SellerID: "seller-1", Email: "g@example.com"}, nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSeller = SellerIDFromContext(r.Context())
		gotEmail = EmailFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer tok")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "seller-1", gotSeller)
	assert.Equal(t, "g@example.com", gotEmail)
}

func TestRateLimit_AllowsWithinBurst(t *testing.T) {
	h := RateLimit(1, 2, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("POST", "/draft/analyze", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimit_KeysAreIndependent(t *testing.T) {
	h := RateLimit(1, 1, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := httptest.NewRequest("POST", "/draft/analyze", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	second := httptest.NewRequest("POST", "/draft/analyze", nil)
	second.RemoteAddr = "10.0.0.2:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCallerStore_Cleanup(t *testing.T) {
	s := newCallerStore(1, 1, time.Minute)
	base := time.Now()
	s.nowFunc = func() time.Time { return base }

	s.get("a")
	s.nowFunc = func() time.Time { return base.Add(2 * time.Minute) }
	s.cleanup()

	assert.Zero(t, s.len())
}
