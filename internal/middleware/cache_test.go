package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Set("X-Custom", "v")
	body := []byte(`{"success":true,"hotels":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(payload)
	if !ok {
		t.Fatal("decodePayload rejected its own encoding")
	}
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" || gotHdr.Get("X-Custom") != "v" {
		t.Errorf("headers lost in round trip: %v", gotHdr)
	}
	if !bytes.Equal(gotBody, body) {
		t.Errorf("body = %q, want %q", gotBody, body)
	}
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	for _, bs := range [][]byte{nil, {1, 2, 3}, make([]byte, 8)} {
		if _, _, _, ok := decodePayload(bs); ok && len(bs) < 8 {
			t.Errorf("decodePayload accepted %d-byte payload", len(bs))
		}
	}
	// Header length pointing past the end of the payload.
	bad, _ := encodePayload(200, http.Header{}, nil)
	bad[7] = 0xFF
	if _, _, _, ok := decodePayload(bad); ok {
		t.Error("decodePayload accepted out-of-range header length")
	}
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	newCtx := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/hotels")
		return c
	}
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	same := cacheKeyFrom(cfg, newCtx("/v1/hotels?x=1"))
	if same != cacheKeyFrom(cfg, newCtx("/v1/hotels?x=1")) {
		t.Error("identical requests must map to the same key")
	}
	if same == cacheKeyFrom(cfg, newCtx("/v1/hotels?x=2")) {
		t.Error("route_query strategy must include the query string")
	}

	cfg.KeyStrategy = "route"
	if cacheKeyFrom(cfg, newCtx("/v1/hotels?x=1")) != cacheKeyFrom(cfg, newCtx("/v1/hotels?x=2")) {
		t.Error("route strategy must ignore the query string")
	}
}

func TestCaptureWriterOversizedResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	if _, err := cw.Write([]byte("12345")); err != nil {
		t.Fatal(err)
	}
	if _, err := cw.Write([]byte("67890")); err != nil {
		t.Fatal(err)
	}

	// The client always receives the full response.
	if rec.Body.String() != "1234567890" {
		t.Errorf("client body = %q, want full response", rec.Body)
	}
	// The capture is clipped at the limit and flagged incomplete so the
	// store path never caches a truncated body.
	if cw.buf.String() != "12345678" {
		t.Errorf("captured body = %q, want first 8 bytes", cw.buf.String())
	}
	if cw.size != 10 {
		t.Errorf("size = %d, want 10", cw.size)
	}
	if cw.complete() {
		t.Error("oversized response must be reported incomplete")
	}
}

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 32}
	if _, err := cw.Write([]byte(`{"success":true}`)); err != nil {
		t.Fatal(err)
	}
	if !cw.complete() {
		t.Error("response within the limit must be reported complete")
	}
	if cw.buf.String() != `{"success":true}` {
		t.Errorf("captured body = %q", cw.buf.String())
	}
}

func TestDisabledCachePassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/hotels", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("pass-through broken: %d %q", rec.Code, rec.Body)
	}
	if rec.Header().Get("X-Cache") != "" {
		t.Error("disabled cache must not set X-Cache")
	}
}
