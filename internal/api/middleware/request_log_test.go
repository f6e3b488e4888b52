package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestLog_Levels(t *testing.T) {
	for _, tc := range []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	} {
		var buf bytes.Buffer
		e := echo.New()
		e.Use(RequestLog(zerolog.New(&buf)))
		e.GET("/ping", func(c echo.Context) error {
			return c.NoContent(tc.status)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("status %d: invalid log line %q: %v", tc.status, buf.String(), err)
		}
		if entry["level"] != tc.level {
			t.Errorf("status %d: expected level %s, got %v", tc.status, tc.level, entry["level"])
		}
		if entry["uri"] != "/ping" || entry["status"] != float64(tc.status) {
			t.Errorf("status %d: unexpected entry %v", tc.status, entry)
		}
		if entry["request_id"] != "req-1" {
			t.Errorf("expected request id from header, got %v", entry["request_id"])
		}
	}
}
