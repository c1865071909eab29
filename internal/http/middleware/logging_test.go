package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// swapGlobalLogger points log.Logger at a buffer for the duration of t.
func swapGlobalLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prev := log.Logger
	log.Logger = zerolog.New(buf)
	t.Cleanup(func() { log.Logger = prev })
	return buf
}

// logLines decodes buf as newline-delimited JSON.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/api/communes", func(c *gin.Context) {
		seen = asString(c.Value(requestIDKey))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/communes", nil))
	if _, err := uuid.Parse(seen); err != nil || w.Header().Get(requestIDHeader) != seen {
		t.Fatalf("generated id %q / header %q", seen, w.Header().Get(requestIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/communes", nil)
	req.Header.Set("x-request-id", "edge-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if seen != "edge-42" || w.Header().Get(requestIDHeader) != "edge-42" {
		t.Fatalf("caller id not reused: ctx %q header %q", seen, w.Header().Get(requestIDHeader))
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("before write", func(t *testing.T) {
		buf := swapGlobalLogger(t)
		r := gin.New()
		r.Use(RequestID(), Recovery())
		r.POST("/api/calculate", func(*gin.Context) { panic("division by zero") })

		req := httptest.NewRequest(http.MethodPost, "/api/calculate", nil)
		req.Header.Set(requestIDHeader, "rid-calc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", w.Code)
		}
		var body map[string]string
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "internal_error" || body["request_id"] != "rid-calc" || strings.Contains(w.Body.String(), "division") {
			t.Fatalf("body = %s", w.Body.String())
		}
		lines := logLines(t, buf)
		if len(lines) != 1 || lines[0]["message"] != "panic recovered" ||
			lines[0]["request_id"] != "rid-calc" || lines[0]["panic"] != "division by zero" {
			t.Fatalf("log = %v", lines)
		}
	})

	t.Run("after partial write", func(t *testing.T) {
		buf := swapGlobalLogger(t)
		r := gin.New()
		r.Use(RequestID(), Recovery())
		r.GET("/api/properties", func(c *gin.Context) {
			c.String(http.StatusOK, "[")
			panic("encoder failed")
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/properties", nil))
		if w.Body.String() != "[" {
			t.Fatalf("envelope appended after a partial write: %q", w.Body.String())
		}
		if len(logLines(t, buf)) != 1 {
			t.Fatalf("panic not logged: %s", buf.String())
		}
	})
}

func TestLoggerFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("falls back to global logger", func(t *testing.T) {
		buf := swapGlobalLogger(t)
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		LoggerFrom(c).Info().Msg("no scope")

		lines := logLines(t, buf)
		if len(lines) != 1 || lines[0]["request_id"] != nil {
			t.Fatalf("unexpected fallback output: %v", lines)
		}
	})

	t.Run("request scoped in gin and context", func(t *testing.T) {
		buf := swapGlobalLogger(t)
		r := gin.New()
		r.Use(RequestID(), Identity("demo-user"), RedactingLogger(RedactOptions{}))
		r.GET("/api/portfolio/stats", func(c *gin.Context) {
			LoggerFrom(c).Info().Msg("handler")
			zerolog.Ctx(c.Request.Context()).Info().Msg("service")
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio/stats", nil)
		req.Header.Set(requestIDHeader, "rid-stats")
		r.ServeHTTP(httptest.NewRecorder(), req)

		lines := logLines(t, buf)
		if len(lines) != 3 {
			t.Fatalf("want handler, service and access lines, got %d", len(lines))
		}
		for _, l := range lines {
			if l["request_id"] != "rid-stats" || l["user_id"] != "demo-user" {
				t.Fatalf("line missing request scope: %v", l)
			}
		}
	})
}

func TestTruncateAndAsString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		max  int
		want string
	}{
		{"commune=providencia", 100, "commune=providencia"},
		{"commune=providencia", 7, "commune…"},
		{"commune=providencia", 0, "commune=providencia"},
	} {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q; want %q", tc.in, tc.max, got, tc.want)
		}
	}
	if asString("rid") != "rid" || asString(7) != "" || asString(nil) != "" {
		t.Fatalf("asString mismatch")
	}
}
