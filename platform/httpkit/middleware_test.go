package httpkit

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"leadcrm_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(captured *string) *gin.Engine {
		engine := gin.New()
		engine.Use(RequestID())
		engine.GET("/", func(c *gin.Context) {
			*captured, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("generates an id when none is provided", func(t *testing.T) {
		var ctxID string
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		newEngine(&ctxID).ServeHTTP(rec, req)

		headerID := rec.Header().Get("X-Request-ID")
		if headerID == "" {
			t.Fatal("response must carry a request id")
		}
		if ctxID != headerID {
			t.Fatalf("context id %q must match response header %q", ctxID, headerID)
		}
	})

	t.Run("reuses an incoming id", func(t *testing.T) {
		var ctxID string
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-id")

		newEngine(&ctxID).ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") != "upstream-id" {
			t.Fatalf("incoming id must be echoed, got %q", rec.Header().Get("X-Request-ID"))
		}
		if ctxID != "upstream-id" {
			t.Fatalf("incoming id must reach the request context, got %q", ctxID)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer abc123", "abc123", true},
		{"missing prefix", "abc123", "", false},
		{"empty header", "", "", false},
		{"prefix only", "Bearer ", "", false},
		{"prefix with spaces", "Bearer    ", "", false},
		{"wrong scheme", "Basic abc123", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extractBearerToken(tc.header)
			if got != tc.want || ok != tc.ok {
				t.Fatalf("extractBearerToken(%q) = (%q, %v), want (%q, %v)", tc.header, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestExtractRoles(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{"nil", nil, []string{}},
		{"string slice", []string{"admin", "agent"}, []string{"admin", "agent"}},
		{"interface slice from json", []interface{}{"admin", "agent"}, []string{"admin", "agent"}},
		{"mixed interface slice drops non-strings", []interface{}{"admin", 42}, []string{"admin"}},
		{"unexpected type", "admin", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractRoles(tc.value); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("extractRoles(%v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
