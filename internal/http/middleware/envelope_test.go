package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-response-codes/internal/responses"
)

type envelope struct {
	Status  int       `json:"status"`
	Message string    `json:"message"`
	Data    ErrorData `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return env
}

func TestAbortWithCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reg := responses.New()
	RegisterHostCodes(reg)
	if err := reg.Register("custom", "teapot", 418, "I'm a teapot", nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	tcs := []struct {
		name           string
		reg            *responses.Registry
		category, code string
		wantStatus     int
	}{
		{"Registered", reg, "custom", "teapot", 418},
		{"Host-Code", reg, responses.CategoryClientError, CodeConflict, http.StatusConflict},
		{"Missing-Falls-Back", reg, "custom", "gone", http.StatusServiceUnavailable},
		{"Nil-Registry", nil, "custom", "teapot", http.StatusServiceUnavailable},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			handlerRan := false
			r := gin.New()
			r.Use(RequestID())
			r.GET("/x", func(c *gin.Context) {
				AbortWithCode(c, tc.reg, tc.category, tc.code, http.StatusServiceUnavailable, "some_code", "custom message")
			}, func(c *gin.Context) { handlerRan = true })

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(requestIDHeader, "rid-7")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if handlerRan {
				t.Fatalf("chain was not aborted")
			}
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", w.Code, tc.wantStatus)
			}
			want := envelope{
				Status:  tc.wantStatus,
				Message: "custom message",
				Data:    ErrorData{RequestID: "rid-7", Code: "some_code"},
			}
			if got := decodeEnvelope(t, w); got != want {
				t.Fatalf("body = %+v; want %+v", got, want)
			}
		})
	}
}

func TestRequestIDFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := RequestIDFrom(c); got != "" {
		t.Fatalf("empty context: %q", got)
	}
	c.Header(requestIDHeader, "from-header")
	if got := RequestIDFrom(c); got != "from-header" {
		t.Fatalf("header fallback: %q", got)
	}
	c.Set(requestIDKey, "from-ctx")
	if got := RequestIDFrom(c); got != "from-ctx" {
		t.Fatalf("context value: %q", got)
	}
}

func TestRegisterHostCodes_SkipsPresent(t *testing.T) {
	reg := responses.New()
	if err := reg.Register(responses.CategoryClientError, CodeConflict, 409, "Already There", nil); err != nil {
		t.Fatalf("register: %v", err)
	}

	if n := RegisterHostCodes(reg); n != len(HostCodes)-1 {
		t.Fatalf("added %d; want %d", n, len(HostCodes)-1)
	}
	if n := RegisterHostCodes(reg); n != 0 {
		t.Fatalf("second call added %d", n)
	}

	d, err := reg.Describe(responses.CategoryClientError, CodeConflict)
	if err != nil || d.Message != "Already There" {
		t.Fatalf("existing code overwritten: %+v %v", d, err)
	}
	for _, hc := range HostCodes {
		d, err := reg.Describe(hc.Category, hc.Code)
		if err != nil || d.Status != hc.Status {
			t.Fatalf("%s.%s: %+v %v", hc.Category, hc.Code, d, err)
		}
	}
}
