package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tbourn/go-response-codes/internal/responses"
)

func TestMetrics_CountersAndPathFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/codes/:category/:code", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/statusonly", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseRoute := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/codes/:category/:code", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	for _, tc := range []struct {
		path string
		want int
	}{
		{"/codes/success/ok", http.StatusOK},
		{"/codes/clientError/notFound", http.StatusOK},
		{"/does-not-exist", http.StatusNotFound},
		{"/statusonly", http.StatusNoContent},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.want {
			t.Fatalf("GET %s -> %d, want %d", tc.path, w.Code, tc.want)
		}
	}

	// both concrete paths collapse onto the route template
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/codes/:category/:code", "200")); got != baseRoute+2 {
		t.Fatalf("route counter = %v; want %v", got, baseRoute+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404")); got != base404+1 {
		t.Fatalf("404 fallback counter = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}

func TestObserveResponse_ViaRegistryObserver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := responses.New(responses.WithObserver(ObserveResponse))

	counter := respWritten.WithLabelValues("success", "created", "201")
	base := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if _, err := reg.Invoke(c, "success", "created"); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if _, err := reg.Invoke(c, "nope", "nope"); err == nil {
		t.Fatalf("expected not found")
	}

	if got := testutil.ToFloat64(counter); got != base+1 {
		t.Fatalf("responses_written_total = %v; want %v", got, base+1)
	}
}
