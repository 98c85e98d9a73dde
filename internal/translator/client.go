package translator

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxErrorBodyLen = 500

func newRESTClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

// statusError describes a non-2xx upstream reply. The body is abbreviated and
// only ever reaches server-side logs.
func statusError(provider string, resp *resty.Response) error {
	return fmt.Errorf("%s: API returned status %d: %s", provider, resp.StatusCode(), abbreviate(strings.TrimSpace(resp.String()), maxErrorBodyLen))
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
