package netcheck

import (
	"context"
	"io"
	"net/http"
	"time"

	"quantumtie/internal/domain"
)

var messages = map[int]string{
	http.StatusOK:                  "ping response",
	http.StatusInternalServerError: "Internal server error",
	http.StatusBadGateway:          "Bad gateway",
	http.StatusServiceUnavailable:  "Service unavailable",
	520:                            "Cloudflare: Unknown error",
	522:                            "Cloudflare: Connection timed out",
	523:                            "Cloudflare: Origin is unreachable",
	524:                            "Cloudflare: A Timeout occurred",
}

// Message describes a ping status code.
func Message(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "ping response"
}

// Pinger issues GET requests to a URL.
type Pinger struct {
	HTTP    *http.Client
	Repeats int
	Wait    time.Duration
}

// New returns a pinger that sends one request per call.
func New(c *http.Client) *Pinger {
	if c == nil {
		c = http.DefaultClient
	}
	return &Pinger{HTTP: c, Repeats: 1, Wait: 500 * time.Millisecond}
}

// Ping requests url Repeats times and returns the last status code.
func (p *Pinger) Ping(ctx context.Context, url string) (int, error) {
	n := p.Repeats
	if n < 1 {
		n = 1
	}
	code := 0
	for i := 0; i < n; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}
		resp, err := p.HTTP.Do(req)
		if err != nil {
			return 0, err
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		code = resp.StatusCode

		if n > 1 {
			select {
			case <-ctx.Done():
				return code, ctx.Err()
			case <-time.After(p.Wait):
			}
		}
	}
	return code, nil
}

var _ domain.Pinger = (*Pinger)(nil)
