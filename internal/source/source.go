package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"skill-radar/internal/model"
)

const userAgent = "SkillRadarPipeline/0.1"

// Source is one upstream feed. Fetch returns whatever the feed yielded; a
// failed request is logged inside the connector and surfaces as an empty
// slice, never as an aborted run.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]model.RawRecord, error)
}

// rateGate enforces a per-connector minimum delay between outbound requests,
// measured from the end of the previous request.
type rateGate struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time
}

func (g *rateGate) wait(ctx context.Context) error {
	if g == nil || g.delay <= 0 {
		return nil
	}
	g.mu.Lock()
	last := g.last
	g.mu.Unlock()

	if !last.IsZero() {
		if rest := g.delay - time.Since(last); rest > 0 {
			t := time.NewTimer(rest)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return nil
}

func (g *rateGate) done() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.last = time.Now()
	g.mu.Unlock()
}

func httpGetJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, attempts int) ([]byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	var body []byte
	var lastErr error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				return
			}
			b, err := readAllLimit(resp.Body, 5<<20)
			if err != nil {
				lastErr = err
				return
			}
			lastErr = nil
			body = b
		}()
		if lastErr == nil {
			return body, nil
		}
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return nil, lastErr
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}

func hostFromBaseURL(base string) string {
	base = strings.TrimSpace(base)
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
