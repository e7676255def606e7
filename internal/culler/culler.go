package culler

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each distinct URL is checked.
type ProgressFunc func(completed, total int)

// Options configures CheckURLs.
type Options struct {
	Concurrency    int           // parallel requests (default 10)
	Timeout        time.Duration // per request (default 10s)
	ExcludeDomains []string      // 404s here are "possibly private" instead of dead
	OnProgress     ProgressFunc  // optional
	Logger         logger.Logger // optional
}

// probe is the outcome for one URL, shared by every bookmark pointing at it.
type probe struct {
	status     Status
	statusCode int
	err        string
}

// CheckURLs checks bookmark URLs concurrently and returns one result per
// bookmark, in input order. A URL saved by several bookmarks (common in the
// feed) is requested once. When ctx is cancelled the remaining URLs are
// reported unreachable.
func CheckURLs(ctx context.Context, bookmarks []model.Bookmark, opts Options) []Result {
	if len(bookmarks) == 0 {
		return nil
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excluded := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excluded[strings.ToLower(domain)] = true
	}

	var urls []string
	seen := make(map[string]bool)
	for _, b := range bookmarks {
		if !seen[b.URL] {
			seen[b.URL] = true
			urls = append(urls, b.URL)
		}
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	probes := make(map[string]probe, len(urls))
	var mu sync.Mutex
	completed := 0

	jobs := make(chan string)
	var wg sync.WaitGroup
	for w := 0; w < min(opts.Concurrency, len(urls)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				pr := checkURL(ctx, client, u, excluded)
				opts.Logger.Debug("checked link",
					logger.String("url", u),
					logger.String("status", pr.status.String()),
					logger.Int("code", pr.statusCode))

				mu.Lock()
				probes[u] = pr
				completed++
				if opts.OnProgress != nil {
					opts.OnProgress(completed, len(urls))
				}
				mu.Unlock()
			}
		}()
	}

send:
	for _, u := range urls {
		select {
		case jobs <- u:
		case <-ctx.Done():
			break send
		}
	}
	close(jobs)
	wg.Wait()

	results := make([]Result, len(bookmarks))
	for i, b := range bookmarks {
		pr, ok := probes[b.URL]
		if !ok {
			pr = probe{status: Unreachable, err: "Not checked (cancelled)"}
		}
		results[i] = Result{Bookmark: b, Status: pr.status, StatusCode: pr.statusCode, Error: pr.err}
	}
	return results
}

// checkURL requests rawURL with HEAD, falling back to GET when HEAD fails or
// is not allowed.
func checkURL(ctx context.Context, client *http.Client, rawURL string, excluded map[string]bool) probe {
	resp, err := request(ctx, client, http.MethodHead, rawURL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = request(ctx, client, http.MethodGet, rawURL)
		if err != nil {
			return probe{status: Unreachable, err: normalizeError(err.Error())}
		}
	}
	defer resp.Body.Close()

	pr := probe{statusCode: resp.StatusCode}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		pr.status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if isExcludedDomain(rawURL, excluded) {
			pr.status = Unreachable
			pr.err = "Possibly private (auth required)"
		} else {
			pr.status = Dead
		}
	default:
		pr.status = Unreachable
		pr.err = http.StatusText(resp.StatusCode)
	}
	return pr
}

func request(ctx context.Context, client *http.Client, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// isExcludedDomain checks if the URL's domain is in the exclude list.
func isExcludedDomain(rawURL string, excludeMap map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if excludeMap[host] {
		return true
	}
	// Check if host ends with excluded domain
	for domain := range excludeMap {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
