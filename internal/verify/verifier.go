// Package verify probes the verification URLs attached to annotated facts.
// Probing is advisory: it reports dead or disallowed links so a reviewer can
// fix the metadata, and it never changes a fact's verification status.
package verify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/outreachlint/outreachlint/internal/model"
)

const probeMaxRetries = 3

// probeSleepFunc is the sleep function used between retries (injectable for tests)
var probeSleepFunc = time.Sleep

// Result records the probe outcome for one annotated fact
type Result struct {
	FactText   string `json:"fact_text"`
	URL        string `json:"url,omitempty"`
	Checked    bool   `json:"checked"`    // A probe was attempted
	Accessible bool   `json:"accessible"` // 2xx/3xx response
	StatusCode int    `json:"status_code,omitempty"`
	Skipped    string `json:"skipped,omitempty"` // Why no probe was attempted (no URL, robots)
	Warning    string `json:"warning,omitempty"` // Advisory metadata inconsistency
	Error      string `json:"error,omitempty"`
}

// Verifier probes verification URLs concurrently
type Verifier struct {
	httpClient *http.Client
	maxWorkers int
	robots     *RobotsChecker
	userAgent  string
}

// NewVerifier creates a new verifier from config
func NewVerifier(cfg model.VerifyConfig) *Verifier {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 20
	}

	var robots *RobotsChecker
	if cfg.RespectRobots {
		robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &Verifier{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		robots:     robots,
		userAgent:  cfg.UserAgent,
	}
}

// Verify probes the verification URLs of all annotated facts concurrently.
// Facts without a URL are not probed; a verified fact without a URL gets an
// advisory warning instead.
func (v *Verifier) Verify(ctx context.Context, facts []model.AnnotatedFact) []Result {
	if len(facts) == 0 {
		return []Result{}
	}

	results := make([]Result, len(facts))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, fact := range facts {
		if fact.VerificationURL == "" {
			results[i] = Result{
				FactText: fact.Text,
				Skipped:  "no verification URL",
			}
			if fact.VerificationStatus == model.StatusVerified {
				results[i].Warning = "marked verified but has no verification URL"
			}
			continue
		}

		wg.Add(1)
		go func(idx int, f model.AnnotatedFact) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = Result{
					FactText: f.Text,
					URL:      f.VerificationURL,
					Error:    "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = v.probeWithRetry(ctx, f)
		}(i, fact)
	}

	wg.Wait()
	return results
}

// probe HEAD-checks a single verification URL
func (v *Verifier) probe(ctx context.Context, fact model.AnnotatedFact) Result {
	result := Result{
		FactText: fact.Text,
		URL:      fact.VerificationURL,
	}

	if v.robots != nil && !v.robots.IsAllowed(ctx, fact.VerificationURL) {
		result.Skipped = "disallowed by robots.txt"
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, fact.VerificationURL, nil)
	if err != nil {
		result.Error = fmt.Sprintf("create request: %v", err)
		return result
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Checked = true
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.Checked = true
	result.StatusCode = resp.StatusCode
	result.Accessible = resp.StatusCode >= 200 && resp.StatusCode < 400

	return result
}

// probeWithRetry retries transient failures with exponential backoff
func (v *Verifier) probeWithRetry(ctx context.Context, fact model.AnnotatedFact) Result {
	var result Result
	for attempt := 0; attempt < probeMaxRetries; attempt++ {
		result = v.probe(ctx, fact)
		if !isRetryable(result) {
			return result
		}
		if attempt < probeMaxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			probeSleepFunc(backoff)
		}
	}
	return result
}

// isRetryable returns true for results that indicate transient failures
func isRetryable(result Result) bool {
	if result.StatusCode >= 500 && result.StatusCode < 600 {
		return true
	}
	if result.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if result.Error != "" {
		s := strings.ToLower(result.Error)
		return strings.Contains(s, "timeout") ||
			strings.Contains(s, "connection refused") ||
			strings.Contains(s, "connection reset")
	}
	return false
}
