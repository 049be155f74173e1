package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	maxAttempts     = 3
	maxBodyBytes    = 32 << 20
	maxErrorSnippet = 512
	userAgent       = "PetAIAssistant/1.0"
)

var errBodyTooLarge = errors.New("response body exceeds limit")

// HTTPSource downloads a catalog export. The format comes from the Content-Type
// header, falling back to the URL path extension.
type HTTPSource struct {
	httpClient  *http.Client
	url         string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	debug       bool
	maxBody     int64
}

// NewHTTPSource creates a source for rawURL with the given request timeout
func NewHTTPSource(rawURL string, timeout time.Duration, logger zerolog.Logger) (*HTTPSource, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid catalog url %q", rawURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// one request per second, bursting to a full retry cycle
	limiter := rate.NewLimiter(rate.Every(time.Second), maxAttempts)

	return &HTTPSource{
		httpClient:  &http.Client{Timeout: timeout},
		url:         rawURL,
		rateLimiter: limiter,
		logger:      logger.With().Str("component", "http_source").Str("url", rawURL).Logger(),
		maxBody:     maxBodyBytes,
	}, nil
}

// SetDebug enables or disables per-attempt logging
func (s *HTTPSource) SetDebug(enabled bool) {
	s.debug = enabled
}

func (s *HTTPSource) debugLog(msg string, attempt int, err error) {
	if !s.debug {
		return
	}
	ev := s.logger.Debug().Int("attempt", attempt)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg(msg)
}

// exponentialBackoff returns the wait after a failed attempt: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Fetch downloads and decodes the catalog, retrying transient failures.
// Server errors and 429 are retried; other client errors fail at once.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.RawProductRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		records, retry, err := s.fetchOnce(ctx)
		if err == nil {
			s.debugLog("catalog fetched", attempt, nil)
			return records, nil
		}
		s.debugLog("catalog fetch failed", attempt, err)
		lastErr = err
		if !retry || attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(exponentialBackoff(attempt)):
		}
	}

	s.logger.Warn().Err(lastErr).Msg("catalog fetch gave up")
	return nil, lastErr
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]domain.RawProductRecord, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return nil, retry, fmt.Errorf("%w: status %d: %s", domain.ErrSourceFailure, resp.StatusCode, snippet)
	}

	body, err := readLimitedBody(resp.Body, s.maxBody)
	if err != nil {
		// a truncated export must never become a partial catalog
		retry := !errors.Is(err, errBodyTooLarge)
		return nil, retry, fmt.Errorf("%w: read body: %v", domain.ErrSourceFailure, err)
	}

	format, err := s.responseFormat(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	records, err := Decode(format, body)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	return records, false, nil
}

func (s *HTTPSource) responseFormat(contentType string) (string, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mediaType {
		case "application/json":
			return FormatJSON, nil
		case "text/csv", "application/csv":
			return FormatCSV, nil
		}
	}
	u, _ := url.Parse(s.url)
	return formatFromName(path.Base(u.Path))
}

// String names the source in logs
func (s *HTTPSource) String() string {
	return s.url
}

// readLimitedBody reads all of r, failing with errBodyTooLarge past limit bytes
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", errBodyTooLarge, limit)
	}
	return data, nil
}
