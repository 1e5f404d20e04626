package connector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

const maxPayloadBytes = 64 << 20

var errTrailingData = errors.New("unexpected data after JSON payload")

// Source declares one input of a pipeline run
type Source struct {
	Connector string `json:"connector" yaml:"connector" binding:"required"`
	Location  string `json:"location" yaml:"location" binding:"required"`
}

// IsRemote reports whether the location is an http(s) URL
func (s Source) IsRemote() bool {
	u, err := url.Parse(s.Location)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// LoaderConfig configures source fetching
type LoaderConfig struct {
	FetchTimeout            time.Duration
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
}

// DefaultLoaderConfig returns a 15s fetch timeout and a breaker that opens
// after 3 consecutive failures per host
func DefaultLoaderConfig() LoaderConfig {
	return LoaderConfig{
		FetchTimeout:            15 * time.Second,
		BreakerFailureThreshold: 3,
		BreakerOpenTimeout:      time.Minute,
	}
}

// Loader reads a source payload from a file or URL and hands the records to
// the declared connector
type Loader struct {
	registry Registry
	rules    []ExtractionRule
	client   *http.Client
	config   LoaderConfig
	log      *zap.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

// NewLoader creates a new source loader
func NewLoader(registry Registry, config LoaderConfig, log *zap.Logger) *Loader {
	return &Loader{
		registry: registry,
		rules:    DefaultExtractionRules,
		client:   &http.Client{Timeout: config.FetchTimeout},
		config:   config,
		log:      log,
		breakers: make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
}

// Load fetches and decodes the source eagerly; the returned sequence maps
// records lazily and may be ranged over more than once.
func (l *Loader) Load(ctx context.Context, src Source) (iter.Seq[domain.CanonicalEvent], error) {
	conn, err := l.registry.Get(src.Connector)
	if err != nil {
		return nil, err
	}

	var body []byte
	if src.IsRemote() {
		body, err = l.fetch(ctx, src.Location)
	} else {
		body, err = l.readFile(src.Location)
	}
	if err != nil {
		return nil, err
	}

	records, err := l.decode(src.Location, body)
	if err != nil {
		return nil, err
	}

	l.log.Info("Source loaded",
		zap.String("connector", src.Connector),
		zap.String("location", src.Location),
		zap.Int("record_count", len(records)))

	return conn.Normalize(records), nil
}

func (l *Loader) readFile(path string) ([]byte, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.SourceUnavailableError{Source: path, Err: err}
	}
	return body, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	cb := l.breaker(location)

	body, err := cb.Execute(func() ([]byte, error) {
		return l.get(ctx, location)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			l.log.Warn("Source fetch rejected by circuit breaker",
				zap.String("location", location),
				zap.String("breaker_state", cb.State().String()))
		}
		return nil, &domain.SourceUnavailableError{Source: location, Err: err}
	}
	return body, nil
}

func (l *Loader) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			l.log.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// breaker returns the circuit breaker of the location's host
func (l *Loader) breaker(location string) *gobreaker.CircuitBreaker[[]byte] {
	host := location
	if u, err := url.Parse(location); err == nil {
		host = u.Host
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cb, ok := l.breakers[host]; ok {
		return cb
	}

	threshold := l.config.BreakerFailureThreshold
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "source:" + host,
		MaxRequests: 1,
		Timeout:     l.config.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return threshold > 0 && counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.log.Info("Source circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	l.breakers[host] = cb
	return cb
}

// decode keeps numbers as json.Number so large numeric ids survive intact
func (l *Loader) decode(location string, body []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &domain.SourceFormatError{Source: location, Err: fmt.Errorf("failed to decode JSON: %w", err)}
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return nil, &domain.SourceFormatError{Source: location, Err: errTrailingData}
	}

	records, err := extractRecords(payload, l.rules)
	if err != nil {
		return nil, &domain.SourceFormatError{Source: location, Err: err}
	}
	return records, nil
}
