package connector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

func newTestLoader(config LoaderConfig) *Loader {
	return NewLoader(DefaultRegistry(), config, zap.NewNop())
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtractRecords(t *testing.T) {
	tests := []struct {
		name     string
		payload  any
		expected int
		wantErr  bool
	}{
		{"raw array", []any{map[string]any{"a": 1.0}, map[string]any{"b": 2.0}}, 2, false},
		{"data envelope", map[string]any{"data": []any{map[string]any{}}}, 1, false},
		{"rows envelope", map[string]any{"meta": "x", "rows": []any{map[string]any{}, map[string]any{}}}, 2, false},
		{"first matching key wins", map[string]any{"events": []any{map[string]any{}}, "items": []any{}}, 0, false},
		{"non object elements dropped", []any{"x", 1.0, map[string]any{}}, 1, false},
		{"envelope key not an array", map[string]any{"data": map[string]any{}}, 0, true},
		{"scalar", "hello", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := extractRecords(tt.payload, DefaultExtractionRules)
			if tt.wantErr {
				assert.ErrorIs(t, err, errNotArray)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.expected)
		})
	}
}

func TestLoader_Load_File(t *testing.T) {
	path := writeSource(t, `[{"artist":"The Echoes","email":"alice@example.com","type":"click","occurred_at":"2025-10-01T10:05:00Z"}]`)

	seq, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "ticketing", Location: path})

	require.NoError(t, err)
	events := slices.Collect(seq)
	require.Len(t, events, 1)
	assert.Equal(t, "The Echoes", events[0].ArtistName)
	assert.Equal(t, domain.InteractionClick, events[0].InteractionType)
}

func TestLoader_Load_FileEnvelope(t *testing.T) {
	path := writeSource(t, `{"items":[{"artist":"A","action":"comment"}]}`)

	seq, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "social", Location: path})

	require.NoError(t, err)
	events := slices.Collect(seq)
	require.Len(t, events, 1)
	assert.Equal(t, domain.InteractionSocialComment, events[0].InteractionType)
}

func TestLoader_Load_MalformedJSON(t *testing.T) {
	path := writeSource(t, `{"items": [`)

	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "social", Location: path})

	var formatErr *domain.SourceFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, path, formatErr.Source)
}

func TestLoader_Load_NotAnArray(t *testing.T) {
	path := writeSource(t, `{"status":"ok"}`)

	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "merch", Location: path})

	var formatErr *domain.SourceFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(),
		Source{Connector: "merch", Location: filepath.Join(t.TempDir(), "missing.json")})

	var unavailableErr *domain.SourceUnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
}

func TestLoader_Load_UnknownConnector(t *testing.T) {
	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "radio", Location: "x.json"})

	assert.ErrorContains(t, err, "unknown connector")
}

func TestLoader_Load_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"events":[{"artist_name":"A","timestamp":"2025-10-01T10:05:00Z"},{"artist_name":"B"}]}`))
	}))
	defer server.Close()

	seq, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "streaming", Location: server.URL})

	require.NoError(t, err)
	events := slices.Collect(seq)
	require.Len(t, events, 2)
	assert.Equal(t, "A", events[0].ArtistName)
	assert.Equal(t, domain.InteractionStream, events[1].InteractionType)
}

func TestLoader_Load_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "social", Location: server.URL})

	var unavailableErr *domain.SourceUnavailableError
	require.ErrorAs(t, err, &unavailableErr)
	assert.ErrorContains(t, err, "502")
}

func TestLoader_Load_HTTPTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	config := DefaultLoaderConfig()
	config.FetchTimeout = 20 * time.Millisecond

	_, err := newTestLoader(config).Load(context.Background(), Source{Connector: "social", Location: server.URL})

	var unavailableErr *domain.SourceUnavailableError
	assert.ErrorAs(t, err, &unavailableErr)
}

func TestLoader_Load_HTTPMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "social", Location: server.URL})

	var formatErr *domain.SourceFormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestLoader_Load_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := DefaultLoaderConfig()
	config.BreakerFailureThreshold = 2
	loader := newTestLoader(config)
	src := Source{Connector: "ticketing", Location: server.URL + "/feed.json"}

	for i := 0; i < 2; i++ {
		_, err := loader.Load(context.Background(), src)
		require.Error(t, err)
	}
	_, err := loader.Load(context.Background(), src)

	var unavailableErr *domain.SourceUnavailableError
	require.ErrorAs(t, err, &unavailableErr)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, int32(2), hits.Load())
}

func TestSource_IsRemote(t *testing.T) {
	assert.True(t, Source{Location: "https://example.com/feed"}.IsRemote())
	assert.True(t, Source{Location: "http://localhost:8000/x.json"}.IsRemote())
	assert.False(t, Source{Location: "data/ticketing.json"}.IsRemote())
	assert.False(t, Source{Location: "ftp://example.com/x"}.IsRemote())
}

func TestLoader_Load_LargeNumericUserIDsStayDistinct(t *testing.T) {
	path := writeSource(t, `[
		{"artist":"A","user_id":9007199254740993,"occurred_at":"2025-10-01T10:05:00Z"},
		{"artist":"A","user_id":9007199254740992,"occurred_at":"2025-10-01T10:06:00Z"}
	]`)

	seq, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "ticketing", Location: path})

	require.NoError(t, err)
	events := slices.Collect(seq)
	require.Len(t, events, 2)
	assert.Equal(t, "9007199254740993", events[0].UserIdentifier)
	assert.Equal(t, "9007199254740992", events[1].UserIdentifier)
}

func TestLoader_Load_NumericTimestampsAndConcert(t *testing.T) {
	path := writeSource(t, `[{"artist":"A","timestamp":1759313100,"concert_id":17,"price":42.5}]`)

	seq, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "ticketing", Location: path})

	require.NoError(t, err)
	events := slices.Collect(seq)
	require.Len(t, events, 1)
	assert.Equal(t, time.Unix(1759313100, 0).UTC(), events[0].OccurredAt)
	require.NotNil(t, events[0].ConcertID)
	assert.Equal(t, uint64(17), *events[0].ConcertID)
	assert.Equal(t, "42.5", fmt.Sprint(events[0].Metadata["price"]))
	assert.NotContains(t, events[0].Metadata, "concert_id")
}

func TestLoader_Load_TrailingData(t *testing.T) {
	path := writeSource(t, `[{"artist":"A"}] [{"artist":"B"}]`)

	_, err := newTestLoader(DefaultLoaderConfig()).Load(context.Background(), Source{Connector: "ticketing", Location: path})

	var formatErr *domain.SourceFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.ErrorIs(t, err, errTrailingData)
}
