package connector

import (
	"iter"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/hanabenko/ticket-scraping-api/internal/domain"
)

var (
	artistKeys = []string{"artist", "artist_name"}
	userKeys   = []string{"email", "user_id", "external_id", "user"}
	timeKeys   = []string{"occurred_at", "timestamp"}
	concertKey = "concert_id"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// unix values above this are taken as milliseconds
const millisThreshold = 1e12

// fieldMapping is the source-specific table a connector normalizes with
type fieldMapping struct {
	channel  string
	typeKeys []string
	// types maps lower-cased source values; nil passes the value through
	types       map[string]domain.InteractionType
	defaultType domain.InteractionType
}

func (m fieldMapping) consumed(key string) bool {
	if key == "channel" || key == concertKey {
		return true
	}
	for _, group := range [][]string{artistKeys, userKeys, timeKeys, m.typeKeys} {
		for _, k := range group {
			if k == key {
				return true
			}
		}
	}
	return false
}

func (m fieldMapping) interactionType(record map[string]any) domain.InteractionType {
	raw := strings.TrimSpace(firstString(record, m.typeKeys...))
	if raw == "" {
		return m.defaultType
	}
	if m.types == nil {
		return domain.InteractionType(raw)
	}
	if t, ok := m.types[strings.ToLower(raw)]; ok {
		return t
	}
	return m.defaultType
}

func (m fieldMapping) toEvent(record map[string]any) domain.CanonicalEvent {
	channel := firstString(record, "channel")
	if channel == "" {
		channel = m.channel
	}

	var metadata map[string]any
	for k, v := range record {
		if m.consumed(k) {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata[k] = v
	}

	return domain.CanonicalEvent{
		ArtistName:      strings.TrimSpace(firstString(record, artistKeys...)),
		UserIdentifier:  domain.NormalizeIdentifier(firstString(record, userKeys...)),
		InteractionType: m.interactionType(record),
		Channel:         channel,
		OccurredAt:      firstTime(record, timeKeys...),
		ConcertID:       parseID(record[concertKey]),
		Metadata:        metadata,
	}
}

func (m fieldMapping) normalize(records []map[string]any) iter.Seq[domain.CanonicalEvent] {
	return func(yield func(domain.CanonicalEvent) bool) {
		for _, record := range records {
			if !yield(m.toEvent(record)) {
				return
			}
		}
	}
}

// firstString returns the first non-empty value among keys, rendering
// numeric ids as strings
func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := record[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		case int64:
			return strconv.FormatInt(v, 10)
		}
	}
	return ""
}

func firstTime(record map[string]any, keys ...string) time.Time {
	for _, key := range keys {
		if t := parseTime(record[key]); !t.IsZero() {
			return t
		}
	}
	return time.Time{}
}

// parseTime accepts RFC3339-like strings, plain dates and unix timestamps;
// anything else yields the zero time
func parseTime(value any) time.Time {
	switch v := value.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}
		}
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromUnix(f)
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return fromUnix(f)
		}
	case float64:
		return fromUnix(v)
	case int:
		return fromUnix(float64(v))
	case int64:
		return fromUnix(float64(v))
	}
	return time.Time{}
}

// parseID reads a positive integer id from a number or numeric string
func parseID(value any) *uint64 {
	var raw string
	switch v := value.(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	case float64:
		if v <= 0 || v != math.Trunc(v) || v > 1<<53 {
			return nil
		}
		id := uint64(v)
		return &id
	case int:
		if v <= 0 {
			return nil
		}
		id := uint64(v)
		return &id
	default:
		return nil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func fromUnix(f float64) time.Time {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}
	}
	if f >= millisThreshold {
		return time.UnixMilli(int64(f)).UTC()
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
