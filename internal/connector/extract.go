package connector

import (
	"errors"
	"fmt"
)

// EnvelopeKey extracts the array stored under a top-level object key
type EnvelopeKey string

func (k EnvelopeKey) Extract(payload any) ([]any, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	records, ok := obj[string(k)].([]any)
	return records, ok
}

// RawArray accepts a payload that is already an array
type RawArray struct{}

func (RawArray) Extract(payload any) ([]any, bool) {
	records, ok := payload.([]any)
	return records, ok
}

// DefaultExtractionRules tries the common envelope keys in order and falls
// back to the raw payload
var DefaultExtractionRules = []ExtractionRule{
	EnvelopeKey("data"),
	EnvelopeKey("items"),
	EnvelopeKey("events"),
	EnvelopeKey("rows"),
	RawArray{},
}

var errNotArray = errors.New("payload is not an array of records")

// extractRecords evaluates rules until one yields an array; non-object
// elements are dropped
func extractRecords(payload any, rules []ExtractionRule) ([]map[string]any, error) {
	for _, rule := range rules {
		items, ok := rule.Extract(payload)
		if !ok {
			continue
		}

		records := make([]map[string]any, 0, len(items))
		for _, item := range items {
			if record, ok := item.(map[string]any); ok {
				records = append(records, record)
			}
		}
		return records, nil
	}

	return nil, fmt.Errorf("%w (got %T)", errNotArray, payload)
}
