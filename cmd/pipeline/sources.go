package main

import (
	"github.com/hanabenko/ticket-scraping-api/internal/config"
	"github.com/hanabenko/ticket-scraping-api/internal/connector"
)

// sourceFlags holds one location per connector plus an optional manifest
type sourceFlags struct {
	ticketing string
	merch     string
	social    string
	streaming string
	manifest  string
}

// sources returns the per-connector flags in a fixed order followed by the
// manifest entries
func (f sourceFlags) sources() ([]connector.Source, error) {
	var out []connector.Source
	for _, src := range []connector.Source{
		{Connector: "ticketing", Location: f.ticketing},
		{Connector: "merch", Location: f.merch},
		{Connector: "social", Location: f.social},
		{Connector: "streaming", Location: f.streaming},
	} {
		if src.Location != "" {
			out = append(out, src)
		}
	}

	if f.manifest == "" {
		return out, nil
	}

	manifest, err := config.LoadSources(f.manifest)
	if err != nil {
		return nil, err
	}
	for _, entry := range manifest.Sources {
		out = append(out, connector.Source{Connector: entry.Connector, Location: entry.Location})
	}
	return out, nil
}
