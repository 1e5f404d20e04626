package connector

import (
	"fmt"
	"sort"
)

// Registry resolves connectors by name
type Registry map[string]Connector

// NewRegistry builds a registry from the given connectors
func NewRegistry(connectors ...Connector) Registry {
	r := make(Registry, len(connectors))
	for _, c := range connectors {
		r[c.Name()] = c
	}
	return r
}

// DefaultRegistry holds the ticketing, merch, social and streaming connectors
func DefaultRegistry() Registry {
	return NewRegistry(TicketingConnector{}, MerchConnector{}, SocialConnector{}, StreamingConnector{})
}

// Get returns the named connector
func (r Registry) Get(name string) (Connector, error) {
	c, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown connector %q (known: %v)", name, r.Names())
	}
	return c, nil
}

// Names lists registered connector names in sorted order
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
