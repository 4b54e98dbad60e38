// Package catalog is the source of truth for invocable paid capabilities.
// The Registry is constructed once from a static table, validated fail-fast,
// and never mutated afterwards; every downstream component (matcher, price
// resolver, projections) reads from it without coordination.
package catalog

import (
	"errors"
	"fmt"

	"github.com/quasarlabs/toolgate/pkg/canonicalize"
	"github.com/quasarlabs/toolgate/pkg/pricing"
)

// Capability groups used by the briefing projection.
const (
	GroupCore    = "core"
	GroupPartner = "partner"
)

// ScreenerPrefix marks the screener capability family; ids with this prefix
// are grouped together regardless of their Group field.
const ScreenerPrefix = "screener-"

var (
	// ErrDuplicateID is returned when two capabilities share an id.
	ErrDuplicateID = errors.New("catalog: duplicate capability id")
	// ErrAmbiguousAlias is returned when an alias maps to two capabilities.
	ErrAmbiguousAlias = errors.New("catalog: alias claimed by two capabilities")
	// ErrNegativePrice is returned when a price is below zero.
	ErrNegativePrice = errors.New("catalog: price must not be negative")
	// ErrUnknownComponent is returned when an aggregate names a missing id.
	ErrUnknownComponent = errors.New("catalog: aggregate component not in table")
	// ErrAggregateMismatch is returned when an aggregate's stored price does
	// not equal the sum of its components.
	ErrAggregateMismatch = errors.New("catalog: aggregate price does not equal component sum")
)

// Capability is one externally priced, invocable function the dispatch
// engine can select. WirePath and HTTPVerb are opaque here; the caller uses
// them to perform the actual request after selection.
type Capability struct {
	ID           string        `json:"id"`
	WirePath     string        `json:"wire_path"`
	HTTPVerb     string        `json:"http_verb"`
	BasePrice    pricing.Money `json:"base_price"`
	DisplayPrice pricing.Money `json:"display_price"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Aliases      []string      `json:"aliases,omitempty"`
	Group        string        `json:"group,omitempty"`
	Internal     bool          `json:"internal,omitempty"`

	// Components non-empty marks an aggregate capability: its prices are
	// the precomputed sum of the named capabilities (repeats allowed).
	Components []string `json:"components,omitempty"`
}

// IsAggregate reports whether the capability's price bundles other
// capabilities.
func (c Capability) IsAggregate() bool {
	return len(c.Components) > 0
}

// Registry is an immutable, ordered collection of capability descriptors.
type Registry struct {
	ordered []Capability
	byID    map[string]int
	aliases map[string]string // alias -> canonical id
}

// New validates the table and builds a Registry. Configuration defects
// (duplicate ids, ambiguous aliases, negative prices, inconsistent
// aggregates) fail here, at startup, rather than surfacing at request time.
func New(table []Capability) (*Registry, error) {
	r := &Registry{
		ordered: make([]Capability, len(table)),
		byID:    make(map[string]int, len(table)),
		aliases: make(map[string]string),
	}
	copy(r.ordered, table)

	for i, c := range r.ordered {
		if c.ID == "" {
			return nil, fmt.Errorf("catalog: capability at index %d has empty id", i)
		}
		if _, exists := r.byID[c.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		if c.BasePrice.IsNegative() || c.DisplayPrice.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrNegativePrice, c.ID)
		}
		r.byID[c.ID] = i

		for _, alias := range c.Aliases {
			if owner, exists := r.aliases[alias]; exists && owner != c.ID {
				return nil, fmt.Errorf("%w: %q (%s vs %s)", ErrAmbiguousAlias, alias, owner, c.ID)
			}
			r.aliases[alias] = c.ID
		}
	}

	if err := r.verifyAggregates(); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is New for static tables known to be valid; it panics on a
// configuration defect.
func MustNew(table []Capability) *Registry {
	r, err := New(table)
	if err != nil {
		panic(err)
	}
	return r
}

// verifyAggregates checks that every aggregate's stored prices equal the
// literal sum of its named components. The sums are computed once, here;
// lookups return the stored values untouched.
func (r *Registry) verifyAggregates() error {
	for _, c := range r.ordered {
		if !c.IsAggregate() {
			continue
		}
		baseSum := pricing.USD(0)
		displaySum := pricing.USD(0)
		for _, compID := range c.Components {
			comp, ok := r.Lookup(compID)
			if !ok {
				return fmt.Errorf("%w: %s needs %s", ErrUnknownComponent, c.ID, compID)
			}
			var err error
			if baseSum, err = baseSum.Add(comp.BasePrice); err != nil {
				return fmt.Errorf("catalog: aggregate %s: %w", c.ID, err)
			}
			if displaySum, err = displaySum.Add(comp.DisplayPrice); err != nil {
				return fmt.Errorf("catalog: aggregate %s: %w", c.ID, err)
			}
		}
		if baseSum != c.BasePrice || displaySum != c.DisplayPrice {
			return fmt.Errorf("%w: %s stored %s/%s, components sum to %s/%s",
				ErrAggregateMismatch, c.ID,
				c.BasePrice, c.DisplayPrice, baseSum, displaySum)
		}
	}
	return nil
}

// Lookup returns the capability with the given canonical id. The false
// return signals "no such capability" and is a normal control-flow branch.
func (r *Registry) Lookup(id string) (Capability, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Capability{}, false
	}
	return r.ordered[i], true
}

// Exists reports whether a canonical id is in the table.
func (r *Registry) Exists(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// ResolveID maps a caller-supplied identifier to a canonical capability id.
// Unknown candidates pass through unchanged; normalization is advisory and
// the Registry rejects nonexistent ids at Lookup time.
func (r *Registry) ResolveID(candidate string) string {
	if canonical, ok := r.aliases[candidate]; ok {
		return canonical
	}
	return candidate
}

// Prices implements pricing.Source.
func (r *Registry) Prices(id string) (base, display pricing.Money, ok bool) {
	c, ok := r.Lookup(id)
	if !ok {
		return pricing.Money{}, pricing.Money{}, false
	}
	return c.BasePrice, c.DisplayPrice, true
}

// List returns the capabilities in table order. The slice is a copy; the
// Registry itself is never exposed for mutation.
func (r *Registry) List() []Capability {
	out := make([]Capability, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Count returns the number of capabilities in the table.
func (r *Registry) Count() int {
	return len(r.ordered)
}

// Hash computes a deterministic hash of the full table for configuration
// drift detection between deployments.
func (r *Registry) Hash() (string, error) {
	return canonicalize.CanonicalHash(map[string]interface{}{
		"count":        len(r.ordered),
		"capabilities": r.ordered,
	})
}
