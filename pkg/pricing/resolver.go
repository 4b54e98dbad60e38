package pricing

// Source yields the stored prices for a capability id. The capability
// catalog implements it; aggregates carry precomputed sums so every lookup
// is O(1) and never re-derives a price at request time.
type Source interface {
	Prices(id string) (base, display Money, ok bool)
}

// Quote is the charge for a single capability invocation.
type Quote struct {
	Base    Money `json:"base"`
	Display Money `json:"display"`
}

// Resolver computes the charge for a capability by delegating to its Source.
type Resolver struct {
	src Source
}

// NewResolver creates a Resolver over the given price source.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// PriceOf returns the stored quote for id. The false return is the normal
// "no such capability" branch, not a fault.
func (r *Resolver) PriceOf(id string) (Quote, bool) {
	base, display, ok := r.src.Prices(id)
	if !ok {
		return Quote{}, false
	}
	return Quote{Base: base, Display: display}, true
}
