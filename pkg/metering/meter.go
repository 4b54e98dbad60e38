// Package metering tracks capability selections and charges. The dispatch
// engine itself is pure and never records anything; the hosting layer feeds
// a Meter after each routed request so usage and spend can be aggregated.
package metering

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyCapabilityID is returned when an event names no capability.
	ErrEmptyCapabilityID = errors.New("metering: capability_id must not be empty")
	// ErrNegativeQuantity is returned when an event has a negative quantity.
	ErrNegativeQuantity = errors.New("metering: quantity must not be negative")
	// ErrNegativeAmount is returned when an event carries a negative charge.
	ErrNegativeAmount = errors.New("metering: amount_minor must not be negative")
	// ErrInvalidKind is returned when the event kind is empty.
	ErrInvalidKind = errors.New("metering: kind must not be empty")
)

// Kind defines the type of metered event.
type Kind string

const (
	// KindSelection records that the matcher routed text to a capability.
	KindSelection Kind = "selection"
	// KindCharge records that the caller actually paid for an invocation.
	KindCharge Kind = "charge"
	// KindNoMatch records an utterance that matched no rule.
	KindNoMatch Kind = "no_match"
)

// Event is a single metered occurrence.
type Event struct {
	RequestID    string            `json:"request_id"`
	CapabilityID string            `json:"capability_id"`
	Kind         Kind              `json:"kind"`
	Quantity     int64             `json:"quantity"`
	AmountMinor  int64             `json:"amount_minor"` // USD minor units, scale 4
	Timestamp    time.Time         `json:"timestamp"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// NewEvent creates an event with a fresh request id and UTC timestamp.
func NewEvent(capabilityID string, kind Kind, quantity, amountMinor int64) Event {
	return Event{
		RequestID:    uuid.New().String(),
		CapabilityID: capabilityID,
		Kind:         kind,
		Quantity:     quantity,
		AmountMinor:  amountMinor,
		Timestamp:    time.Now().UTC(),
	}
}

// Validate checks that the event has valid fields. No-match events carry no
// capability id; everything else must.
func (e Event) Validate() error {
	if e.Kind == "" {
		return ErrInvalidKind
	}
	if e.CapabilityID == "" && e.Kind != KindNoMatch {
		return ErrEmptyCapabilityID
	}
	if e.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if e.AmountMinor < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Totals contains aggregated usage for one capability.
type Totals struct {
	CapabilityID string         `json:"capability_id"`
	Counts       map[Kind]int64 `json:"counts"`
	AmountMinor  int64          `json:"amount_minor"`
}

// Meter is the interface for recording and querying usage.
type Meter interface {
	// Record stores a usage event.
	Record(ctx context.Context, event Event) error

	// RecordBatch stores multiple events atomically.
	RecordBatch(ctx context.Context, events []Event) error

	// TotalsFor retrieves aggregated usage for one capability.
	TotalsFor(ctx context.Context, capabilityID string) (*Totals, error)
}

// MemoryMeter is a thread-safe in-memory Meter for tests and
// single-process deployments.
type MemoryMeter struct {
	mu     sync.RWMutex
	events []Event
}

// NewMemoryMeter creates an empty in-memory meter.
func NewMemoryMeter() *MemoryMeter {
	return &MemoryMeter{}
}

// Record stores a usage event.
func (m *MemoryMeter) Record(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// RecordBatch stores multiple events; validation failures reject the whole
// batch before anything is appended.
func (m *MemoryMeter) RecordBatch(ctx context.Context, events []Event) error {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now().UTC()
		}
		m.events = append(m.events, e)
	}
	return nil
}

// TotalsFor aggregates recorded events for one capability.
func (m *MemoryMeter) TotalsFor(ctx context.Context, capabilityID string) (*Totals, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t := &Totals{
		CapabilityID: capabilityID,
		Counts:       make(map[Kind]int64),
	}
	for _, e := range m.events {
		if e.CapabilityID != capabilityID {
			continue
		}
		t.Counts[e.Kind] += e.Quantity
		if e.Kind == KindCharge {
			t.AmountMinor += e.AmountMinor
		}
	}
	return t, nil
}
