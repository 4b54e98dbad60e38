package metering

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLMeter implements Meter on database/sql. It is written against the
// sqlite dialect (the CLI host opens it with the modernc.org/sqlite
// driver) and exercised in tests through sqlmock.
type SQLMeter struct {
	db *sql.DB
}

// NewSQLMeter creates a SQL-backed meter.
func NewSQLMeter(db *sql.DB) *SQLMeter {
	return &SQLMeter{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS usage_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id TEXT NOT NULL,
	capability_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	amount_minor INTEGER NOT NULL,
	timestamp DATETIME NOT NULL,
	metadata JSON
);
CREATE INDEX IF NOT EXISTS idx_usage_events_capability ON usage_events(capability_id, kind);
`

// Init creates the necessary tables.
func (m *SQLMeter) Init(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, schema)
	return err
}

// Record stores a single usage event.
func (m *SQLMeter) Record(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	var metadataJSON []byte
	if event.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("metering: failed to marshal metadata: %w", err)
		}
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO usage_events (request_id, capability_id, kind, quantity, amount_minor, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, event.RequestID, event.CapabilityID, string(event.Kind), event.Quantity,
		event.AmountMinor, event.Timestamp, metadataJSON)
	if err != nil {
		return fmt.Errorf("metering: failed to record event: %w", err)
	}
	return nil
}

// RecordBatch stores multiple events in a single transaction.
func (m *SQLMeter) RecordBatch(ctx context.Context, events []Event) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("metering: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO usage_events (request_id, capability_id, kind, quantity, amount_minor, timestamp, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("metering: failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, event := range events {
		if err := event.Validate(); err != nil {
			return err
		}
		if event.Timestamp.IsZero() {
			event.Timestamp = time.Now().UTC()
		}

		var metadataJSON []byte
		if event.Metadata != nil {
			metadataJSON, err = json.Marshal(event.Metadata)
			if err != nil {
				return fmt.Errorf("metering: failed to marshal metadata: %w", err)
			}
		}

		if _, err := stmt.ExecContext(ctx, event.RequestID, event.CapabilityID,
			string(event.Kind), event.Quantity, event.AmountMinor,
			event.Timestamp, metadataJSON); err != nil {
			return fmt.Errorf("metering: failed to record event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("metering: failed to commit batch: %w", err)
	}
	return nil
}

// TotalsFor aggregates stored events for one capability.
func (m *SQLMeter) TotalsFor(ctx context.Context, capabilityID string) (*Totals, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT kind, COALESCE(SUM(quantity), 0), COALESCE(SUM(amount_minor), 0)
		FROM usage_events
		WHERE capability_id = ?
		GROUP BY kind
	`, capabilityID)
	if err != nil {
		return nil, fmt.Errorf("metering: failed to query totals: %w", err)
	}
	defer rows.Close()

	t := &Totals{
		CapabilityID: capabilityID,
		Counts:       make(map[Kind]int64),
	}
	for rows.Next() {
		var kind string
		var quantity, amount int64
		if err := rows.Scan(&kind, &quantity, &amount); err != nil {
			return nil, fmt.Errorf("metering: failed to scan totals: %w", err)
		}
		t.Counts[Kind(kind)] = quantity
		if Kind(kind) == KindCharge {
			t.AmountMinor += amount
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("metering: totals iteration failed: %w", err)
	}
	return t, nil
}
