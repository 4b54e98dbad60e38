package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quasarlabs/toolgate/pkg/catalog"
)

// The shipped table is configuration; these tests pin its invariants so a
// config edit that breaks them fails CI instead of a deployment.

func TestDefault_Constructs(t *testing.T) {
	assert.NotPanics(t, func() { catalog.Default() })
}

func TestDefault_IDsUnique(t *testing.T) {
	reg := catalog.Default()

	seen := make(map[string]bool)
	for _, c := range reg.List() {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestDefault_AliasesUnambiguous(t *testing.T) {
	reg := catalog.Default()

	owners := make(map[string]string)
	for _, c := range reg.List() {
		for _, alias := range c.Aliases {
			owner, claimed := owners[alias]
			assert.False(t, claimed, "alias %q claimed by %s and %s", alias, owner, c.ID)
			owners[alias] = c.ID
		}
	}
}

func TestDefault_SnakeCaseAliases(t *testing.T) {
	reg := catalog.Default()

	assert.Equal(t, "jupiter-swap-order", reg.ResolveID("jupiter_swap_order"))
	assert.Equal(t, "market-brief", reg.ResolveID("market_brief"))
	assert.Equal(t, "screener-trending", reg.ResolveID("screener_trending"))
}

// TestDefault_MarketBriefSum pins the aggregate equality against the
// literal numbers in the shipped table: if any component price changes,
// market-brief's stored sums must be updated in the same commit.
func TestDefault_MarketBriefSum(t *testing.T) {
	reg := catalog.Default()

	brief, ok := reg.Lookup("market-brief")
	require.True(t, ok)
	require.Equal(t, []string{"signal", "news", "news", "screener-trending"}, brief.Components)

	// signal 500 + news 300 + news 300 + screener-trending 200
	assert.Equal(t, int64(1300), brief.BasePrice.AmountMinor)
	// signal 500 + news 300 + news 300 + screener-trending 250
	assert.Equal(t, int64(1350), brief.DisplayPrice.AmountMinor)
}

func TestDefault_PricesNonNegative(t *testing.T) {
	for _, c := range catalog.Default().List() {
		assert.False(t, c.BasePrice.IsNegative(), "%s base price", c.ID)
		assert.False(t, c.DisplayPrice.IsNegative(), "%s display price", c.ID)
	}
}

func TestDefault_InternalOnlyHealthPing(t *testing.T) {
	reg := catalog.Default()

	ping, ok := reg.Lookup("health-ping")
	require.True(t, ok)
	assert.True(t, ping.Internal)
	assert.True(t, ping.BasePrice.IsZero())
}
