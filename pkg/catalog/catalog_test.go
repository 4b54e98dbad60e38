package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quasarlabs/toolgate/pkg/catalog"
	"github.com/quasarlabs/toolgate/pkg/pricing"
)

func fixtureTable() []catalog.Capability {
	return []catalog.Capability{
		{
			ID: "alpha", WirePath: "/a", HTTPVerb: "GET", Name: "Alpha",
			BasePrice: pricing.USD(100), DisplayPrice: pricing.USD(150),
			Aliases: []string{"alpha_tool"}, Group: catalog.GroupCore,
		},
		{
			ID: "beta", WirePath: "/b", HTTPVerb: "POST", Name: "Beta",
			BasePrice: pricing.USD(200), DisplayPrice: pricing.USD(200),
			Group: catalog.GroupPartner,
		},
		{
			ID: "bundle", WirePath: "/bundle", HTTPVerb: "GET", Name: "Bundle",
			BasePrice: pricing.USD(400), DisplayPrice: pricing.USD(500),
			Components: []string{"alpha", "alpha", "beta"},
			Group:      catalog.GroupCore,
		},
	}
}

func TestNew_Valid(t *testing.T) {
	reg, err := catalog.New(fixtureTable())
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Count())
}

func TestNew_DuplicateID(t *testing.T) {
	table := fixtureTable()
	table = append(table, catalog.Capability{
		ID: "alpha", WirePath: "/dup", HTTPVerb: "GET", Name: "Dup",
		BasePrice: pricing.USD(0), DisplayPrice: pricing.USD(0),
	})

	_, err := catalog.New(table)
	assert.ErrorIs(t, err, catalog.ErrDuplicateID)
}

func TestNew_AmbiguousAlias(t *testing.T) {
	table := fixtureTable()
	table[1].Aliases = []string{"alpha_tool"} // already claimed by alpha

	_, err := catalog.New(table)
	assert.ErrorIs(t, err, catalog.ErrAmbiguousAlias)
}

func TestNew_NegativePrice(t *testing.T) {
	table := fixtureTable()
	table[0].BasePrice = pricing.USD(-1)

	_, err := catalog.New(table)
	assert.ErrorIs(t, err, catalog.ErrNegativePrice)
}

func TestNew_AggregateUnknownComponent(t *testing.T) {
	table := fixtureTable()
	table[2].Components = []string{"alpha", "ghost"}

	_, err := catalog.New(table)
	assert.ErrorIs(t, err, catalog.ErrUnknownComponent)
}

func TestNew_AggregateMismatch(t *testing.T) {
	table := fixtureTable()
	table[2].BasePrice = pricing.USD(999)

	_, err := catalog.New(table)
	assert.ErrorIs(t, err, catalog.ErrAggregateMismatch)
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := catalog.New(fixtureTable())
	require.NoError(t, err)

	c, ok := reg.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "Alpha", c.Name)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_ResolveID(t *testing.T) {
	reg, err := catalog.New(fixtureTable())
	require.NoError(t, err)

	assert.Equal(t, "alpha", reg.ResolveID("alpha_tool"))
	// Unknown candidates pass through unchanged for the Registry to reject.
	assert.Equal(t, "whatever", reg.ResolveID("whatever"))
	assert.Equal(t, "alpha", reg.ResolveID("alpha"))
}

func TestRegistry_Prices(t *testing.T) {
	reg, err := catalog.New(fixtureTable())
	require.NoError(t, err)

	base, display, ok := reg.Prices("bundle")
	require.True(t, ok)
	assert.Equal(t, int64(400), base.AmountMinor)
	assert.Equal(t, int64(500), display.AmountMinor)

	_, _, ok = reg.Prices("missing")
	assert.False(t, ok)
}

func TestRegistry_HashDeterministic(t *testing.T) {
	reg1, err := catalog.New(fixtureTable())
	require.NoError(t, err)
	reg2, err := catalog.New(fixtureTable())
	require.NoError(t, err)

	h1, err := reg1.Hash()
	require.NoError(t, err)
	h2, err := reg2.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// A price change must show in the hash.
	table := fixtureTable()
	table[0].BasePrice = pricing.USD(101)
	table[0].DisplayPrice = pricing.USD(151)
	reg3, err := catalog.New(table)
	require.NoError(t, err)
	h3, err := reg3.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestRegistry_ListIsACopy(t *testing.T) {
	reg, err := catalog.New(fixtureTable())
	require.NoError(t, err)

	list := reg.List()
	list[0].Name = "mutated"

	c, _ := reg.Lookup("alpha")
	assert.Equal(t, "Alpha", c.Name)
}
