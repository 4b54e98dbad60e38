package catalog_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/quasarlabs/toolgate/pkg/catalog"
)

// TestResolveID_PassThrough verifies the advisory-normalization property:
// any candidate outside the alias table comes back unchanged.
func TestResolveID_PassThrough(t *testing.T) {
	reg := catalog.Default()

	aliases := make(map[string]bool)
	for _, c := range reg.List() {
		for _, a := range c.Aliases {
			aliases[a] = true
		}
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("unknown candidates pass through unchanged", prop.ForAll(
		func(candidate string) bool {
			if aliases[candidate] {
				return true // known alias, resolution applies
			}
			return reg.ResolveID(candidate) == candidate
		},
		gen.AlphaString(),
	))

	properties.Property("resolution is idempotent", prop.ForAll(
		func(candidate string) bool {
			once := reg.ResolveID(candidate)
			return reg.ResolveID(once) == once
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
