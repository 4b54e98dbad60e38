package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// GroupScreeners is the dynamically detected group for the screener family.
const GroupScreeners = "screeners"

// paramsHints documents expected parameters for the capabilities that take
// any. Hand-authored, keyed by id; deliberately independent of the match
// rules so LLM-facing text can evolve without touching routing.
var paramsHints = map[string]string{
	"signal":             "token (optional): canonical asset name, e.g. bitcoin",
	"news":               "ticker (optional): uppercase symbol, e.g. ETH; omit for general headlines",
	"jupiter-swap-order": "from_token, to_token: supported symbols; amount: human-readable decimal, e.g. 1,000.5",
	"pyth-price":         "token (optional): canonical asset name, e.g. solana",
}

// Selection is one row of the flattened list used for automated
// (LLM-driven) capability selection.
type Selection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ParamsHint  string `json:"params_hint,omitempty"`
}

// SelectionList returns every capability, internal ones included, with its
// usage hint. Computed on demand; the Registry holds no projection state.
func (r *Registry) SelectionList() []Selection {
	out := make([]Selection, 0, len(r.ordered))
	for _, c := range r.ordered {
		out = append(out, Selection{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			ParamsHint:  paramsHints[c.ID],
		})
	}
	return out
}

// Briefing renders the grouped human-readable capability list used to brief
// an LLM or end user. Internal capabilities are excluded; the screener
// family is detected by id prefix and grouped regardless of Group field.
// Capabilities without a group (the field is optional in loaded catalogs)
// land in a trailing "other" bucket.
func (r *Registry) Briefing() string {
	groups := map[string][]Capability{}
	for _, c := range r.ordered {
		if c.Internal {
			continue
		}
		g := c.Group
		if strings.HasPrefix(c.ID, ScreenerPrefix) {
			g = GroupScreeners
		} else if g == "" {
			g = "other"
		}
		groups[g] = append(groups[g], c)
	}

	// Fixed group order first, any stragglers alphabetically after.
	order := []string{GroupCore, GroupScreeners, GroupPartner}
	seen := map[string]bool{GroupCore: true, GroupScreeners: true, GroupPartner: true}
	var extra []string
	for g := range groups {
		if !seen[g] {
			extra = append(extra, g)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	var b strings.Builder
	for _, g := range order {
		caps := groups[g]
		if len(caps) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s:\n", strings.ToUpper(g[:1])+g[1:])
		for _, c := range caps {
			fmt.Fprintf(&b, "- %s: %s\n", c.Name, c.Description)
		}
	}
	return b.String()
}
