package catalog

import "github.com/quasarlabs/toolgate/pkg/pricing"

// The shipped capability table. Prices are USD minor units at scale 4
// (100 = $0.01). market-brief is an aggregate: its stored prices are the
// literal sum of its components and New verifies the equality on every
// construction.
var defaultTable = []Capability{
	{
		ID:           "signal",
		WirePath:     "/api/tools/signal",
		HTTPVerb:     "POST",
		BasePrice:    pricing.USD(500),
		DisplayPrice: pricing.USD(500),
		Name:         "Trading Signal",
		Description:  "Short-horizon trade signal for a named asset",
		Aliases:      []string{"trading_signal"},
		Group:        GroupCore,
	},
	{
		ID:           "news",
		WirePath:     "/api/tools/news",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(300),
		DisplayPrice: pricing.USD(300),
		Name:         "Market News",
		Description:  "Latest headlines, optionally focused on one ticker",
		Aliases:      []string{"market_news"},
		Group:        GroupCore,
	},
	{
		ID:           "screener-trending",
		WirePath:     "/api/tools/screener/trending",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(200),
		DisplayPrice: pricing.USD(250),
		Name:         "Trending Screener",
		Description:  "Memecoins ranked by social and on-chain momentum",
		Aliases:      []string{"screener_trending"},
		Group:        GroupCore,
	},
	{
		ID:           "screener-new",
		WirePath:     "/api/tools/screener/new",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(200),
		DisplayPrice: pricing.USD(250),
		Name:         "New Listings Screener",
		Description:  "Freshly minted tokens with early liquidity",
		Aliases:      []string{"screener_new"},
		Group:        GroupCore,
	},
	{
		ID:           "screener-volume",
		WirePath:     "/api/tools/screener/volume",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(200),
		DisplayPrice: pricing.USD(250),
		Name:         "Volume Screener",
		Description:  "Tokens leading by 24h traded volume",
		Aliases:      []string{"screener_volume"},
		Group:        GroupCore,
	},
	{
		ID:           "market-brief",
		WirePath:     "/api/tools/market-brief",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(1300), // signal + news + news + screener-trending
		DisplayPrice: pricing.USD(1350),
		Name:         "Market Brief",
		Description:  "Bundled daily brief: signal, double news pass, trending screen",
		Aliases:      []string{"market_brief", "daily_brief"},
		Group:        GroupCore,
		Components:   []string{"signal", "news", "news", "screener-trending"},
	},
	{
		ID:           "jupiter-swap-order",
		WirePath:     "/api/tools/jupiter/swap-order",
		HTTPVerb:     "POST",
		BasePrice:    pricing.USD(1000),
		DisplayPrice: pricing.USD(1000),
		Name:         "Jupiter Swap Order",
		Description:  "Builds an unsigned swap order via the Jupiter aggregator",
		Aliases:      []string{"jupiter_swap_order", "swap_order"},
		Group:        GroupPartner,
	},
	{
		ID:           "pyth-price",
		WirePath:     "/api/tools/pyth/price",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(100),
		DisplayPrice: pricing.USD(100),
		Name:         "Pyth Price Feed",
		Description:  "Spot price for a listed asset from the Pyth oracle",
		Aliases:      []string{"pyth_price"},
		Group:        GroupPartner,
	},
	{
		ID:           "health-ping",
		WirePath:     "/api/internal/ping",
		HTTPVerb:     "GET",
		BasePrice:    pricing.USD(0),
		DisplayPrice: pricing.USD(0),
		Name:         "Health Ping",
		Description:  "Internal liveness probe, never user-facing",
		Group:        GroupCore,
		Internal:     true,
	},
}

// Default returns the shipped production Registry. The table is validated
// on every call; a defect in the static data above panics at startup.
func Default() *Registry {
	return MustNew(defaultTable)
}
