// Package swap converts caller-facing swap parameters (symbols and a
// human-readable amount) into wire-ready parameters (resolved mints and an
// integer base-unit amount). Every failure mode is an ordinary invalid
// result: either all fields resolve cleanly or none of them do.
package swap

import (
	"math"
	"strconv"
	"strings"
)

// Token describes one supported asset: its on-chain mint address and the
// number of decimal places in its base unit.
type Token struct {
	Mint     string
	Decimals int
}

// supportedTokens is keyed by uppercase symbol; lookups normalize case.
var supportedTokens = map[string]Token{
	"USDC": {Mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", Decimals: 6},
	"USDT": {Mint: "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", Decimals: 6},
	"SOL":  {Mint: "So11111111111111111111111111111111111111112", Decimals: 9},
	"JUP":  {Mint: "JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN", Decimals: 6},
	"BONK": {Mint: "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", Decimals: 5},
}

// Params are the caller-facing swap fields as extracted from text or
// supplied by an LLM.
type Params struct {
	FromToken string `json:"from_token"`
	ToToken   string `json:"to_token"`
	Amount    string `json:"amount"` // human-readable decimal, separators allowed
}

// Order is the wire-ready form: resolved mints plus the amount in base
// units of the source token, rendered as a decimal string.
type Order struct {
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	Amount     string `json:"amount"`
}

// LookupToken resolves a symbol case-insensitively.
func LookupToken(symbol string) (Token, bool) {
	t, ok := supportedTokens[strings.ToUpper(strings.TrimSpace(symbol))]
	return t, ok
}

// Normalize converts Params to an Order. The false return covers every
// invalid input — unknown symbol, unparseable or non-positive amount, or an
// amount that rounds to zero base units — with no partial conversion.
func Normalize(p Params) (Order, bool) {
	from, ok := LookupToken(p.FromToken)
	if !ok {
		return Order{}, false
	}
	to, ok := LookupToken(p.ToToken)
	if !ok {
		return Order{}, false
	}

	amount, ok := parseAmount(p.Amount)
	if !ok || amount <= 0 {
		return Order{}, false
	}

	baseUnits := math.Round(amount * math.Pow10(from.Decimals))
	// math.MaxInt64 rounds to exactly 2^63 as a float64, which would wrap
	// negative on conversion, so the boundary itself is out of range.
	if baseUnits <= 0 || baseUnits >= math.MaxInt64 {
		return Order{}, false
	}

	return Order{
		InputMint:  from.Mint,
		OutputMint: to.Mint,
		Amount:     strconv.FormatInt(int64(baseUnits), 10),
	}, true
}

// parseAmount accepts a decimal with optional thousands separators
// ("12,345.6"). Non-finite values are invalid.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
