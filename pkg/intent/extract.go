package intent

import (
	"regexp"
	"strings"
)

// noSubject is the sentinel an extractor produces when the text triggers a
// capability but names no specific subject. The matcher strips it before
// returning; it must never reach a wire call.
const noSubject = "general"

var (
	newsAboutRe  = regexp.MustCompile(`\bnews\s+(?:about|on|for)\s+\$?([a-z0-9]{2,10})\b`)
	beforeNewsRe = regexp.MustCompile(`\b\$?([a-z0-9]{2,10})\s+news\b`)

	swapRe = regexp.MustCompile(`\bswap\s+([0-9][0-9,]*(?:\.[0-9]+)?)\s+\$?([a-z]{2,10})\s+(?:to|for|into)\s+\$?([a-z]{2,10})\b`)
)

// newsStopwords are words that sit next to "news" without being a subject
// ("latest news", "get news", "the news").
var newsStopwords = map[string]bool{
	"the": true, "some": true, "any": true, "latest": true, "get": true,
	"me": true, "today": true, "crypto": true, "market": true, "recent": true,
	"trending": true, "breaking": true,
}

// ExtractTicker finds the ticker adjacent to a news-triggering phrase and
// uppercases it. When no subject is named it returns the no-subject
// sentinel, which downstream treats as "omit the parameter".
func ExtractTicker(text string) map[string]string {
	if m := newsAboutRe.FindStringSubmatch(text); m != nil && !newsStopwords[m[1]] {
		return map[string]string{"ticker": strings.ToUpper(m[1])}
	}
	if m := beforeNewsRe.FindStringSubmatch(text); m != nil && !newsStopwords[m[1]] {
		return map[string]string{"ticker": strings.ToUpper(m[1])}
	}
	return map[string]string{"ticker": noSubject}
}

// tokenNames maps every recognized asset spelling to its canonical full
// name. 3-letter symbols resolve through the same table.
var tokenNames = map[string]string{
	"bitcoin":  "bitcoin",
	"btc":      "bitcoin",
	"ethereum": "ethereum",
	"eth":      "ethereum",
	"solana":   "solana",
	"sol":      "solana",
	"jupiter":  "jupiter",
	"jup":      "jupiter",
	"bonk":     "bonk",
	"dogecoin": "dogecoin",
	"doge":     "dogecoin",
}

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// ExtractToken scans for the first recognized asset name or symbol in the
// text and returns its canonical name. Unlike the ticker extractor there is
// no sentinel: nothing recognized means no parameter at all.
func ExtractToken(text string) map[string]string {
	for _, word := range wordRe.FindAllString(text, -1) {
		if canonical, ok := tokenNames[word]; ok {
			return map[string]string{"token": canonical}
		}
	}
	return nil
}

// ExtractSwap parses "swap <amount> <sym> to/for/into <sym>" phrasing into
// raw caller-facing parameters. The swap normalizer, not this extractor,
// validates symbols and amounts; here absence simply means no parameters.
func ExtractSwap(text string) map[string]string {
	m := swapRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return map[string]string{
		"amount":     m[1],
		"from_token": m[2],
		"to_token":   m[3],
	}
}
