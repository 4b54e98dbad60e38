package intent

import "regexp"

// reRule builds a Rule whose predicate is a single compiled regexp. Source
// carries the pattern for vetting and debug output.
func reRule(target, pattern string, extract func(string) map[string]string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Target:  target,
		Source:  pattern,
		Match:   re.MatchString,
		Extract: extract,
	}
}

// DefaultRules returns the shipped routing table. Order is the tie-break
// policy: the screener family and the bundled brief are phrased narrowly
// and sit above the broad signal/news/swap rules that would otherwise
// swallow them. Reordering entries changes routing behavior and must be
// covered by the regression tests in matcher_test.go.
func DefaultRules() []Rule {
	return []Rule{
		reRule("screener-trending",
			`\btrending\b.*\b(memecoins?|meme\s+coins?|tokens?|coins?)\b|\b(memecoins?|tokens?)\b.*\btrending\b`,
			nil),
		reRule("screener-new",
			`\b(new|fresh|latest)\b.*\b(memecoins?|meme\s+coins?|mints?|listings?)\b`,
			nil),
		reRule("screener-volume",
			`\bvolume\b.*\b(screener|leaders?|memecoins?|tokens?)\b|\b(top|highest)\b.*\bvolume\b`,
			nil),
		reRule("market-brief",
			`\b(market|daily)\s+brief\b|\bbrief\s+me\b`,
			nil),
		// Broad "swap" phrasing deliberately sits above the partner-specific
		// wording ("jupiter order"); see the rule-order note in DESIGN.md.
		reRule("jupiter-swap-order",
			`\bswap\b`,
			ExtractSwap),
		reRule("jupiter-swap-order",
			`\bjupiter\b.*\border\b`,
			ExtractSwap),
		reRule("signal",
			`\bsignal\b`,
			ExtractToken),
		reRule("pyth-price",
			`\bprice\s+(of|for|check)\b`,
			ExtractToken),
		reRule("news",
			`\bnews\b|\bheadlines?\b`,
			ExtractTicker),
	}
}
