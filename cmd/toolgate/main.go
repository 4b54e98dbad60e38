// Command toolgate routes a free-text utterance to a priced capability and
// prints the selection, wire parameters, and quote as JSON. It is the thin
// host around the pure dispatch engine; the actual HTTP call and payment
// handshake belong to whoever consumes the output.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/quasarlabs/toolgate/pkg/catalog"
	"github.com/quasarlabs/toolgate/pkg/config"
	"github.com/quasarlabs/toolgate/pkg/intent"
	"github.com/quasarlabs/toolgate/pkg/metering"
	"github.com/quasarlabs/toolgate/pkg/pricing"
	"github.com/quasarlabs/toolgate/pkg/swap"
)

func main() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run is the entrypoint, split from main for testing.
func Run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	setupLogging(cfg.LogLevel, stderr)

	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	reg, err := buildRegistry(cfg)
	if err != nil {
		slog.Error("catalog construction failed", "error", err)
		return 1
	}

	switch args[0] {
	case "route":
		return runRoute(cfg, reg, args[1:], stdout, stderr)
	case "catalog":
		return runCatalog(reg, args[1:], stdout, stderr)
	case "vet":
		return runVet(cfg, reg, stdout)
	default:
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `usage:
  toolgate route <text>           route an utterance, print selection + quote
  toolgate catalog [--selection]  print the capability briefing or selection list
  toolgate vet                    report unreachable or dangling match rules`)
}

func setupLogging(level string, w io.Writer) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}

func buildRegistry(cfg *config.Config) (*catalog.Registry, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return catalog.Load(f)
}

func buildMatcher(cfg *config.Config, reg *catalog.Registry) (*intent.Matcher, error) {
	if cfg.RulesPath == "" {
		return intent.NewMatcher(reg, intent.DefaultRules())
	}
	f, err := os.Open(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return intent.LoadRules(f, reg)
}

// routeResult is the JSON the host layer consumes to perform the actual
// priced request.
type routeResult struct {
	Match        bool              `json:"match"`
	CapabilityID string            `json:"capability_id,omitempty"`
	Params       map[string]string `json:"params,omitempty"`
	WirePath     string            `json:"wire_path,omitempty"`
	HTTPVerb     string            `json:"http_verb,omitempty"`
	Price        *pricing.Quote    `json:"price,omitempty"`
	SwapOrder    *swap.Order       `json:"swap_order,omitempty"`
}

func runRoute(cfg *config.Config, reg *catalog.Registry, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "route: missing utterance")
		return 2
	}
	text := strings.Join(args, " ")

	matcher, err := buildMatcher(cfg, reg)
	if err != nil {
		slog.Error("matcher construction failed", "error", err)
		return 1
	}

	meter, cleanup, err := buildMeter(cfg)
	if err != nil {
		slog.Error("meter setup failed", "error", err)
		return 1
	}
	defer cleanup()

	result := routeResult{}
	sel, ok := matcher.Match(text)
	if !ok {
		recordEvent(meter, metering.NewEvent("", metering.KindNoMatch, 1, 0))
		return printJSON(stdout, result)
	}

	capability, _ := reg.Lookup(sel.CapabilityID)
	quote, _ := pricing.NewResolver(reg).PriceOf(sel.CapabilityID)

	result = routeResult{
		Match:        true,
		CapabilityID: sel.CapabilityID,
		Params:       sel.Params,
		WirePath:     capability.WirePath,
		HTTPVerb:     capability.HTTPVerb,
		Price:        &quote,
	}

	// Swap selections additionally get wire-ready parameters when the raw
	// ones normalize cleanly; an invalid swap is still a valid selection.
	if sel.CapabilityID == "jupiter-swap-order" && sel.Params != nil {
		order, ok := swap.Normalize(swap.Params{
			FromToken: sel.Params["from_token"],
			ToToken:   sel.Params["to_token"],
			Amount:    sel.Params["amount"],
		})
		if ok {
			result.SwapOrder = &order
		} else {
			slog.Warn("swap parameters did not normalize", "params", sel.Params)
		}
	}

	recordEvent(meter, metering.NewEvent(sel.CapabilityID, metering.KindSelection, 1, quote.Base.AmountMinor))
	return printJSON(stdout, result)
}

func runCatalog(reg *catalog.Registry, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	selection := fs.Bool("selection", false, "print the flattened selection list as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *selection {
		return printJSON(stdout, reg.SelectionList())
	}
	fmt.Fprint(stdout, reg.Briefing())
	return 0
}

func runVet(cfg *config.Config, reg *catalog.Registry, stdout io.Writer) int {
	rules := intent.DefaultRules()
	if cfg.RulesPath != "" {
		m, err := buildMatcher(cfg, reg)
		if err != nil {
			slog.Error("matcher construction failed", "error", err)
			return 1
		}
		rules = m.Rules()
	}

	findings := intent.Vet(reg, rules)
	if len(findings) == 0 {
		fmt.Fprintln(stdout, "rules ok")
		return 0
	}
	for _, f := range findings {
		fmt.Fprintf(stdout, "rule %d (%s): %s\n", f.Index, f.Target, f.Problem)
	}
	return 1
}

func buildMeter(cfg *config.Config) (metering.Meter, func(), error) {
	if cfg.MeterDB == "" {
		return nil, func() {}, nil
	}
	db, err := sql.Open("sqlite", cfg.MeterDB)
	if err != nil {
		return nil, func() {}, err
	}
	meter := metering.NewSQLMeter(db)
	if err := meter.Init(context.Background()); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	return meter, func() { db.Close() }, nil
}

func recordEvent(meter metering.Meter, event metering.Event) {
	if meter == nil {
		return
	}
	if err := meter.Record(context.Background(), event); err != nil {
		slog.Warn("metering record failed", "error", err)
	}
}

func printJSON(w io.Writer, v interface{}) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		slog.Error("encode failed", "error", err)
		return 1
	}
	return 0
}
