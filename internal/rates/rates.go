package rates

import "strings"

// HoursPerDay is the standard working day used whenever a daily figure
// is derived from an hourly one.
const HoursPerDay = 8

// Table maps a trade name to its agency rate in pence per hour. It is an
// explicit value passed into whatever needs costing so tests and tenants
// can swap it out.
type Table struct {
	hourly map[string]int
}

// defaultHourly holds the standard agency rates. Keys are stored
// lower-cased; lookups are case-insensitive.
var defaultHourly = map[string]int{
	"general labourer": 1500,
	"groundworker":     1800,
	"bricklayer":       2200,
	"carpenter":        2300,
	"joiner":           2300,
	"plasterer":        2100,
	"plumber":          2600,
	"electrician":      2800,
	"roofer":           2200,
	"scaffolder":       2000,
	"painter":          1800,
	"decorator":        1800,
	"tiler":            2100,
	"steel fixer":      2400,
	"site manager":     3500,
}

// Default returns the standard rate table.
func Default() Table {
	return Table{hourly: defaultHourly}
}

// New builds a table from the given trade -> pence-per-hour mapping.
func New(hourly map[string]int) Table {
	normalized := make(map[string]int, len(hourly))
	for trade, rate := range hourly {
		normalized[normalizeTrade(trade)] = rate
	}
	return Table{hourly: normalized}
}

// RateFor returns the hourly rate in pence for a trade. The second return
// is false for unrecognized trades; callers fall back to manual entry.
func (t Table) RateFor(trade string) (int, bool) {
	rate, ok := t.hourly[normalizeTrade(trade)]
	return rate, ok
}

// DailyRate returns the pence per standard 8-hour day for a trade.
func (t Table) DailyRate(trade string) (int, bool) {
	rate, ok := t.RateFor(trade)
	if !ok {
		return 0, false
	}
	return rate * HoursPerDay, true
}

// Trades lists the known trade names.
func (t Table) Trades() []string {
	trades := make([]string, 0, len(t.hourly))
	for trade := range t.hourly {
		trades = append(trades, trade)
	}
	return trades
}

func normalizeTrade(trade string) string {
	return strings.ToLower(strings.TrimSpace(trade))
}
