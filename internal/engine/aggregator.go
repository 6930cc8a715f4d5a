package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FilterAll is the request sentinel meaning "no restriction".
const FilterAll = "All"

// topN is the fixed size of the ranked output.
const topN = 5

// Filter selects a row subset of the dataset. A nil field bypasses that
// dimension entirely. Filtering subsets rows only; it never renumbers IDs
// or changes the column set.
type Filter struct {
	Year   *float64
	Region *string
}

// ParseFilter maps raw request selectors onto a Filter. Empty values and
// the "All" sentinel disable a dimension; a malformed year is logged and
// disables the year filter rather than failing the request.
func ParseFilter(year, region string, log *zap.Logger) Filter {
	var f Filter
	if y := strings.TrimSpace(year); y != "" && y != FilterAll {
		if v, err := strconv.ParseFloat(y, 64); err == nil {
			f.Year = &v
		} else {
			log.Warn("ignoring malformed year filter", zap.String("year", year))
		}
	}
	if r := region; r != "" && r != FilterAll {
		f.Region = &r
	}
	return f
}

func (ds *Dataset) rowMatches(i int, f Filter) bool {
	if f.Year != nil {
		// A missing year is NaN and never compares equal.
		if !ds.HasYear || ds.Years[i] != *f.Year {
			return false
		}
	}
	if f.Region != nil {
		if !ds.HasRegion || ds.Regions[i] != *f.Region {
			return false
		}
	}
	return true
}

// RankedEntry is one labeled category total in the top-five output.
type RankedEntry struct {
	Label string
	Value float64
}

// TopFive sums every metric column over the filtered row subset and
// returns exactly five entries sorted by value descending.
func (ds *Dataset) TopFive(f Filter) []RankedEntry {
	ranked := ds.metricSums(f)
	sortByValueDesc(ranked)

	picked := pickTopFive(ranked)
	picked = padPlaceholders(picked)

	// Whichever rule produced the list, the result is value-descending
	// and exactly five entries long.
	sortByValueDesc(picked)
	return picked[:topN]
}

// topFiveRules is the layered selection policy, applied in order: the
// first rule that yields a result wins.
//
//	nonZeroRule  — five or more informative columns: rank only those.
//	fullListRule — thin data: surface zero-valued columns instead of
//	               showing fewer than five bars.
//
// padPlaceholders then fills any remaining slots with NoData entries.
var topFiveRules = []func(ranked []RankedEntry) []RankedEntry{
	nonZeroRule,
	fullListRule,
}

func pickTopFive(ranked []RankedEntry) []RankedEntry {
	for _, rule := range topFiveRules {
		if picked := rule(ranked); picked != nil {
			return picked
		}
	}
	return nil
}

func nonZeroRule(ranked []RankedEntry) []RankedEntry {
	nonZero := make([]RankedEntry, 0, len(ranked))
	for _, e := range ranked {
		if e.Value != 0 {
			nonZero = append(nonZero, e)
		}
	}
	if len(nonZero) < topN {
		return nil
	}
	return nonZero[:topN]
}

func fullListRule(ranked []RankedEntry) []RankedEntry {
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	// Never nil, so this rule terminates the cascade even for an empty
	// metric set; padding supplies the placeholders.
	return append([]RankedEntry{}, ranked...)
}

func padPlaceholders(entries []RankedEntry) []RankedEntry {
	for i := 1; len(entries) < topN; i++ {
		entries = append(entries, RankedEntry{Label: fmt.Sprintf("NoData%d", i)})
	}
	return entries
}

func (ds *Dataset) metricSums(f Filter) []RankedEntry {
	sums := make([]RankedEntry, 0, len(ds.MetricCols))
	for _, name := range ds.MetricCols {
		col := ds.Metrics[ds.metricIndex(name)]
		var total float64
		for i := range col {
			if ds.rowMatches(i, f) {
				total += col[i]
			}
		}
		sums = append(sums, RankedEntry{Label: name, Value: total})
	}
	return sums
}

// sortByValueDesc is stable so ties keep their original column order.
func sortByValueDesc(entries []RankedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
}
