package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// Merged-column heuristic: a column is a concatenated Region+Year (like
// "Texas2017") when at least mergedMatchMin of its first mergedSampleSize
// cells end in a non-digit run followed by exactly four digits. Only the
// leftmost qualifying column is ever split.
const (
	mergedSampleSize = 30
	mergedMatchMin   = 3
)

var (
	mergedProbe = regexp.MustCompile(`\D+\d{4}$`)
	mergedSplit = regexp.MustCompile(`^(.+?)(\d{4})$`)
)

type column struct {
	name  string
	cells []string
}

// NormalizeSchema repairs a raw Frame into a Dataset: headers trimmed,
// placeholder and empty columns dropped, a merged Region+Year column split,
// dimension columns typed, and sequential IDs assigned. It never fails; a
// malformed frame degrades to a Dataset with IDs only.
func NormalizeSchema(f *Frame) *Dataset {
	cols := usableColumns(f)
	ds := &Dataset{}

	// Merged Region+Year detection, first match wins.
	if idx := findMergedColumn(cols); idx >= 0 {
		ds.Regions, ds.Years = splitMerged(cols[idx].cells)
		ds.HasRegion, ds.HasYear = true, true
		cols = append(cols[:idx], cols[idx+1:]...)
		// The split supersedes same-named dimension columns so at most
		// one Region and one Year survive.
		cols = dropNamed(cols, "Region", "State", "Year")
	}

	// Adopt pre-existing dimension columns.
	for i := 0; i < len(cols); {
		c := cols[i]
		switch {
		case !ds.HasYear && c.name == "Year":
			ds.HasYear = true
			ds.Years = coerceYears(c.cells)
		case !ds.HasRegion && (c.name == "Region" || c.name == "State"):
			ds.HasRegion = true
			ds.Regions = trimAll(c.cells)
		default:
			i++
			continue
		}
		cols = append(cols[:i], cols[i+1:]...)
	}

	// Sequential IDs 1..N over the final row order.
	ds.IDs = make([]int, len(f.Rows))
	for i := range ds.IDs {
		ds.IDs[i] = i + 1
	}

	// Everything left is a metric candidate, pending numeric coercion.
	for _, c := range cols {
		ds.MetricNames = append(ds.MetricNames, c.name)
		ds.raw = append(ds.raw, c.cells)
	}
	return ds
}

// usableColumns trims header names and drops placeholder ("Unnamed...",
// blank) columns as well as columns with no values at all.
func usableColumns(f *Frame) []column {
	cols := make([]column, 0, len(f.Columns))
	for j, name := range f.Columns {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "Unnamed") {
			continue
		}
		cells := make([]string, len(f.Rows))
		empty := true
		for i, row := range f.Rows {
			cells[i] = row[j]
			if strings.TrimSpace(row[j]) != "" {
				empty = false
			}
		}
		if empty && len(f.Rows) > 0 {
			continue
		}
		cols = append(cols, column{name: name, cells: cells})
	}
	return cols
}

func findMergedColumn(cols []column) int {
	for j, c := range cols {
		sample := c.cells
		if len(sample) > mergedSampleSize {
			sample = sample[:mergedSampleSize]
		}
		hits := 0
		for _, v := range sample {
			if mergedProbe.MatchString(v) {
				hits++
			}
		}
		if hits >= mergedMatchMin {
			return j
		}
	}
	return -1
}

// splitMerged extracts the leading prefix as the region and the trailing
// four digits as the year. Cells that do not fit the pattern yield an
// empty region and a missing year.
func splitMerged(cells []string) (regions []string, years []float64) {
	regions = make([]string, len(cells))
	years = make([]float64, len(cells))
	for i, v := range cells {
		m := mergedSplit.FindStringSubmatch(v)
		if m == nil {
			years[i] = missingYear()
			continue
		}
		regions[i] = strings.TrimSpace(m[1])
		y, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			y = missingYear()
		}
		years[i] = y
	}
	return regions, years
}

func coerceYears(cells []string) []float64 {
	years := make([]float64, len(cells))
	for i, v := range cells {
		y, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			y = missingYear()
		}
		years[i] = y
	}
	return years
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, v := range cells {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func dropNamed(cols []column, names ...string) []column {
	out := cols[:0]
	for _, c := range cols {
		drop := false
		for _, n := range names {
			if c.name == n {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, c)
		}
	}
	return out
}
