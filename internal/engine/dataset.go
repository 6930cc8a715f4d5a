package engine

import (
	"math"
	"sort"

	"crimeboard/internal/models"
)

// Frame is the raw table exactly as it came off disk: ordered column names
// and string-typed cells. Rows are padded/truncated to the header width by
// the loader, so len(Rows[i]) == len(Columns) always holds.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Dataset holds the normalized table in Struct-of-Arrays format.
//
// All slices are row-parallel: IDs[i], Regions[i], Years[i] and
// Metrics[k][i] describe the same logical row. The Dataset is built once by
// NormalizeSchema + FinalizeMetrics and is read-only afterwards; filter
// requests never mutate it.
type Dataset struct {
	// Synthetic row identifier, contiguous 1..N in row order.
	IDs []int

	// Optional dimension columns.
	HasRegion bool
	Regions   []string
	HasYear   bool
	Years     []float64 // NaN marks a missing/unparseable year

	// Candidate metric columns in original left-to-right order.
	MetricNames []string
	Metrics     [][]float64 // parallel to MetricNames

	// Authoritative aggregation set, settled by FinalizeMetrics.
	// Subset of MetricNames, order-preserving.
	MetricCols []string

	// Raw string cells awaiting numeric coercion. Set by NormalizeSchema,
	// consumed (and cleared) by the first FinalizeMetrics call.
	raw [][]string
}

// Len returns the row count.
func (ds *Dataset) Len() int { return len(ds.IDs) }

// metricIndex maps a metric column name back to its slot in Metrics.
func (ds *Dataset) metricIndex(name string) int {
	for i, n := range ds.MetricNames {
		if n == name {
			return i
		}
	}
	return -1
}

// missingYear is the sentinel for an unparseable or absent year value.
// NaN compares unequal to everything, so missing years never match a filter.
func missingYear() float64 { return math.NaN() }

// Summary lists the distinct filter options present in the dataset along
// with the row count. Missing years and blank regions are not options.
func (ds *Dataset) Summary() models.Summary {
	s := models.Summary{
		Years:    []int{},
		Regions:  []string{},
		RowCount: ds.Len(),
	}
	if ds.HasYear {
		seen := make(map[int]bool)
		for _, y := range ds.Years {
			if math.IsNaN(y) {
				continue
			}
			if yi := int(y); !seen[yi] {
				seen[yi] = true
				s.Years = append(s.Years, yi)
			}
		}
		sort.Ints(s.Years)
	}
	if ds.HasRegion {
		seen := make(map[string]bool)
		for _, r := range ds.Regions {
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			s.Regions = append(s.Regions, r)
		}
		sort.Strings(s.Regions)
	}
	return s
}
