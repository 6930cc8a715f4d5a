package engine

import (
	"math"
	"strconv"
	"strings"
)

// FinalizeMetrics coerces every candidate metric column to numbers and
// settles the authoritative aggregation set.
//
// Idempotent: re-running on an already-coerced dataset leaves the values
// untouched and re-derives the same MetricCols.
func (ds *Dataset) FinalizeMetrics() {
	if ds.raw != nil {
		ds.Metrics = make([][]float64, len(ds.MetricNames))
		for i, cells := range ds.raw {
			ds.Metrics[i] = coerceColumn(cells)
		}
		ds.raw = nil
	}

	// Columns whose total is exactly zero carry no signal.
	cols := make([]string, 0, len(ds.MetricNames))
	for i, name := range ds.MetricNames {
		if columnSum(ds.Metrics[i]) != 0 {
			cols = append(cols, name)
		}
	}

	// Prefer showing zero-valued data over no data at all.
	if len(cols) == 0 {
		cols = append(cols, ds.MetricNames...)
	}
	ds.MetricCols = cols
}

func coerceColumn(cells []string) []float64 {
	vals := make([]float64, len(cells))
	for i, v := range cells {
		vals[i] = coerceCell(v)
	}
	return vals
}

// coerceCell turns "1,234" into 1234. Counts are non-negative; an empty
// cell, an unparseable value or anything non-finite becomes zero.
func coerceCell(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func columnSum(vals []float64) float64 {
	var total float64
	for _, v := range vals {
		total += v
	}
	return total
}
