package engine

import "crimeboard/internal/models"

// axisHeadroom leaves room above the tallest bar.
const axisHeadroom = 1.2

// BuildChartData converts a ranked top-five into the renderable descriptor
// consumed by the chart shell. The axis bound is 1.2× the tallest value,
// with a floor of 1 so an all-zero chart still has a visible axis.
func BuildChartData(entries []RankedEntry, title, color string) *models.ChartData {
	cd := &models.ChartData{
		Labels: make([]string, len(entries)),
		Values: make([]float64, len(entries)),
		Title:  title,
		Color:  color,
	}
	maxVal := 0.0
	for i, e := range entries {
		cd.Labels[i] = e.Label
		cd.Values[i] = e.Value
		if e.Value > maxVal {
			maxVal = e.Value
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	cd.MaxY = maxVal * axisHeadroom
	return cd
}
