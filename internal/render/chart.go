package render

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"crimeboard/internal/models"
)

// BarHTML renders a chart descriptor as a self-contained echarts bar-chart
// document, ready to be injected into the dashboard page.
func BarHTML(cd *models.ChartData) (string, error) {
	data := make([]opts.BarData, len(cd.Values))
	for i, v := range cd.Values {
		data[i] = opts.BarData{Value: v}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: cd.Title}),
		charts.WithColorsOpts(opts.Colors{cd.Color}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Crime Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count", Max: cd.MaxY}),
	)
	bar.SetXAxis(cd.Labels).AddSeries("count", data)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("render bar chart: %w", err)
	}
	return buf.String(), nil
}
