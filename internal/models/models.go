package models

// ChartData is the renderable descriptor handed to the chart shell: five
// labels, five values in the same order, a suggested axis bound, a title
// and a color token.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	MaxY   float64   `json:"max_y"`
	Title  string    `json:"title"`
	Color  string    `json:"color"`
}

// Summary describes the loaded dataset for the landing page: the available
// filter options plus the row count.
type Summary struct {
	Years    []int    `json:"years"`
	Regions  []string `json:"regions"`
	RowCount int      `json:"row_count"`
}

// PlotResponse wraps a rendered chart for the fragment-update endpoints.
type PlotResponse struct {
	PlotHTML string `json:"plot_html"`
}
