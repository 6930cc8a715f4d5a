package api

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crimeboard/internal/config"
	"crimeboard/internal/engine"
	"crimeboard/internal/models"
	"crimeboard/internal/render"
)

// Handler serves filter requests off the shared dataset. The dataset is
// published through an atomic pointer: nil until the initial background
// load finishes, replaced wholesale on reload, never mutated in place.
type Handler struct {
	ds  atomic.Pointer[engine.Dataset]
	cfg *config.Config
	log *zap.Logger
}

func NewHandler(cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{cfg: cfg, log: log}
}

// SetDataset publishes a freshly built dataset to all future requests.
func (h *Handler) SetDataset(ds *engine.Dataset) { h.ds.Store(ds) }

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/summary", h.GetSummary)
	e.GET("/api/top5", h.GetTopFive)
	e.POST("/api/reload", h.Reload)
	e.POST("/update_year", h.UpdateYear)
	e.POST("/update_state", h.UpdateRegion)
}

func (h *Handler) dataset() (*engine.Dataset, error) {
	ds := h.ds.Load()
	if ds == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset is still loading")
	}
	return ds, nil
}

// --- HANDLERS ---

func (h *Handler) GetSummary(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ds.Summary())
}

// GetTopFive returns the chart descriptor as JSON. At most one of the
// year/state selectors is expected; "All" or absence means no filter.
func (h *Handler) GetTopFive(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	year := c.QueryParam("year")
	region := c.QueryParam("state")
	f := engine.ParseFilter(year, region, h.log)

	title := "Top 5 Crimes"
	color := h.cfg.YearColor
	switch {
	case f.Year != nil:
		title = fmt.Sprintf("Top 5 Crimes in Year %s", strings.TrimSpace(year))
	case f.Region != nil:
		title = fmt.Sprintf("Top 5 Crimes in %s", region)
		color = h.cfg.RegionColor
	}

	cd := engine.BuildChartData(ds.TopFive(f), title, color)
	return c.JSON(http.StatusOK, cd)
}

func (h *Handler) UpdateYear(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	year := c.FormValue("year")
	f := engine.ParseFilter(year, "", h.log)

	title := "Top 5 Crimes in All Years"
	if f.Year != nil {
		title = fmt.Sprintf("Top 5 Crimes in Year %s", strings.TrimSpace(year))
	}
	return h.renderPlot(c, ds, f, title, h.cfg.YearColor)
}

func (h *Handler) UpdateRegion(c echo.Context) error {
	ds, err := h.dataset()
	if err != nil {
		return err
	}
	region := c.FormValue("state")
	f := engine.ParseFilter("", region, h.log)

	title := "Top 5 Crimes in All States"
	if f.Region != nil {
		title = fmt.Sprintf("Top 5 Crimes in %s", region)
	}
	return h.renderPlot(c, ds, f, title, h.cfg.RegionColor)
}

// Reload re-runs the whole pipeline and swaps the new dataset in
// atomically; in-flight requests keep reading the old one.
func (h *Handler) Reload(c echo.Context) error {
	ds, err := engine.LoadDataset(h.cfg.DataPath, h.log)
	if err != nil {
		h.log.Error("reload failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "reload failed")
	}
	h.SetDataset(ds)
	return c.JSON(http.StatusOK, map[string]int{"rows": ds.Len()})
}

func (h *Handler) renderPlot(c echo.Context, ds *engine.Dataset, f engine.Filter, title, color string) error {
	cd := engine.BuildChartData(ds.TopFive(f), title, color)
	html, err := render.BarHTML(cd)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return c.JSON(http.StatusOK, models.PlotResponse{PlotHTML: html})
}
