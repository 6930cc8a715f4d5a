package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"crimeboard/internal/config"
	"crimeboard/internal/engine"
	"crimeboard/internal/models"
)

func testConfig(dataPath string) *config.Config {
	return &config.Config{
		DataPath:    dataPath,
		ListenAddr:  ":0",
		YearColor:   "royalblue",
		RegionColor: "indianred",
	}
}

func testDataset(t *testing.T) *engine.Dataset {
	t.Helper()
	frame := &engine.Frame{
		Columns: []string{"Location", "Robbery", "Assault"},
		Rows: [][]string{
			{"Texas2017", "120", "340"},
			{"Ohio2018", "80", "15"},
			{"Texas2019", "60", "22"},
		},
	}
	ds := engine.NormalizeSchema(frame)
	ds.FinalizeMetrics()
	return ds
}

func newTestServer(t *testing.T, ds *engine.Dataset, cfg *config.Config) *echo.Echo {
	t.Helper()
	e := echo.New()
	h := NewHandler(cfg, zap.NewNop())
	if ds != nil {
		h.SetDataset(ds)
	}
	h.RegisterRoutes(e)
	return e
}

func TestDataRoutesUnavailableBeforeLoad(t *testing.T) {
	e := newTestServer(t, nil, testConfig("unused.csv"))

	for _, path := range []string{"/api/summary", "/api/top5"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s before load: expected 503, got %d", path, rec.Code)
		}
	}
}

func TestGetSummary(t *testing.T) {
	e := newTestServer(t, testDataset(t), testConfig("unused.csv"))

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var s models.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.RowCount != 3 {
		t.Errorf("RowCount: expected 3, got %d", s.RowCount)
	}
	if len(s.Years) != 3 || s.Years[0] != 2017 {
		t.Errorf("Years: got %v", s.Years)
	}
	if len(s.Regions) != 2 || s.Regions[0] != "Ohio" {
		t.Errorf("Regions: got %v", s.Regions)
	}
}

func TestGetTopFive(t *testing.T) {
	e := newTestServer(t, testDataset(t), testConfig("unused.csv"))

	req := httptest.NewRequest(http.MethodGet, "/api/top5?year=2017", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var cd models.ChartData
	if err := json.Unmarshal(rec.Body.Bytes(), &cd); err != nil {
		t.Fatal(err)
	}
	if len(cd.Labels) != 5 || len(cd.Values) != 5 {
		t.Fatalf("Expected exactly 5 labels and values, got %d/%d", len(cd.Labels), len(cd.Values))
	}
	if cd.Labels[0] != "Assault" || cd.Values[0] != 340 {
		t.Errorf("Rank 1 for 2017: expected Assault=340, got %s=%v", cd.Labels[0], cd.Values[0])
	}
	if cd.Title != "Top 5 Crimes in Year 2017" || cd.Color != "royalblue" {
		t.Errorf("Title/Color: got %q / %q", cd.Title, cd.Color)
	}
}

func TestUpdateYearRendersPlot(t *testing.T) {
	e := newTestServer(t, testDataset(t), testConfig("unused.csv"))

	form := url.Values{"year": {"2018"}}
	req := httptest.NewRequest(http.MethodPost, "/update_year", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp models.PlotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.PlotHTML, "Top 5 Crimes in Year 2018") {
		t.Error("Plot HTML missing chart title")
	}
	if !strings.Contains(resp.PlotHTML, "Robbery") {
		t.Error("Plot HTML missing metric label")
	}
}

func TestUpdateYearMalformedFallsBackToAll(t *testing.T) {
	e := newTestServer(t, testDataset(t), testConfig("unused.csv"))

	// A malformed year disables the filter and the request still
	// succeeds with the unfiltered top five.
	form := url.Values{"year": {"twenty17"}}
	req := httptest.NewRequest(http.MethodPost, "/update_year", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp models.PlotResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.PlotHTML, "Top 5 Crimes in All Years") {
		t.Error("Expected the all-years title for a malformed filter")
	}
}

func TestReloadSwapsDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crimes.csv")
	if err := os.WriteFile(path, []byte("State,Year,Theft\nTexas,2017,5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	h := NewHandler(testConfig(path), zap.NewNop())
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Data routes are live now.
	req = httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Summary after reload: expected 200, got %d", rec.Code)
	}
}
