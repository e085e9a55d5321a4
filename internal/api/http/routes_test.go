package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akozlov/weather-archive/internal/archive"
	"github.com/akozlov/weather-archive/internal/metrics"
	"github.com/akozlov/weather-archive/internal/store"
)

// Collectors register on the process-global prometheus registry, so the
// test binary creates exactly one.
var testMetrics = metrics.NewCollector("weather_archive_test")

func newTestApp() *fiber.App {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }
	at := func(d, h int) time.Time {
		return time.Date(2020, time.January, d, h, 0, 0, 0, time.UTC)
	}

	series := archive.NewSeries([]archive.Observation{
		{Timestamp: at(15, 9), Temperature: f(-4), Pressure: f(998)},
		{Timestamp: at(15, 12), Temperature: f(-2), Pressure: f(996), WeatherPrimary: s("snow")},
		{Timestamp: at(16, 12), Temperature: f(1), Pressure: f(1001)},
	})

	svc := archive.NewService(store.NewSeriesStore(series), archive.YearRange{Min: 2005, Max: 2024})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": true, "message": err.Error()})
		},
	})
	RegisterRoutes(app, svc, testMetrics)
	return app
}

func TestReportValidationFailures(t *testing.T) {
	app := newTestApp()

	// Missing month should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/report?year=2020&day=15&hour=12&minute=0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Day with three digits should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/report?year=2020&month=1&day=015&hour=12&minute=0", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestReportExactMatch(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report?year=2020&month=1&day=15&hour=12&minute=0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var report archive.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if !report.Resolved.Exact {
		t.Fatalf("expected an exact match")
	}
	if report.Weather != "snow" {
		t.Fatalf("expected weather %q, got %q", "snow", report.Weather)
	}
	if len(report.DailyMeans) != 2 {
		t.Fatalf("expected 2 daily means, got %d", len(report.DailyMeans))
	}
}

func TestReportMonthWithoutData(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/report?year=2020&month=2&day=1&hour=0&minute=0", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestMonthlyAndDailyEndpoints(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/monthly?year=2020&month=1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/daily?year=2020&month=1&day=15", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	// A request past the archive's end is rejected, not forecast.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/report?year=2020&month=1&day=31&hour=23&minute=59", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}
