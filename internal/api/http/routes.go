package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/akozlov/weather-archive/internal/archive"
	"github.com/akozlov/weather-archive/internal/metrics"
)

// RegisterRoutes wires the HTTP handlers into the Fiber app. Handlers only
// bind raw query strings and map typed errors; all validation and lookup
// semantics live in the archive package.
func RegisterRoutes(app *fiber.App, service *archive.Service, m *metrics.Collector) {
	v1 := app.Group("/api/v1")

	v1.Get("/report", instrument(m, "report", func(c *fiber.Ctx) error {
		raw := archive.RawQuery{
			Year:   c.Query("year"),
			Month:  c.Query("month"),
			Day:    c.Query("day"),
			Hour:   c.Query("hour"),
			Minute: c.Query("minute"),
		}

		q, err := service.ParseQuery(raw)
		if err != nil {
			return mapError(err)
		}

		report, err := service.Report(q)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(report)
	}))

	v1.Get("/monthly", instrument(m, "monthly", func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c, service.Years())
		if err != nil {
			return mapError(err)
		}

		monthly, err := service.Monthly(year, month)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(monthly)
	}))

	v1.Get("/daily", instrument(m, "daily", func(c *fiber.Ctx) error {
		year, month, err := parseYearMonth(c, service.Years())
		if err != nil {
			return mapError(err)
		}
		day, err := archive.ParseDay(c.Query("day"), year, int(month))
		if err != nil {
			return mapError(err)
		}

		series, err := service.Daily(year, month, day)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{
			"date":         time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
			"temperatures": series,
		})
	}))

	v1.Get("/coverage", instrument(m, "coverage", func(c *fiber.Ctx) error {
		first, last := service.Coverage()
		return c.JSON(fiber.Map{
			"first": first,
			"last":  last,
			"years": service.Years(),
		})
	}))
}

func parseYearMonth(c *fiber.Ctx, years archive.YearRange) (int, time.Month, error) {
	month, err := archive.ParseMonth(c.Query("month"))
	if err != nil {
		return 0, 0, err
	}
	year, err := archive.ParseYear(c.Query("year"), years)
	if err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}

// mapError translates the archive error taxonomy to HTTP statuses.
// Validation failures are client errors; the three lookup failures are
// reported as not-found with the error's own message. Everything is
// request-scoped and the service stays usable.
func mapError(err error) error {
	var (
		missing  *archive.MissingFieldError
		badRange *archive.InvalidRangeError
		noMonth  *archive.NoDataForMonthError
		noFuture *archive.NoFutureDataError
		tooEarly *archive.OutOfCoverageError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &badRange):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &noMonth), errors.As(err, &noFuture), errors.As(err, &tooEarly):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to query the archive")
	}
}

// instrument records request count and duration for an endpoint.
func instrument(m *metrics.Collector, endpoint string, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := handler(c)

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		m.RequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
		return err
	}
}
