package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/archipelago-data-aggregation/internal/common"
	"github.com/i474232898/archipelago-data-aggregation/internal/dashboard"
	"github.com/i474232898/archipelago-data-aggregation/internal/freshness"
	"github.com/i474232898/archipelago-data-aggregation/internal/refresh"
	"github.com/i474232898/archipelago-data-aggregation/internal/water"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		return c.JSON(service.Weather())
	})
	v1.Get("/weather/summary", func(c *fiber.Ctx) error {
		return c.JSON(service.WeatherSummary())
	})
	v1.Get("/weather/:code", func(c *fiber.Ctx) error {
		q := communeParam{Code: c.Params("code")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		live, _ := service.CommuneWeather(c.UserContext(), q.Code)
		return c.JSON(live)
	})

	v1.Get("/vigilance", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"live":    service.Vigilance(),
			"summary": service.VigilanceSummary(),
		})
	})

	v1.Get("/air-quality", func(c *fiber.Ctx) error {
		return c.JSON(service.AirQuality())
	})
	v1.Get("/air-quality/summary", func(c *fiber.Ctx) error {
		return c.JSON(service.AirSummary())
	})

	v1.Get("/water-cuts", func(c *fiber.Ctx) error {
		return c.JSON(service.WaterCuts())
	})
	v1.Get("/water-cuts/summary", func(c *fiber.Ctx) error {
		q := waterSummaryQuery{Day: strings.ToLower(c.Query("day"))}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		filter, err := water.ParseDateFilter(q.Day)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(service.WaterSummary(filter))
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		return c.JSON(service.Forecast(""))
	})
	v1.Get("/forecast/:code", func(c *fiber.Ctx) error {
		q := communeParam{Code: c.Params("code")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		live, _ := service.CommuneForecast(c.UserContext(), q.Code)
		return c.JSON(live)
	})

	v1.Get("/overview", func(c *fiber.Ctx) error {
		return c.JSON(service.Overview())
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		var req refreshQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		outcomes := service.Refresh(c.UserContext(), req.toRequest())
		return c.JSON(fiber.Map{"outcomes": outcomes})
	})
}

// waterSummaryQuery holds query parameters for the water summary endpoint.
type waterSummaryQuery struct {
	Day string `validate:"omitempty,oneof=today tomorrow"`
}

// communeParam identifies a commune by its INSEE code.
type communeParam struct {
	Code string `validate:"required,numeric,len=5"`
}

// refreshQuery holds query parameters for the refresh endpoint.
type refreshQuery struct {
	Categories []string `validate:"dive,oneof=weather vigilance air-quality water-cuts forecast"`
	Commune    string   `validate:"omitempty,numeric,len=5"`
	Force      bool
}

func (r *refreshQuery) bind(c *fiber.Ctx) error {
	for _, name := range common.SplitList(c.Query("category")) {
		if strings.EqualFold(name, "all") {
			r.Categories = nil
			break
		}
		r.Categories = append(r.Categories, strings.ToLower(name))
	}
	r.Commune = c.Query("commune")

	if raw := c.Query("force"); raw != "" {
		force, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("force must be true or false")
		}
		r.Force = force
	}
	return nil
}

func (r refreshQuery) toRequest() refresh.Request {
	req := refresh.Request{SubKey: r.Commune, Force: r.Force}
	for _, name := range r.Categories {
		// Validated above.
		cat, _ := freshness.ParseCategory(name)
		req.Categories = append(req.Categories, cat)
	}
	return req
}
