// Package webapi assembles the Fiber application serving the tracker's HTTP
// surface.
package webapi

import (
	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/metrics"
	accountsvc "github.com/amirasaad/proppilot/pkg/service/account"
	dashboardsvc "github.com/amirasaad/proppilot/pkg/service/dashboard"
	schedulesvc "github.com/amirasaad/proppilot/pkg/service/schedule"
	statssvc "github.com/amirasaad/proppilot/pkg/service/stats"
	"github.com/amirasaad/proppilot/webapi/account"
	"github.com/amirasaad/proppilot/webapi/common"
	"github.com/amirasaad/proppilot/webapi/dashboard"
	"github.com/amirasaad/proppilot/webapi/schedule"
	"github.com/amirasaad/proppilot/webapi/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles the services the HTTP surface is built on.
type Services struct {
	Account   *accountsvc.Service
	Schedule  *schedulesvc.Service
	Dashboard *dashboardsvc.Service
	Stats     *statssvc.Service
	Collector *metrics.Collector
}

// NewApp builds the Fiber application with rate limiting, panic recovery and
// all routes registered.
func NewApp(cfg *config.App, svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("PropPilot API is up")
	})
	if svcs.Collector != nil {
		app.Get("/metrics", adaptor.HTTPHandler(svcs.Collector.Handler()))
	}

	account.Routes(app, svcs.Account)
	schedule.Routes(app, svcs.Schedule)
	dashboard.Routes(app, svcs.Dashboard)
	stats.Routes(app, svcs.Stats)

	return app
}
