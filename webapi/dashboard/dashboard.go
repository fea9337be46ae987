// Package dashboard exposes the aggregated account metrics over HTTP.
package dashboard

import (
	dashboardsvc "github.com/amirasaad/proppilot/pkg/service/dashboard"
	"github.com/amirasaad/proppilot/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the dashboard endpoint:
//   - GET /dashboard : roll-up metrics over the full account collection.
func Routes(app *fiber.App, svc *dashboardsvc.Service) {
	app.Get("/dashboard", GetMetrics(svc))
}

// GetMetrics returns a handler serving the aggregated metrics.
func GetMetrics(svc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Dashboard metrics", svc.Metrics())
	}
}
