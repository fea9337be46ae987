// Package schedule exposes the weekly schedule over HTTP.
package schedule

import (
	schedulesvc "github.com/amirasaad/proppilot/pkg/service/schedule"
	"github.com/amirasaad/proppilot/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the schedule endpoints:
//   - GET  /schedule          : the current weekly schedule.
//   - POST /schedule/generate : explicit round-robin regeneration.
//   - POST /schedule/optimize : AI-assisted regeneration.
func Routes(app *fiber.App, svc *schedulesvc.Service) {
	app.Get("/schedule", GetSchedule(svc))
	app.Post("/schedule/generate", GenerateSchedule(svc))
	app.Post("/schedule/optimize", OptimizeSchedule(svc))
}

// GetSchedule returns a handler serving the current weekly schedule.
func GetSchedule(svc *schedulesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Schedule", svc.Current())
	}
}

// GenerateSchedule returns a handler performing an explicit regeneration.
// Zero active accounts is an error, not a silent no-op.
func GenerateSchedule(svc *schedulesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		generated, err := svc.Regenerate(c.UserContext())
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to generate schedule", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Schedule generated", generated)
	}
}

// OptimizeSchedule returns a handler asking the AI optimizer for a
// replacement schedule.
func OptimizeSchedule(svc *schedulesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		optimized, err := svc.Optimize(c.UserContext())
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to optimize schedule", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Schedule optimized", optimized)
	}
}
