// Package stats exposes trade-history analysis over HTTP.
package stats

import (
	statssvc "github.com/amirasaad/proppilot/pkg/service/stats"
	"github.com/amirasaad/proppilot/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// AnalyzeRequest carries the raw text content of an uploaded trade-history
// file.
type AnalyzeRequest struct {
	Content string `json:"content" validate:"required"`
}

// Routes registers the stats endpoint:
//   - POST /stats/analyze : analyze uploaded trade-history text.
func Routes(app *fiber.App, svc *statssvc.Service) {
	app.Post("/stats/analyze", Analyze(svc))
}

// Analyze returns a handler delegating the uploaded trade history to the
// external analyzer.
func Analyze(svc *statssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[AnalyzeRequest](c)
		if input == nil {
			return err
		}
		result, err := svc.Analyze(c.UserContext(), input.Content)
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to analyze trade history", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Trade history analyzed", result)
	}
}
