// Package account exposes the account store over HTTP.
package account

import (
	accountsvc "github.com/amirasaad/proppilot/pkg/service/account"
	"github.com/amirasaad/proppilot/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routes registers the account endpoints:
//   - GET    /accounts                          : list the full collection.
//   - POST   /accounts                          : add a new account.
//   - PUT    /accounts/:id                      : replace a whole record.
//   - DELETE /accounts/:id                      : delete an account.
//   - POST   /accounts/:id/withdrawals          : record a withdrawal.
//   - DELETE /accounts/:id/withdrawals/:wid     : remove a withdrawal.
func Routes(app *fiber.App, svc *accountsvc.Service) {
	app.Get("/accounts", ListAccounts(svc))
	app.Post("/accounts", CreateAccount(svc))
	app.Put("/accounts/:id", UpdateAccount(svc))
	app.Delete("/accounts/:id", DeleteAccount(svc))
	app.Post("/accounts/:id/withdrawals", AddWithdrawal(svc))
	app.Delete("/accounts/:id/withdrawals/:wid", DeleteWithdrawal(svc))
}

// ListAccounts returns a handler serving the full account collection.
func ListAccounts(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts", svc.List())
	}
}

// CreateAccount returns a handler adding a new account from the request body.
func CreateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err // error response already written
		}
		created, err := svc.Add(c.UserContext(), input.toDraft())
		if err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to add account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account added", created)
	}
}

// UpdateAccount returns a handler replacing the whole record at :id.
func UpdateAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "Account ID must be a valid UUID")
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		account, err := input.toAccount(id)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid withdrawal ID", err.Error())
		}
		if err := svc.Update(c.UserContext(), account); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to update account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", account)
	}
}

// DeleteAccount returns a handler deleting the record at :id.
func DeleteAccount(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "Account ID must be a valid UUID")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to delete account", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", fiber.Map{"id": id})
	}
}

// AddWithdrawal returns a handler recording a withdrawal on the account at
// :id. An unknown account id is a no-op by design.
func AddWithdrawal(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "Account ID must be a valid UUID")
		}
		input, err := common.BindAndValidate[AddWithdrawalRequest](c)
		if input == nil {
			return err
		}
		draft := accountsvc.WithdrawalDraft{Date: input.Date, Amount: decimal.NewFromFloat(input.Amount)}
		if err := svc.AddWithdrawal(c.UserContext(), id, draft); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to add withdrawal", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal recorded", nil)
	}
}

// DeleteWithdrawal returns a handler removing the withdrawal :wid from the
// account at :id.
func DeleteWithdrawal(svc *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", "Account ID must be a valid UUID")
		}
		wid, err := uuid.Parse(c.Params("wid"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid withdrawal ID", "Withdrawal ID must be a valid UUID")
		}
		if err := svc.DeleteWithdrawal(c.UserContext(), id, wid); err != nil {
			return common.ErrorResponseJSON(c, common.ErrorToStatusCode(err), "Failed to delete withdrawal", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal deleted", nil)
	}
}
