package account

import (
	"time"

	"github.com/amirasaad/proppilot/pkg/domain"
	accountsvc "github.com/amirasaad/proppilot/pkg/service/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable

// CreateAccountRequest is the request body for adding a new account.
type CreateAccountRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=128"`
	Company        string     `json:"company" validate:"required,min=1,max=128"`
	Size           float64    `json:"size" validate:"gte=0"`
	Cost           float64    `json:"cost" validate:"gte=0"`
	Status         string     `json:"status" validate:"required,oneof=pending active suspended"`
	SuspensionDate *time.Time `json:"suspensionDate,omitempty"`
}

// WithdrawalDTO is the wire representation of a withdrawal inside an update.
type WithdrawalDTO struct {
	ID     string    `json:"id" validate:"required,uuid4"`
	Date   time.Time `json:"date" validate:"required"`
	Amount float64   `json:"amount" validate:"required,gt=0"`
}

// UpdateAccountRequest is the whole-record replacement body. The target id
// comes from the URL.
type UpdateAccountRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=128"`
	Company        string          `json:"company" validate:"required,min=1,max=128"`
	Size           float64         `json:"size" validate:"gte=0"`
	Cost           float64         `json:"cost" validate:"gte=0"`
	Status         string          `json:"status" validate:"required,oneof=pending active suspended"`
	SuspensionDate *time.Time      `json:"suspensionDate,omitempty"`
	Withdrawals    []WithdrawalDTO `json:"withdrawals" validate:"dive"`
}

// AddWithdrawalRequest is the request body for recording a withdrawal.
type AddWithdrawalRequest struct {
	Date   time.Time `json:"date" validate:"required"`
	Amount float64   `json:"amount" validate:"required,gt=0"`
}

func (r CreateAccountRequest) toDraft() accountsvc.AccountDraft {
	return accountsvc.AccountDraft{
		Name:           r.Name,
		Company:        r.Company,
		Size:           decimal.NewFromFloat(r.Size),
		Cost:           decimal.NewFromFloat(r.Cost),
		Status:         domain.AccountStatus(r.Status),
		SuspensionDate: r.SuspensionDate,
	}
}

func (r UpdateAccountRequest) toAccount(id uuid.UUID) (domain.Account, error) {
	withdrawals := make([]domain.Withdrawal, len(r.Withdrawals))
	for i, w := range r.Withdrawals {
		wid, err := uuid.Parse(w.ID)
		if err != nil {
			return domain.Account{}, err
		}
		withdrawals[i] = domain.Withdrawal{
			ID:     wid,
			Date:   w.Date,
			Amount: decimal.NewFromFloat(w.Amount),
		}
	}
	return domain.Account{
		ID:             id,
		Name:           r.Name,
		Company:        r.Company,
		Size:           decimal.NewFromFloat(r.Size),
		Cost:           decimal.NewFromFloat(r.Cost),
		Status:         domain.AccountStatus(r.Status),
		SuspensionDate: r.SuspensionDate,
		Withdrawals:    withdrawals,
	}, nil
}
