package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/model"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/repository"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// balanceTolerance is the rounding slack allowed before a stored
// balance counts as drifted, in currency units.
const balanceTolerance = 0.01

// BalanceUseCase is the single source of truth for account balances:
// every query replays the ledger, no stored balance is ever trusted.
type BalanceUseCase struct {
	Log                   log.Log
	Validate              *validator.Validate
	TransactionRepository *repository.TransactionRepository
	Config                *viper.Viper
}

func NewBalanceUseCase(
	logger log.Log,
	validate *validator.Validate,
	transactionRepository *repository.TransactionRepository,
	cfg *viper.Viper,
) *BalanceUseCase {
	return &BalanceUseCase{
		Log:                   logger,
		Validate:              validate,
		TransactionRepository: transactionRepository,
		Config:                cfg,
	}
}

// Calculate replays every transaction of the user in the filter range:
// completed payments add, completed withdrawals subtract, pending
// withdrawals accumulate separately, everything else is excluded.
// Errors surface directly; a silent wrong balance is worse than a
// visible failure.
func (c *BalanceUseCase) Calculate(ctx context.Context, request *model.GetBalanceRequest) (*model.BalanceResponse, error) {
	if err := c.Validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: balance request: %v", storage.ErrValidation, err)
	}

	transactions, err := c.TransactionRepository.ListByUser(ctx, request.UserID, request.Filter)
	if err != nil {
		c.Log.Error("balance-calculate", err.Error(), "ledger-scan", fmt.Sprintf("userId=%d", request.UserID))
		return nil, err
	}

	response := &model.BalanceResponse{UserID: request.UserID, TransactionCount: len(transactions)}
	for _, tx := range transactions {
		switch tx.Status {
		case entity.TransactionStatusCompleted:
			if tx.Type == entity.TransactionTypeWithdrawal {
				response.AvailableBalance -= tx.Amount
			} else {
				response.AvailableBalance += tx.Amount
			}
		case entity.TransactionStatusPending:
			if tx.Type == entity.TransactionTypeWithdrawal {
				response.PendingWithdrawals += tx.Amount
			}
		}
	}
	return response, nil
}

// Verify compares the live balance against an externally supplied
// value and flags drift beyond the rounding tolerance. Used by
// migration and audit tooling, never for balance reporting.
func (c *BalanceUseCase) Verify(ctx context.Context, request *model.VerifyBalanceRequest) (*model.BalanceVerification, error) {
	if err := c.Validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: verify request: %v", storage.ErrValidation, err)
	}

	live, err := c.Calculate(ctx, &model.GetBalanceRequest{UserID: request.UserID})
	if err != nil {
		return nil, err
	}

	diff := request.StoredBalance - live.AvailableBalance
	verification := &model.BalanceVerification{
		UserID:           request.UserID,
		StoredBalance:    request.StoredBalance,
		ComputedBalance:  live.AvailableBalance,
		Difference:       diff,
		Discrepancy:      math.Abs(diff) > balanceTolerance,
		TransactionCount: live.TransactionCount,
	}
	if verification.Discrepancy {
		c.Log.Error("balance-verify", "stored balance drifted from ledger", "audit",
			fmt.Sprintf("userId=%d stored=%.2f computed=%.2f", request.UserID, request.StoredBalance, live.AvailableBalance))
	}
	return verification, nil
}
