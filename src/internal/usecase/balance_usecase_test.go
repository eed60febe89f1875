package usecase

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/model"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/repository"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

func newBalanceFixture(t *testing.T) (*BalanceUseCase, *repository.TransactionRepository) {
	t.Helper()
	store := storage.NewStore(afero.NewMemMapFs(), storage.Options{Root: "data"})
	validate := validator.New()
	transactions := repository.NewTransactionRepository(store, validate, log.Log{}, 4)
	return NewBalanceUseCase(log.Log{}, validate, transactions, viper.New()), transactions
}

func seedTransaction(t *testing.T, repo *repository.TransactionRepository, userID int, txType, ref, iso string, amount float64, status string) {
	t.Helper()
	ts, err := storage.ParseTimestamp(iso)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), &entity.Transaction{
		TransactionID: repository.TransactionID(txType, ref, ts),
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Currency:      "USD",
		Status:        status,
		Timestamp:     iso,
		Reference:     ref,
	}))
}

func TestCalculateReplaysLedger(t *testing.T) {
	uc, repo := newBalanceFixture(t)

	seedTransaction(t, repo, 12, entity.TransactionTypePayment, "inv-1", "2025-06-10T08:00:00Z", 100, entity.TransactionStatusCompleted)
	seedTransaction(t, repo, 12, entity.TransactionTypeWithdrawal, "wd-1", "2025-06-11T09:00:00Z", 30, entity.TransactionStatusCompleted)
	seedTransaction(t, repo, 12, entity.TransactionTypePayment, "inv-2", "2025-06-12T10:00:00Z", 50, entity.TransactionStatusPending)

	out, err := uc.Calculate(context.Background(), &model.GetBalanceRequest{
		UserID: 12,
		Filter: model.TransactionFilter{StartDate: "2025-06-01", EndDate: "2025-06-30"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 70.0, out.AvailableBalance, 1e-9, "pending payments never count")
	assert.InDelta(t, 0.0, out.PendingWithdrawals, 1e-9)
	assert.Equal(t, 3, out.TransactionCount)
}

func TestCalculateTracksPendingWithdrawals(t *testing.T) {
	uc, repo := newBalanceFixture(t)

	seedTransaction(t, repo, 12, entity.TransactionTypePayment, "inv-1", "2025-06-10T08:00:00Z", 200, entity.TransactionStatusCompleted)
	seedTransaction(t, repo, 12, entity.TransactionTypeWithdrawal, "wd-1", "2025-06-11T09:00:00Z", 25, entity.TransactionStatusPending)
	seedTransaction(t, repo, 12, entity.TransactionTypeWithdrawal, "wd-2", "2025-06-12T09:00:00Z", 40, entity.TransactionStatusFailed)

	out, err := uc.Calculate(context.Background(), &model.GetBalanceRequest{
		UserID: 12,
		Filter: model.TransactionFilter{StartDate: "2025-06-01", EndDate: "2025-06-30"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 200.0, out.AvailableBalance, 1e-9, "failed transactions are excluded")
	assert.InDelta(t, 25.0, out.PendingWithdrawals, 1e-9)
}

func TestCalculateRejectsInvalidRequest(t *testing.T) {
	uc, _ := newBalanceFixture(t)

	_, err := uc.Calculate(context.Background(), &model.GetBalanceRequest{UserID: 0})
	require.ErrorIs(t, err, storage.ErrValidation)
}

func TestVerifyWithinTolerance(t *testing.T) {
	uc, repo := newBalanceFixture(t)

	seedTransaction(t, repo, 12, entity.TransactionTypePayment, "inv-1", "2025-06-10T08:00:00Z", 100, entity.TransactionStatusCompleted)
	seedTransaction(t, repo, 12, entity.TransactionTypeWithdrawal, "wd-1", "2025-06-11T09:00:00Z", 30, entity.TransactionStatusCompleted)

	out, err := uc.Verify(context.Background(), &model.VerifyBalanceRequest{UserID: 12, StoredBalance: 70.005})
	require.NoError(t, err)
	assert.False(t, out.Discrepancy, "sub-cent drift is rounding noise")
	assert.InDelta(t, 70.0, out.ComputedBalance, 1e-9)
	assert.InDelta(t, 0.005, out.Difference, 1e-9)
}

func TestVerifyFlagsDrift(t *testing.T) {
	uc, repo := newBalanceFixture(t)

	seedTransaction(t, repo, 12, entity.TransactionTypePayment, "inv-1", "2025-06-10T08:00:00Z", 100, entity.TransactionStatusCompleted)
	seedTransaction(t, repo, 12, entity.TransactionTypeWithdrawal, "wd-1", "2025-06-11T09:00:00Z", 30, entity.TransactionStatusCompleted)

	out, err := uc.Verify(context.Background(), &model.VerifyBalanceRequest{UserID: 12, StoredBalance: 75})
	require.NoError(t, err)
	assert.True(t, out.Discrepancy)
	assert.InDelta(t, 5.0, out.Difference, 1e-9)
	assert.Equal(t, 2, out.TransactionCount)
}
