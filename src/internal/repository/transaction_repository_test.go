package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/model"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

func newLedger(t *testing.T) (*TransactionRepository, *storage.Store) {
	t.Helper()
	backend, validate := newTestBackend(t)
	return NewTransactionRepository(backend, validate, noopLog(), 4), backend
}

func paymentAt(userID int, ref, iso string, amount float64, status string) *entity.Transaction {
	ts, _ := storage.ParseTimestamp(iso)
	return &entity.Transaction{
		TransactionID: TransactionID(entity.TransactionTypePayment, ref, ts),
		UserID:        userID,
		Type:          entity.TransactionTypePayment,
		Amount:        amount,
		Currency:      "USD",
		Status:        status,
		Timestamp:     iso,
		Reference:     ref,
	}
}

func withdrawalAt(userID int, ref, iso string, amount float64, status string) *entity.Transaction {
	tx := paymentAt(userID, ref, iso, amount, status)
	ts, _ := storage.ParseTimestamp(iso)
	tx.Type = entity.TransactionTypeWithdrawal
	tx.TransactionID = TransactionID(entity.TransactionTypeWithdrawal, ref, ts)
	return tx
}

func TestTransactionIDIsDeterministic(t *testing.T) {
	ts := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	a := TransactionID("payment", "invoice-88", ts)
	b := TransactionID("payment", "invoice-88", ts)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, TransactionID("withdrawal", "invoice-88", ts))
}

func TestSaveTransactionWritesRecordAndMetadata(t *testing.T) {
	repo, backend := newLedger(t)
	ctx := context.Background()

	tx := paymentAt(12, "invoice-88", "2025-06-10T12:00:00Z", 100, entity.TransactionStatusCompleted)
	require.NoError(t, repo.Save(ctx, tx))

	dir := "data/transactions/2025/06/10/" + tx.TransactionID
	assert.True(t, storage.FileExists(backend.FS, dir+"/payment.json"))
	assert.True(t, storage.FileExists(backend.FS, dir+"/metadata.json"))

	var meta entity.TransactionMeta
	found, err := storage.ReadJSON(backend.FS, dir+"/metadata.json", &meta)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, tx.TransactionID, meta.TransactionID)
	assert.NotEmpty(t, meta.WriteID)
}

func TestSaveTransactionRejectsDuplicate(t *testing.T) {
	repo, _ := newLedger(t)
	ctx := context.Background()

	tx := paymentAt(12, "invoice-88", "2025-06-10T12:00:00Z", 100, entity.TransactionStatusCompleted)
	require.NoError(t, repo.Save(ctx, tx))

	// Same natural reference and timestamp derive the same ID.
	dup := paymentAt(12, "invoice-88", "2025-06-10T12:00:00Z", 100, entity.TransactionStatusCompleted)
	err := repo.Save(ctx, dup)
	require.ErrorIs(t, err, storage.ErrDuplicateTransaction)
}

func TestSaveRetriesAfterInterruptedWrite(t *testing.T) {
	repo, backend := newLedger(t)
	ctx := context.Background()

	tx := paymentAt(12, "invoice-9", "2025-06-10T12:00:00Z", 100, entity.TransactionStatusCompleted)

	// An interrupted write leaves the shard directory behind without a
	// record file. The retry must not be treated as a duplicate.
	dir := "data/transactions/2025/06/10/" + tx.TransactionID
	require.NoError(t, backend.FS.MkdirAll(dir, 0o755))

	require.NoError(t, repo.Save(ctx, tx))
	assert.True(t, storage.FileExists(backend.FS, dir+"/payment.json"))

	// A persisted record is still a duplicate.
	err := repo.Save(ctx, paymentAt(12, "invoice-9", "2025-06-10T12:00:00Z", 100, entity.TransactionStatusCompleted))
	require.ErrorIs(t, err, storage.ErrDuplicateTransaction)
}

func TestListByUserSkipsPartialShardDirs(t *testing.T) {
	repo, backend := newLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, paymentAt(12, "inv-1", "2025-06-10T08:00:00Z", 100, entity.TransactionStatusCompleted)))

	// Debris from interrupted writes on the same day: one empty shard
	// dir, one holding only the metadata file.
	require.NoError(t, backend.FS.MkdirAll("data/transactions/2025/06/10/payment_ghost_1", 0o755))
	require.NoError(t, storage.WriteJSONAtomic(backend.FS,
		"data/transactions/2025/06/10/payment_ghost_2/metadata.json",
		entity.TransactionMeta{TransactionID: "payment_ghost_2"}))

	out, err := repo.ListByUser(ctx, 12, model.TransactionFilter{StartDate: "2025-06-01", EndDate: "2025-06-30"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "inv-1", out[0].Reference)
}

func TestSaveTransactionValidatesBeforeIO(t *testing.T) {
	repo, backend := newLedger(t)

	bad := paymentAt(12, "invoice-1", "2025-06-10T12:00:00Z", 10, "reversed")
	err := repo.Save(context.Background(), bad)
	require.ErrorIs(t, err, storage.ErrValidation)
	assert.False(t, storage.DirExists(backend.FS, "data/transactions/2025/06/10"))
}

func TestUpdateStatusTransitions(t *testing.T) {
	repo, _ := newLedger(t)
	ctx := context.Background()
	occurred := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tx := withdrawalAt(12, "wd-1", "2025-06-10T12:00:00Z", 30, entity.TransactionStatusPending)
	require.NoError(t, repo.Save(ctx, tx))

	require.NoError(t, repo.UpdateStatus(ctx, tx.TransactionID, occurred, entity.TransactionStatusCompleted))

	got, err := repo.Get(ctx, tx.TransactionID, occurred)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionStatusCompleted, got.Status)
	assert.Equal(t, 30.0, got.Amount, "amount is immutable across updates")

	// Completed is terminal.
	err = repo.UpdateStatus(ctx, tx.TransactionID, occurred, entity.TransactionStatusFailed)
	require.ErrorIs(t, err, storage.ErrValidation)
}

func TestAddMetadataOnCompletedTransaction(t *testing.T) {
	repo, _ := newLedger(t)
	ctx := context.Background()
	occurred := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tx := paymentAt(12, "invoice-2", "2025-06-10T12:00:00Z", 55, entity.TransactionStatusCompleted)
	require.NoError(t, repo.Save(ctx, tx))

	require.NoError(t, repo.AddMetadata(ctx, tx.TransactionID, occurred, map[string]string{"processor": "stripe"}))

	got, err := repo.Get(ctx, tx.TransactionID, occurred)
	require.NoError(t, err)
	assert.Equal(t, "stripe", got.Metadata["processor"])
	assert.Equal(t, 55.0, got.Amount)
}

func TestListByUserAppliesFilters(t *testing.T) {
	repo, _ := newLedger(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, paymentAt(12, "inv-1", "2025-06-10T08:00:00Z", 100, entity.TransactionStatusCompleted)))
	require.NoError(t, repo.Save(ctx, withdrawalAt(12, "wd-1", "2025-06-11T09:00:00Z", 30, entity.TransactionStatusCompleted)))
	require.NoError(t, repo.Save(ctx, paymentAt(12, "inv-2", "2025-06-12T10:00:00Z", 50, entity.TransactionStatusPending)))
	require.NoError(t, repo.Save(ctx, paymentAt(99, "other-user", "2025-06-10T08:00:00Z", 999, entity.TransactionStatusCompleted)))

	filter := model.TransactionFilter{StartDate: "2025-06-01", EndDate: "2025-06-30"}
	all, err := repo.ListByUser(ctx, 12, filter)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Timestamp <= all[1].Timestamp && all[1].Timestamp <= all[2].Timestamp, "sorted by timestamp")

	filter.Type = entity.TransactionTypePayment
	payments, err := repo.ListByUser(ctx, 12, filter)
	require.NoError(t, err)
	assert.Len(t, payments, 2)

	filter.Type = ""
	filter.Status = entity.TransactionStatusCompleted
	completed, err := repo.ListByUser(ctx, 12, filter)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	min := 40.0
	filter.Status = ""
	filter.MinAmount = &min
	big, err := repo.ListByUser(ctx, 12, filter)
	require.NoError(t, err)
	assert.Len(t, big, 2)

	// A range that misses every shard.
	empty, err := repo.ListByUser(ctx, 12, model.TransactionFilter{StartDate: "2021-01-01", EndDate: "2021-01-31"})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListByUserRejectsBackwardsRange(t *testing.T) {
	repo, _ := newLedger(t)

	_, err := repo.ListByUser(context.Background(), 12, model.TransactionFilter{
		StartDate: "2025-06-30",
		EndDate:   "2025-06-01",
	})
	require.ErrorIs(t, err, storage.ErrValidation)
}
