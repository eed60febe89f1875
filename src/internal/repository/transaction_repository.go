package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/entity"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/internal/model"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/log"
	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

const (
	transactionsDir = "transactions"

	defaultScanLimit = 8
)

// ledgerEpoch is the earliest day a date-range scan will visit when
// the caller gives no start date.
var ledgerEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// TransactionID derives the stable ledger key from the transaction
// type, a natural reference and the event time. No central counter:
// the same inputs always collide, which is exactly the duplicate
// detection the ledger wants.
func TransactionID(txType, reference string, ts time.Time) string {
	return fmt.Sprintf("%s_%s_%d", txType, reference, ts.UTC().UnixMilli())
}

// TransactionRepository is the append-style ledger: date-sharded
// immutable transaction files, balances computed by replaying the
// directory tree rather than trusting any stored counter.
type TransactionRepository struct {
	backend   *storage.Store
	validate  *validator.Validate
	log       log.Log
	scanLimit int
}

func NewTransactionRepository(backend *storage.Store, validate *validator.Validate, logger log.Log, scanLimit int) *TransactionRepository {
	if scanLimit <= 0 {
		scanLimit = defaultScanLimit
	}
	return &TransactionRepository{backend: backend, validate: validate, log: logger, scanLimit: scanLimit}
}

func recordFileFor(txType string) string {
	if txType == entity.TransactionTypeWithdrawal {
		return "withdrawal.json"
	}
	return "payment.json"
}

func (r *TransactionRepository) shardDir(txID string, ts time.Time) string {
	return filepath.Join(r.backend.Root, transactionsDir, filepath.FromSlash(storage.ShardDate(ts)), txID)
}

// Save writes the transaction record plus its metadata file under the
// day shard derived from the transaction timestamp. A transaction that
// already exists at its derived path is rejected, never overwritten.
func (r *TransactionRepository) Save(ctx context.Context, tx *entity.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.validate.Struct(tx); err != nil {
		return fmt.Errorf("%w: transaction: %v", storage.ErrValidation, err)
	}
	ts, err := storage.ParseTimestamp(tx.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: transaction %s: timestamp: %v", storage.ErrInvalidRecord, tx.TransactionID, err)
	}

	dir := r.shardDir(tx.TransactionID, ts)
	r.backend.Locker.Lock(dir)
	defer r.backend.Locker.Unlock(dir)

	// Only a persisted record file counts as a duplicate. An
	// interrupted write can leave the shard directory behind with no
	// record in it; a retry must go through.
	if r.recordExists(dir) {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateTransaction, tx.TransactionID)
	}
	if err := storage.WriteJSONAtomic(r.backend.FS, filepath.Join(dir, recordFileFor(tx.Type)), tx); err != nil {
		return err
	}
	meta := entity.TransactionMeta{
		TransactionID: tx.TransactionID,
		Path:          storage.ShardDate(ts) + "/" + tx.TransactionID,
		CreatedAt:     storage.FormatTimestamp(time.Now()),
		WriteID:       uuid.NewString(),
	}
	return storage.WriteJSONAtomic(r.backend.FS, filepath.Join(dir, "metadata.json"), meta)
}

// Get loads one transaction. The caller supplies the event time that
// locates the day shard; transactions are never resolved through the
// entity id scheme.
func (r *TransactionRepository) Get(ctx context.Context, txID string, occurredAt time.Time) (*entity.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := r.shardDir(txID, occurredAt)
	return r.readFromDir(dir, txID)
}

func (r *TransactionRepository) recordExists(dir string) bool {
	for _, name := range []string{"payment.json", "withdrawal.json"} {
		if storage.FileExists(r.backend.FS, filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func (r *TransactionRepository) readFromDir(dir, txID string) (*entity.Transaction, error) {
	for _, name := range []string{"payment.json", "withdrawal.json"} {
		var tx entity.Transaction
		found, err := storage.ReadJSON(r.backend.FS, filepath.Join(dir, name), &tx)
		if err != nil {
			return nil, err
		}
		if found {
			return &tx, nil
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", storage.ErrNotFound, txID)
}

// UpdateStatus applies a state transition: pending may become
// completed or failed; completed and failed are terminal. The amount
// is immutable on every update path.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, txID string, occurredAt time.Time, next string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := r.shardDir(txID, occurredAt)
	r.backend.Locker.Lock(dir)
	defer r.backend.Locker.Unlock(dir)

	tx, err := r.readFromDir(dir, txID)
	if err != nil {
		return err
	}
	if tx.Status != entity.TransactionStatusPending {
		return fmt.Errorf("%w: transaction %s is %s, status is terminal", storage.ErrValidation, txID, tx.Status)
	}
	if next != entity.TransactionStatusCompleted && next != entity.TransactionStatusFailed {
		return fmt.Errorf("%w: transaction %s: illegal transition pending -> %s", storage.ErrValidation, txID, next)
	}
	tx.Status = next
	return storage.WriteJSONAtomic(r.backend.FS, filepath.Join(dir, recordFileFor(tx.Type)), tx)
}

// AddMetadata enriches a transaction with non-financial bookkeeping.
// Allowed in any status, including completed.
func (r *TransactionRepository) AddMetadata(ctx context.Context, txID string, occurredAt time.Time, meta map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := r.shardDir(txID, occurredAt)
	r.backend.Locker.Lock(dir)
	defer r.backend.Locker.Unlock(dir)

	tx, err := r.readFromDir(dir, txID)
	if err != nil {
		return err
	}
	if tx.Metadata == nil {
		tx.Metadata = make(map[string]string, len(meta))
	}
	for k, v := range meta {
		tx.Metadata[k] = v
	}
	return storage.WriteJSONAtomic(r.backend.FS, filepath.Join(dir, recordFileFor(tx.Type)), tx)
}

// ListByUser enumerates every day shard in the filter's date range and
// keeps the transactions matching userID and the optional filters.
// O(days x avg transactions per day) by design: there is no secondary
// index by user, the ledger trades query latency for append-only write
// safety.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int, filter model.TransactionFilter) ([]entity.Transaction, error) {
	start, end, err := filter.Range(ledgerEpoch)
	if err != nil {
		return nil, fmt.Errorf("%w: transaction filter: %v", storage.ErrValidation, err)
	}

	timer := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.scanLimit)

	var mu sync.Mutex
	var out []entity.Transaction
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		day := day
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matches, err := r.scanDay(day, userID, filter)
			if err != nil {
				return err
			}
			if len(matches) > 0 {
				mu.Lock()
				out = append(out, matches...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	storage.ObserveLedgerScan(time.Since(timer))
	return out, nil
}

func (r *TransactionRepository) scanDay(day time.Time, userID int, filter model.TransactionFilter) ([]entity.Transaction, error) {
	dir := filepath.Join(r.backend.Root, transactionsDir, filepath.FromSlash(storage.ShardDate(day)))
	if !storage.DirExists(r.backend.FS, dir) {
		return nil, nil
	}
	infos, err := afero.ReadDir(r.backend.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: readdir %s: %v", storage.ErrReadFailed, dir, err)
	}
	var matches []entity.Transaction
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		tx, err := r.readFromDir(filepath.Join(dir, info.Name()), info.Name())
		if err != nil {
			// A shard dir without a record file is debris from an
			// interrupted write, not a scan failure.
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if tx.UserID == userID && filter.Matches(tx.Type, tx.Status, tx.Amount) {
			matches = append(matches, *tx)
		}
	}
	return matches, nil
}
