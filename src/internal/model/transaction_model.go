package model

import (
	"fmt"
	"time"

	"github.com/artish-io/post-login-freelancer-dashboard-sub003/src/pkg/storage"
)

// TransactionFilter narrows a ledger scan. Dates are ISO strings
// ("2006-01-02" or full timestamps); empty bounds default to the
// ledger epoch and today. Callers should bound wide histories here:
// the scan visits every day in the range.
type TransactionFilter struct {
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Type      string   `json:"type,omitempty" validate:"omitempty,oneof=payment withdrawal"`
	Status    string   `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed"`
	MinAmount *float64 `json:"minAmount,omitempty"`
	MaxAmount *float64 `json:"maxAmount,omitempty"`
}

// Range resolves the filter's date bounds against the given epoch.
func (f TransactionFilter) Range(epoch time.Time) (start, end time.Time, err error) {
	start = epoch
	end = time.Now().UTC()
	if f.StartDate != "" {
		if start, err = storage.ParseTimestamp(f.StartDate); err != nil {
			return start, end, fmt.Errorf("startDate: %v", err)
		}
	}
	if f.EndDate != "" {
		if end, err = storage.ParseTimestamp(f.EndDate); err != nil {
			return start, end, fmt.Errorf("endDate: %v", err)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("endDate %s before startDate %s", f.EndDate, f.StartDate)
	}
	return start.UTC().Truncate(24 * time.Hour), end.UTC().Truncate(24 * time.Hour), nil
}

// Matches applies the optional type/status/amount filters.
func (f TransactionFilter) Matches(txType, status string, amount float64) bool {
	if f.Type != "" && f.Type != txType {
		return false
	}
	if f.Status != "" && f.Status != status {
		return false
	}
	if f.MinAmount != nil && amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && amount > *f.MaxAmount {
		return false
	}
	return true
}

type GetBalanceRequest struct {
	UserID int               `json:"userId" validate:"required,gt=0"`
	Filter TransactionFilter `json:"filter"`
}

type VerifyBalanceRequest struct {
	UserID        int     `json:"userId" validate:"required,gt=0"`
	StoredBalance float64 `json:"storedBalance"`
}

// BalanceResponse is derived state: availableBalance is the signed sum
// of completed transactions, computed fresh from the ledger on every
// query.
type BalanceResponse struct {
	UserID             int     `json:"userId"`
	AvailableBalance   float64 `json:"availableBalance"`
	PendingWithdrawals float64 `json:"pendingWithdrawals"`
	TransactionCount   int     `json:"transactionCount"`
}

// BalanceVerification compares a live computation against an
// externally stored value. Audit/migration tooling only, never a
// balance-reporting path.
type BalanceVerification struct {
	UserID           int     `json:"userId"`
	StoredBalance    float64 `json:"storedBalance"`
	ComputedBalance  float64 `json:"computedBalance"`
	Difference       float64 `json:"difference"`
	Discrepancy      bool    `json:"discrepancy"`
	TransactionCount int     `json:"transactionCount"`
}
