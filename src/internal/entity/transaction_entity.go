package entity

const (
	TransactionTypePayment    = "payment"
	TransactionTypeWithdrawal = "withdrawal"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is one immutable ledger entry. Once completed, the
// amount can never change; only status transitions out of pending and
// metadata enrichment are permitted.
type Transaction struct {
	TransactionID string            `json:"transactionId" validate:"required"`
	UserID        int               `json:"userId" validate:"required,gt=0"`
	Type          string            `json:"type" validate:"required,oneof=payment withdrawal"`
	Amount        float64           `json:"amount" validate:"gte=0"`
	Currency      string            `json:"currency" validate:"required"`
	Status        string            `json:"status" validate:"required,oneof=pending completed failed"`
	Timestamp     string            `json:"timestamp" validate:"required"`
	Reference     string            `json:"reference" validate:"required"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TransactionMeta is the lightweight bookkeeping file written next to
// each transaction record.
type TransactionMeta struct {
	TransactionID string `json:"transactionId"`
	Path          string `json:"path"`
	CreatedAt     string `json:"createdAt"`
	WriteID       string `json:"writeId"`
}
