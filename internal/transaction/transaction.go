package transaction

import "time"

// Kind represents the type of a transaction. Direction (inflow/outflow) is a
// pure function of the kind; Total is always a non-negative magnitude.
type Kind string

const (
	KindBuy        Kind = "Buy"
	KindSell       Kind = "Sell"
	KindDeposit    Kind = "Deposit"
	KindWithdrawal Kind = "Withdrawal"
)

// Kinds lists every valid transaction kind, for parameter validation.
func Kinds() []Kind {
	return []Kind{KindBuy, KindSell, KindDeposit, KindWithdrawal}
}

// Inflow reports whether the kind moves money into the account.
func (k Kind) Inflow() bool {
	return k == KindDeposit || k == KindSell
}

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusCancelled Status = "Cancelled"
	StatusFailed    Status = "Failed"
	StatusExpired   Status = "Expired"
	StatusReviewed  Status = "Reviewed"
)

// Statuses lists every valid transaction status, for parameter validation.
func Statuses() []Status {
	return []Status{
		StatusCompleted, StatusPending, StatusCancelled,
		StatusFailed, StatusExpired, StatusReviewed,
	}
}

// Transaction is a single financial transaction from a snapshot. Records are
// immutable once fetched; the engine only reads and derives from them.
type Transaction struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"type"`
	Symbol   string    `json:"symbol,omitempty"`
	Company  string    `json:"company,omitempty"`
	Quantity float64   `json:"quantity"`
	Price    *float64  `json:"price,omitempty"`
	Total    float64   `json:"total"`
	Date     time.Time `json:"date"`
	Status   Status    `json:"status"`
	Fees     float64   `json:"fees"`
}
