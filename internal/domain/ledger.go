package domain

import "time"

type TransactionType string

const (
	TransactionTypeReturnCredit TransactionType = "RETURN_CREDIT"
	TransactionTypeRedemption   TransactionType = "REDEMPTION"
	TransactionTypeSpinCost     TransactionType = "SPIN_COST"
	TransactionTypeSpinPrize    TransactionType = "SPIN_PRIZE"
	TransactionTypeVoucher      TransactionType = "VOUCHER"
	TransactionTypeAdjustment   TransactionType = "ADJUSTMENT"
)

type PointsTransaction struct {
	ID          int64           `json:"id"`
	UserID      UserID          `json:"user_id"`
	Amount      int32           `json:"amount"` // positive for credit, negative for debit
	Type        TransactionType `json:"type"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	CreatedOn   time.Time       `json:"created_on"`
}
