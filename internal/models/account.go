package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts row.
// ParentAccountID uses string for the nullable self reference.
type Account struct {
	AccountID       string      `db:"account_id"`
	Code            string      `db:"code"` // Unique index
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	ParentAccountID string      `db:"parent_account_id"` // Nullable
	ParentCode      string      `db:"parent_code"`       // Nullable, denormalized
	IsLeaf          bool        `db:"is_leaf"`
	Description     string      `db:"description"`
	AuditFields
}
