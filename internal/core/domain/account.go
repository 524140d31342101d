package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Income, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts.
// Only leaf accounts receive postings; non-leaf accounts are aggregation nodes
// whose balance is the roll-up of their descendant leaves.
type Account struct {
	AccountID       string      `json:"accountID"`       // Primary Key (UUID)
	Code            string      `json:"code"`            // Unique, human-assigned, immutable once posted against
	Name            string      `json:"name"`            // User-defined name
	AccountType     AccountType `json:"accountType"`     // ASSET, LIABILITY, INCOME, EXPENSE
	ParentAccountID string      `json:"parentAccountID"` // Nullable self reference (empty for roots)
	ParentCode      string      `json:"parentCode"`      // Denormalized parent code for display
	IsLeaf          bool        `json:"isLeaf"`          // False once a child is attached
	Description     string      `json:"description"`
	AuditFields
}
