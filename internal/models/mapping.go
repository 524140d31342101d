package models

// FinanceAccountMapping is the singleton configuration row. The category maps
// are stored as jsonb so partial upserts can merge at the key level in SQL.
type FinanceAccountMapping struct {
	ReceivableAccountID      string            `db:"receivable_account_id"`
	PayableAccountID         string            `db:"payable_account_id"`
	DefaultCashID            string            `db:"default_cash_id"`
	DefaultBankID            string            `db:"default_bank_id"`
	PreventDirectCashRevenue bool              `db:"prevent_direct_cash_revenue"`
	RevenueMap               map[string]string `db:"revenue_map"` // jsonb
	ExpenseMap               map[string]string `db:"expense_map"` // jsonb
	AuditFields
}
