package domain

// FinanceAccountMapping resolves business categories to chart-of-accounts entries.
// It is a singleton configuration record; a structurally complete zero value (empty
// string ids, non-nil maps) stands in when nothing has been configured yet.
type FinanceAccountMapping struct {
	ReceivableAccountID      string            `json:"receivableAccountID"`
	PayableAccountID         string            `json:"payableAccountID"`
	DefaultCashID            string            `json:"defaultCashID"`
	DefaultBankID            string            `json:"defaultBankID"`
	PreventDirectCashRevenue bool              `json:"preventDirectCashRevenue"`
	RevenueMap               map[string]string `json:"revenueMap"` // category -> accountID
	ExpenseMap               map[string]string `json:"expenseMap"` // category -> accountID
	AuditFields
}

// EmptyFinanceAccountMapping returns a structurally complete unconfigured mapping.
func EmptyFinanceAccountMapping() FinanceAccountMapping {
	return FinanceAccountMapping{
		RevenueMap: map[string]string{},
		ExpenseMap: map[string]string{},
	}
}

// FinanceAccountMappingPatch is a partial update. Nil fields leave the stored
// value untouched; map entries merge at the key level, they never replace the
// whole map.
type FinanceAccountMappingPatch struct {
	ReceivableAccountID      *string           `json:"receivableAccountID,omitempty"`
	PayableAccountID         *string           `json:"payableAccountID,omitempty"`
	DefaultCashID            *string           `json:"defaultCashID,omitempty"`
	DefaultBankID            *string           `json:"defaultBankID,omitempty"`
	PreventDirectCashRevenue *bool             `json:"preventDirectCashRevenue,omitempty"`
	RevenueMap               map[string]string `json:"revenueMap,omitempty"`
	ExpenseMap               map[string]string `json:"expenseMap,omitempty"`
}

// MergeMapping applies a patch to a base mapping and returns the result.
// This is the merge contract the persistence layer mirrors: scalars overwrite
// only when supplied, category maps merge key by key.
func MergeMapping(base FinanceAccountMapping, patch FinanceAccountMappingPatch) FinanceAccountMapping {
	merged := base
	if patch.ReceivableAccountID != nil {
		merged.ReceivableAccountID = *patch.ReceivableAccountID
	}
	if patch.PayableAccountID != nil {
		merged.PayableAccountID = *patch.PayableAccountID
	}
	if patch.DefaultCashID != nil {
		merged.DefaultCashID = *patch.DefaultCashID
	}
	if patch.DefaultBankID != nil {
		merged.DefaultBankID = *patch.DefaultBankID
	}
	if patch.PreventDirectCashRevenue != nil {
		merged.PreventDirectCashRevenue = *patch.PreventDirectCashRevenue
	}

	merged.RevenueMap = mergeCategoryMap(base.RevenueMap, patch.RevenueMap)
	merged.ExpenseMap = mergeCategoryMap(base.ExpenseMap, patch.ExpenseMap)
	return merged
}

func mergeCategoryMap(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}
