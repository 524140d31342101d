package dto

import (
	"time"

	"github.com/rihlat/travel_finance_app/internal/core/domain"
)

// UpsertMappingRequest is a partial finance-account-mapping update. Absent
// fields leave stored values untouched; category map entries merge key by key.
type UpsertMappingRequest struct {
	ReceivableAccountID      *string           `json:"receivableAccountID"`
	PayableAccountID         *string           `json:"payableAccountID"`
	DefaultCashID            *string           `json:"defaultCashID"`
	DefaultBankID            *string           `json:"defaultBankID"`
	PreventDirectCashRevenue *bool             `json:"preventDirectCashRevenue"`
	RevenueMap               map[string]string `json:"revenueMap"`
	ExpenseMap               map[string]string `json:"expenseMap"`
}

// ToMappingPatch converts the request into the domain patch form.
func (r UpsertMappingRequest) ToMappingPatch() domain.FinanceAccountMappingPatch {
	return domain.FinanceAccountMappingPatch{
		ReceivableAccountID:      r.ReceivableAccountID,
		PayableAccountID:         r.PayableAccountID,
		DefaultCashID:            r.DefaultCashID,
		DefaultBankID:            r.DefaultBankID,
		PreventDirectCashRevenue: r.PreventDirectCashRevenue,
		RevenueMap:               r.RevenueMap,
		ExpenseMap:               r.ExpenseMap,
	}
}

// MappingResponse mirrors domain.FinanceAccountMapping.
type MappingResponse struct {
	ReceivableAccountID      string            `json:"receivableAccountID"`
	PayableAccountID         string            `json:"payableAccountID"`
	DefaultCashID            string            `json:"defaultCashID"`
	DefaultBankID            string            `json:"defaultBankID"`
	PreventDirectCashRevenue bool              `json:"preventDirectCashRevenue"`
	RevenueMap               map[string]string `json:"revenueMap"`
	ExpenseMap               map[string]string `json:"expenseMap"`
	LastUpdatedAt            time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy            string            `json:"lastUpdatedBy"`
}

// ToMappingResponse converts the domain mapping to its response DTO.
func ToMappingResponse(m domain.FinanceAccountMapping) MappingResponse {
	return MappingResponse{
		ReceivableAccountID:      m.ReceivableAccountID,
		PayableAccountID:         m.PayableAccountID,
		DefaultCashID:            m.DefaultCashID,
		DefaultBankID:            m.DefaultBankID,
		PreventDirectCashRevenue: m.PreventDirectCashRevenue,
		RevenueMap:               m.RevenueMap,
		ExpenseMap:               m.ExpenseMap,
		LastUpdatedAt:            m.LastUpdatedAt,
		LastUpdatedBy:            m.LastUpdatedBy,
	}
}
