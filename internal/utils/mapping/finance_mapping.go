package mapping

import (
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/rihlat/travel_finance_app/internal/models"
)

// ToDomainFinanceAccountMapping converts the singleton mapping row to its domain form,
// guaranteeing non-nil category maps.
func ToDomainFinanceAccountMapping(m models.FinanceAccountMapping) domain.FinanceAccountMapping {
	d := domain.FinanceAccountMapping{
		ReceivableAccountID:      m.ReceivableAccountID,
		PayableAccountID:         m.PayableAccountID,
		DefaultCashID:            m.DefaultCashID,
		DefaultBankID:            m.DefaultBankID,
		PreventDirectCashRevenue: m.PreventDirectCashRevenue,
		RevenueMap:               m.RevenueMap,
		ExpenseMap:               m.ExpenseMap,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
	if d.RevenueMap == nil {
		d.RevenueMap = map[string]string{}
	}
	if d.ExpenseMap == nil {
		d.ExpenseMap = map[string]string{}
	}
	return d
}
