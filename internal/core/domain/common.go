package domain

import "time"

// Currency identifies one of the two currencies the agency operates in.
// Amounts in different currencies are tracked separately and never converted.
type Currency string

const (
	USD Currency = "USD"
	IQD Currency = "IQD"
)

// IsValid reports whether the currency is one of the supported codes.
func (c Currency) IsValid() bool {
	return c == USD || c == IQD
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}
