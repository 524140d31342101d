package services

import (
	"fmt"

	"github.com/rihlat/travel_finance_app/internal/apperrors"
)

// Service-level errors. Each wraps an apperrors sentinel so handlers can map
// them to HTTP statuses with errors.Is.
var (
	ErrDuplicateCode           = fmt.Errorf("%w: account code already in use", apperrors.ErrDuplicate)
	ErrInvalidParent           = fmt.Errorf("%w: parent account does not exist", apperrors.ErrValidation)
	ErrInvalidOperation        = fmt.Errorf("%w: operation not allowed for this account", apperrors.ErrValidation)
	ErrAccountInUse            = fmt.Errorf("%w: account has postings or children", apperrors.ErrConflict)
	ErrInvalidTransfer         = fmt.Errorf("%w: transfer endpoints invalid", apperrors.ErrValidation)
	ErrInvalidAccountReference = fmt.Errorf("%w: referenced account unknown or not a leaf", apperrors.ErrValidation)
	ErrUnbalanced              = fmt.Errorf("%w: journal lines do not balance", apperrors.ErrValidation)
	ErrUnmappedCategory        = fmt.Errorf("%w: no account mapped for category", apperrors.ErrValidation)
	ErrAlreadySettled          = fmt.Errorf("%w: remittance already settled", apperrors.ErrConflict)
	ErrAlreadyReversed         = fmt.Errorf("%w: voucher already reversed", apperrors.ErrConflict)
	ErrDistributionMismatch    = fmt.Errorf("%w: partner amounts do not sum to the profit", apperrors.ErrValidation)
)
