package utils

import "errors"

// Common application errors used across services.
var (
	ErrUnauthorized         = errors.New("UNAUTHORIZED")
	ErrInvalidToken         = errors.New("INVALID_TOKEN")
	ErrSourceNotFound       = errors.New("SOURCE_NOT_FOUND")
	ErrProductNotFound      = errors.New("PRODUCT_NOT_FOUND")
	ErrOrderNotFound        = errors.New("ORDER_NOT_FOUND")
	ErrInvalidQuantity      = errors.New("INVALID_QUANTITY")
	ErrInvalidPaymentMethod = errors.New("INVALID_PAYMENT_METHOD")
	ErrInvalidVPA           = errors.New("INVALID_VPA")
	ErrMissingBankCode      = errors.New("MISSING_BANK_CODE")
	ErrEmptyCart            = errors.New("EMPTY_CART")
	ErrInvalidSignature     = errors.New("INVALID_SIGNATURE")
	ErrCatalogUnavailable   = errors.New("CATALOG_UNAVAILABLE")
)
