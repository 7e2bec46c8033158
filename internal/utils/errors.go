package utils

import "errors"

// Common application errors used across services.
var (
	ErrEmptyCart          = errors.New("EMPTY_CART")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrCartItemNotFound   = errors.New("CART_ITEM_NOT_FOUND")
	ErrDuplicateName      = errors.New("DUPLICATE_NAME")
	ErrDuplicateReference = errors.New("DUPLICATE_REFERENCE")
	ErrDuplicateEmail     = errors.New("DUPLICATE_EMAIL")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrUserNotFound       = errors.New("USER_NOT_FOUND")
	ErrInvalidQuantity    = errors.New("INVALID_QUANTITY")
)
