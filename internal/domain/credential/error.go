package credential

import "errors"

var (
	ErrNotFound         = errors.New("credential not found")
	ErrValidation       = errors.New("invalid credential data")
	ErrStoreUnavailable = errors.New("vault store unavailable")
)
