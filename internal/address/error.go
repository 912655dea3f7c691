package address

import "errors"

var (
	ErrZipRequired   = errors.New("zip code is required")
	ErrLine1Required = errors.New("address is required")
)
