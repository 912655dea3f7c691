package setting

import "errors"

var (
	ErrSettingNotFound = errors.New("setting not found")
	ErrKeyRequired     = errors.New("setting key is required")
)
