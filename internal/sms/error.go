package sms

import "errors"

var (
	ErrUnknownTemplate = errors.New("unknown message template")
	ErrPhoneRequired   = errors.New("recipient phone is required")
)
