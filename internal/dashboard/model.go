package dashboard

import (
	"errors"
	"time"
)

var ErrKeyRequired = errors.New("content key is required")

// Content is a named text block shown on the storefront, such as a notice or
// the order deadline banner.
type Content struct {
	Key       string    `json:"key"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}
