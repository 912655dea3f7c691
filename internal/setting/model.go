package setting

import "time"

// Setting is one key/value pair of storefront configuration such as prices,
// costs and shipping rules. Values are stored as text and parsed by readers.
type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description *string   `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UpsertInput struct {
	Key         string  `json:"key"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}
