package address

import "strings"

// Address is a Korean delivery address as captured by the postal-code lookup widget.
type Address struct {
	Zip   string `json:"zip"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
}

// Full joins the street and detail lines.
func (a Address) Full() string {
	return strings.TrimSpace(strings.TrimSpace(a.Line1) + " " + strings.TrimSpace(a.Line2))
}

func (a Address) Validate() error {
	if strings.TrimSpace(a.Zip) == "" {
		return ErrZipRequired
	}
	if strings.TrimSpace(a.Line1) == "" {
		return ErrLine1Required
	}
	return nil
}

func (a Address) IsRemote() bool {
	return IsRemoteArea(a.Full())
}
