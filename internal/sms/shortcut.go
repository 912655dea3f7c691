package sms

import (
	"net/url"
	"strings"
)

// ShortcutURL builds the iOS Shortcuts link that hands phone and message to an
// on-device shortcut. The shortcut splits its text input on the first newline.
func ShortcutURL(shortcut, phone, message string) string {
	q := url.Values{}
	q.Set("name", shortcut)
	q.Set("input", "text")
	q.Set("text", phone+"\n"+message)

	// Shortcuts does not decode '+' as a space.
	return "shortcuts://run-shortcut?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}
