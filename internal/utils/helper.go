package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FormatKRW renders an amount as "82,000원".
func FormatKRW(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + "원"
	if neg {
		return "-" + out
	}
	return out
}

// KST is the seller's calendar; dates shown to people are rendered in it
// whatever zone the database session returned.
var KST = time.FixedZone("KST", 9*60*60)

func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(KST).Format("2006-01-02")
}

func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	WriteJSON(w, code, map[string]string{"error": message})
}
