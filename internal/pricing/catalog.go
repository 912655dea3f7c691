package pricing

import (
	"strconv"
	"strings"
)

type Product int

const (
	SmallBox Product = iota
	LargeBox
	Wrapping
)

// Products lists every sellable product in form order.
var Products = []Product{SmallBox, LargeBox, Wrapping}

var productKeys = [...]string{"small_box", "large_box", "wrapping"}

var productLabels = [...]string{"한과 소박스", "한과 대박스", "보자기 포장"}

var (
	defaultPrices = [...]int64{19000, 21000, 1000}
	defaultCosts  = [...]int64{0, 0, 0}
)

func (p Product) Key() string {
	if p < SmallBox || p > Wrapping {
		return "unknown"
	}
	return productKeys[p]
}

func (p Product) Label() string {
	if p < SmallBox || p > Wrapping {
		return ""
	}
	return productLabels[p]
}

func (p Product) PriceKey() string { return p.Key() + "_price" }
func (p Product) CostKey() string  { return p.Key() + "_cost" }

// Snapshot is a point-in-time copy of the settings table.
type Snapshot map[string]string

// Int parses key as a non-negative integer amount, tolerating "19,000" style separators.
// Missing or malformed values yield fallback.
func (s Snapshot) Int(key string, fallback int64) int64 {
	raw, ok := s[key]
	if !ok {
		return fallback
	}
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func (s Snapshot) Bool(key string, fallback bool) bool {
	raw, ok := s[key]
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return b
}

func (s Snapshot) String(key, fallback string) string {
	if v := strings.TrimSpace(s[key]); v != "" {
		return v
	}
	return fallback
}

// PriceTable holds unit prices and costs resolved from a Snapshot.
type PriceTable struct {
	Prices [3]int64
	Costs  [3]int64
}

func NewPriceTable(s Snapshot) PriceTable {
	var t PriceTable
	for _, p := range Products {
		t.Prices[p] = s.Int(p.PriceKey(), defaultPrices[p])
		t.Costs[p] = s.Int(p.CostKey(), defaultCosts[p])
	}
	return t
}

// DefaultPriceTable is the table used when no setting has been configured.
func DefaultPriceTable() PriceTable {
	return NewPriceTable(nil)
}

func (t PriceTable) UnitPrice(p Product) int64 {
	if p < SmallBox || p > Wrapping {
		return 0
	}
	return t.Prices[p]
}

func (t PriceTable) UnitCost(p Product) int64 {
	if p < SmallBox || p > Wrapping {
		return 0
	}
	return t.Costs[p]
}
