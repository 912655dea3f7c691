package sms

import (
	"fmt"
	"strings"
	"time"

	"hangwa-be/internal/pricing"
	"hangwa-be/internal/utils"
)

// Order is the part of an order a customer message can mention.
type Order struct {
	OrderNumber      string
	CustomerName     string
	CustomerPhone    string
	Address          string
	Quantities       pricing.Quantities
	TotalAmount      int64
	ActualPaidAmount *int64
	ScheduledDate    *time.Time
}

// Sender is the seller identity printed in messages.
type Sender struct {
	BusinessName string
	BankLine     string
}

// Message is a ready-to-send text together with the shortcut that sends it.
type Message struct {
	Kind  Kind   `json:"kind"`
	Phone string `json:"phone"`
	Text  string `json:"message"`
	URL   string `json:"url"`
}

func Build(kind Kind, o Order, from Sender, shortcut string) (Message, error) {
	lines, ok := TemplateMap[kind]
	if !ok {
		return Message{}, ErrUnknownTemplate
	}
	if strings.TrimSpace(o.CustomerPhone) == "" {
		return Message{}, ErrPhoneRequired
	}

	paid := o.TotalAmount
	if o.ActualPaidAmount != nil {
		paid = *o.ActualPaidAmount
	}

	business := from.BusinessName
	if business == "" {
		business = "한과"
	}

	vars := Vars{
		"business":       business,
		"name":           o.CustomerName,
		"order_number":   o.OrderNumber,
		"items":          itemsLine(o.Quantities),
		"total":          utils.FormatKRW(o.TotalAmount),
		"paid":           utils.FormatKRW(paid),
		"bank":           from.BankLine,
		"address":        o.Address,
		"scheduled_date": utils.FormatDatePtr(o.ScheduledDate),
	}

	text := strings.Join(InjectVariables(lines, vars), "\n")
	return Message{
		Kind:  kind,
		Phone: o.CustomerPhone,
		Text:  text,
		URL:   ShortcutURL(shortcut, o.CustomerPhone, text),
	}, nil
}

func itemsLine(q pricing.Quantities) string {
	parts := make([]string, 0, len(pricing.Products))
	for _, p := range pricing.Products {
		if n := q.Of(p); n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d개", p.Label(), n))
		}
	}
	return strings.Join(parts, ", ")
}
