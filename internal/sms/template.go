package sms

import "strings"

type Kind string

const (
	KindOrderReceived    Kind = "order_received"
	KindPaymentConfirmed Kind = "payment_confirmed"
	KindShipped          Kind = "shipped"
	KindScheduled        Kind = "scheduled"
)

var TemplateMap = map[Kind][]string{
	KindOrderReceived: {
		"[{{business}}] {{name}}님, 주문이 접수되었습니다.",
		"주문번호: {{order_number}}",
		"{{items}}",
		"결제 금액: {{total}}",
		"입금 계좌: {{bank}}",
		"입금 확인 후 발송해 드립니다. 감사합니다.",
	},
	KindPaymentConfirmed: {
		"[{{business}}] {{name}}님, 입금이 확인되었습니다.",
		"주문번호: {{order_number}}",
		"확인 금액: {{paid}}",
		"정성껏 준비해서 보내드리겠습니다.",
	},
	KindShipped: {
		"[{{business}}] {{name}}님, 주문하신 상품이 발송되었습니다.",
		"주문번호: {{order_number}}",
		"배송지: {{address}}",
		"맛있게 드세요. 감사합니다.",
	},
	KindScheduled: {
		"[{{business}}] {{name}}님, 주문하신 상품은 {{scheduled_date}}에 발송 예정입니다.",
		"주문번호: {{order_number}}",
		"발송되면 다시 안내해 드리겠습니다.",
	},
}

type Vars map[string]string

func InjectVariables(lines []string, vars Vars) []string {
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		updated := line
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}

	return result
}
