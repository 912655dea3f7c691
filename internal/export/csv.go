package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"hangwa-be/internal/order"
	"hangwa-be/internal/revenue"
	"hangwa-be/internal/utils"
)

// utf8BOM makes Excel open the file as UTF-8 instead of the system code page.
const utf8BOM = "\uFEFF"

const dateTimeLayout = "2006-01-02 15:04"

// formulaPrefixes start a formula in spreadsheet apps.
const formulaPrefixes = "=+-@\t\r"

var orderHeader = []string{
	"주문번호", "주문일시", "고객명", "연락처", "입금자명",
	"우편번호", "주소", "상세주소",
	"소박스", "대박스", "보자기",
	"배송비", "합계", "도서산간",
	"상태", "발송예정일", "결제상태", "실입금액", "요청사항",
}

var revenueHeader = []string{
	"주문번호", "주문일시",
	"소박스", "대박스", "보자기",
	"합계", "실입금액", "할인", "미입금", "원가", "배송비", "순이익",
}

var statusLabels = map[order.Status]string{
	order.StatusPending:       "주문접수",
	order.StatusScheduled:     "발송예정",
	order.StatusSellerShipped: "발송완료",
	order.StatusDelivered:     "배송완료",
}

func StatusLabel(s order.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func WriteOrders(w io.Writer, orders []*order.Order) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader); err != nil {
		return err
	}

	for _, o := range orders {
		remote := ""
		if o.RemoteArea {
			remote = "Y"
		}
		actual := ""
		if o.ActualPaidAmount != nil {
			actual = itoa(*o.ActualPaidAmount)
		}

		record := []string{
			o.OrderNumber,
			o.CreatedAt.In(utils.KST).Format(dateTimeLayout),
			textCell(o.CustomerName),
			textCell(o.CustomerPhone),
			textCell(utils.PtrString(o.DepositorName)),
			textCell(o.Address.Zip),
			textCell(o.Address.Line1),
			textCell(o.Address.Line2),
			strconv.Itoa(o.SmallBoxQuantity),
			strconv.Itoa(o.LargeBoxQuantity),
			strconv.Itoa(o.WrappingQuantity),
			itoa(o.ShippingFee),
			itoa(o.TotalAmount),
			remote,
			StatusLabel(o.Status),
			utils.FormatDatePtr(o.ScheduledDate),
			string(o.PaymentStatus),
			actual,
			textCell(utils.PtrString(o.SpecialRequests)),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRevenue writes one row per order followed by a totals row.
func WriteRevenue(w io.Writer, report *revenue.Report) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(revenueHeader); err != nil {
		return err
	}

	for _, r := range report.Rows {
		record := []string{
			r.OrderNumber,
			r.CreatedAt.In(utils.KST).Format(dateTimeLayout),
			strconv.Itoa(r.SmallBoxQuantity),
			strconv.Itoa(r.LargeBoxQuantity),
			strconv.Itoa(r.WrappingQuantity),
			itoa(r.TotalAmount),
			itoa(r.ActualRevenue),
			itoa(r.Discount),
			itoa(r.Unpaid),
			itoa(r.ProductCost),
			itoa(r.ShippingFee),
			itoa(r.NetProfit),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	s := report.Summary
	total := []string{
		"합계", strconv.FormatInt(s.OrderCount, 10) + "건",
		itoa(s.SmallBoxQuantity),
		itoa(s.LargeBoxQuantity),
		itoa(s.WrappingQuantity),
		itoa(s.TotalRevenue),
		itoa(s.ActualRevenue),
		itoa(s.TotalDiscount),
		itoa(s.TotalUnpaid),
		itoa(s.TotalCost - s.TotalShippingFee),
		itoa(s.TotalShippingFee),
		itoa(s.NetProfit),
	}
	if err := cw.Write(total); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

// textCell quotes customer-entered text so a spreadsheet shows it verbatim
// instead of evaluating it.
func textCell(s string) string {
	if s != "" && strings.ContainsRune(formulaPrefixes, rune(s[0])) {
		return "'" + s
	}
	return s
}
