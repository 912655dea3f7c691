package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"hangwa-be/internal/config"
	"hangwa-be/internal/db"
	"hangwa-be/internal/export"
	"hangwa-be/internal/logger"
	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/revenue"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/utils"

	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
)

var kst = time.FixedZone("KST", 9*60*60)

func main() {
	from := flag.String("from", "", "first day of the report (YYYY-MM-DD, KST)")
	to := flag.String("to", "", "last day of the report, inclusive (YYYY-MM-DD, KST)")
	detail := flag.Bool("detail", false, "print one row per order")
	csvOut := flag.String("csv", "", "also write the report as CSV to this path")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	start, end, err := parseRange(*from, *to)
	if err != nil {
		logger.L().Fatal("invalid date range", zap.Error(err))
	}

	database := db.InitDB(cfg)
	defer database.Close()

	svc := order.NewService(
		order.NewRepository(database),
		payment.NewRepository(database),
		setting.NewService(setting.NewRepository(database), nil, cfg.SettingsCacheTTL),
	)

	ctx := utils.WithInternalRequest(context.Background())
	report, err := svc.Revenue(ctx, start, end)
	if err != nil {
		logger.L().Fatal("failed to build revenue report", zap.Error(err))
	}

	if err := printReport(os.Stdout, report, *detail); err != nil {
		logger.L().Fatal("failed to print report", zap.Error(err))
	}

	if *csvOut != "" {
		if err := writeCSV(*csvOut, report); err != nil {
			logger.L().Fatal("failed to write csv", zap.Error(err))
		}
		logger.L().Info("csv written", zap.String("path", *csvOut))
	}
}

// parseRange turns inclusive KST calendar days into a half-open [from, to) range.
func parseRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, kst)
		if err != nil {
			return nil, nil, fmt.Errorf("from: %w", err)
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, kst)
		if err != nil {
			return nil, nil, fmt.Errorf("to: %w", err)
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, fmt.Errorf("from %s is after to %s", from, to)
	}
	return start, end, nil
}

func printReport(out io.Writer, report *revenue.Report, detail bool) error {
	if detail {
		rows := tablewriter.NewWriter(out)
		rows.Header("주문번호", "주문일", "합계", "실입금액", "원가", "순이익")
		for _, r := range report.Rows {
			err := rows.Append([]string{
				r.OrderNumber,
				r.CreatedAt.In(kst).Format("2006-01-02"),
				utils.FormatKRW(r.TotalAmount),
				utils.FormatKRW(r.ActualRevenue),
				utils.FormatKRW(r.Cost),
				utils.FormatKRW(r.NetProfit),
			})
			if err != nil {
				return err
			}
		}
		if err := rows.Render(); err != nil {
			return err
		}
	}

	s := report.Summary
	summary := tablewriter.NewWriter(out)
	summary.Header("항목", "값")
	lines := [][]string{
		{"주문 수", strconv.FormatInt(s.OrderCount, 10) + "건"},
		{"소박스", strconv.FormatInt(s.SmallBoxQuantity, 10)},
		{"대박스", strconv.FormatInt(s.LargeBoxQuantity, 10)},
		{"보자기", strconv.FormatInt(s.WrappingQuantity, 10)},
		{"총 매출", utils.FormatKRW(s.TotalRevenue)},
		{"실입금", utils.FormatKRW(s.ActualRevenue)},
		{"할인", utils.FormatKRW(s.TotalDiscount)},
		{"미입금", utils.FormatKRW(s.TotalUnpaid)},
		{"원가", utils.FormatKRW(s.TotalCost)},
		{"배송비", utils.FormatKRW(s.TotalShippingFee)},
	}
	for _, l := range lines {
		if err := summary.Append(l); err != nil {
			return err
		}
	}
	summary.Footer("순이익", utils.FormatKRW(s.NetProfit))
	return summary.Render()
}

func writeCSV(path string, report *revenue.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteRevenue(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
