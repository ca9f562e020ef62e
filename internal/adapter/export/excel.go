package export

import (
	"fmt"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a sales report as an xlsx workbook with a summary sheet
// and a payment-medium breakdown.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

const summarySheet = "Summary"
const mediumSheet = "Payment Mediums"

func (e *Exporter) ExportReport(report *domain.SalesReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Sales Report"},
		{"Period", report.From.Format("2006-01-02") + " to " + report.To.Format("2006-01-02")},
		{},
		{"Orders", report.Orders},
		{"Paid orders", report.PaidOrders},
		{"Gross sales", report.GrossSales.String()},
		{"Net sales", report.NetSales.String()},
		{"Total discount", report.TotalDiscount.String()},
		{"Average order value", report.AverageOrder.String()},
		{"Units sold", report.UnitsSold},
		{"Distinct products sold", report.ProductsSold},
		{"Buyers", report.Buyers},
		{},
		{"Orders by status"},
	}
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusProcessing,
		domain.OrderStatusShipped, domain.OrderStatusDelivered,
		domain.OrderStatusCancelled, domain.OrderStatusRefunded,
	} {
		rows = append(rows, []interface{}{string(status), report.StatusCounts[status]})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(mediumSheet); err != nil {
		return nil, err
	}
	header := []interface{}{"Medium", "Payments", "Amount"}
	if err := f.SetSheetRow(mediumSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, mt := range report.Mediums {
		row := []interface{}{string(mt.Medium), mt.Payments, mt.Amount.String()}
		if err := f.SetSheetRow(mediumSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
