package port

import "github.com/bazarhat/shopcore/internal/core/domain"

// InvoiceRenderer turns a finalized order aggregate into a document stream.
type InvoiceRenderer interface {
	RenderInvoice(order *domain.Order) ([]byte, error)
}

// ReportExporter turns a sales report into a spreadsheet stream.
type ReportExporter interface {
	ExportReport(report *domain.SalesReport) ([]byte, error)
}
