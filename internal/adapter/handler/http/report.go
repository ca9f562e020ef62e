package http

import (
	"net/http"
	"time"

	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	Handler
	service  port.Service
	exporter port.ReportExporter
}

func NewReportHandler(service port.Service, exporter port.ReportExporter, logger *zap.Logger) (*ReportHandler, error) {
	return &ReportHandler{
		Handler:  *NewHandler(logger),
		service:  service,
		exporter: exporter,
	}, nil
}

// Overview is the all-time admin dashboard rollup.
func (rh *ReportHandler) Overview(ctx *gin.Context) {
	overview, err := rh.service.OrdersOverview(ctx)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}
	rh.handleSuccess(ctx, overview)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SalesReport aggregates a date range, current day by default. With
// format=xlsx the report is rendered as a spreadsheet instead of JSON.
func (rh *ReportHandler) SalesReport(ctx *gin.Context) {
	var from, to time.Time
	if t, ok := parseDateQuery(ctx, "from"); ok {
		from = t
	}
	if t, ok := parseDateQuery(ctx, "to"); ok {
		to = t
	}

	report, err := rh.service.SalesReport(ctx, from, to)
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	if ctx.Query("format") == "xlsx" {
		doc, err := rh.exporter.ExportReport(report)
		if err != nil {
			rh.logger.Error("export report", zap.Error(err))
			rh.handleError(ctx, err)
			return
		}
		ctx.Header("Content-Disposition",
			"attachment; filename=sales_"+report.From.Format("2006-01-02")+".xlsx")
		ctx.Data(http.StatusOK, xlsxContentType, doc)
		return
	}

	rh.handleSuccess(ctx, report)
}
