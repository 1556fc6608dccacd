package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/export"
	"github.com/Pratik-Gohel/Viva-management/internal/metrics"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	service *app.Service
}

func NewReportHandler(service *app.Service) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

func (h *ReportHandler) HandleDailySheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() { observeRequest(r, start, status) }()

	rows, err := h.service.DailySheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build daily sheet: %v", err)
		var message string
		status, message = serviceErrorStatus(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) HandleCoverSheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() { observeRequest(r, start, status) }()

	rows, err := h.service.CoverSheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build cover sheet: %v", err)
		var message string
		status, message = serviceErrorStatus(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *ReportHandler) HandlePaymentSheet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() { observeRequest(r, start, status) }()

	rows, total, err := h.service.PaymentSheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build payment sheet: %v", err)
		var message string
		status, message = serviceErrorStatus(err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rows":  rows,
		"total": total,
	})
}

func (h *ReportHandler) serveWorkbook(w http.ResponseWriter, report, filename string, wb *export.Workbook) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	if _, err := wb.WriteTo(w); err != nil {
		// Headers are gone by now; all we can do is log.
		logger.Error.Printf("Failed to stream %s export: %v", report, err)
		return
	}
	metrics.ReportExportsTotal.WithLabelValues(report).Inc()
}

func (h *ReportHandler) HandleDailySheetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.DailySheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build daily sheet export: %v", err)
		writeServiceError(w, err)
		return
	}

	wb := export.DailySheet(rows, h.service.Config.Export.DailySheetName)
	h.serveWorkbook(w, "daily-sheet", export.DailySheetFilename(time.Now()), wb)
}

func (h *ReportHandler) HandleCoverSheetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.CoverSheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build cover sheet export: %v", err)
		writeServiceError(w, err)
		return
	}

	wb := export.CoverSheet(rows, h.service.Config.Export.CoverSheetName)
	h.serveWorkbook(w, "cover-sheet", export.CoverSheetFilename(time.Now()), wb)
}

func (h *ReportHandler) HandlePaymentSheetExport(w http.ResponseWriter, r *http.Request) {
	rows, _, err := h.service.PaymentSheet(filterFromQuery(r))
	if err != nil {
		logger.Error.Printf("Failed to build payment sheet export: %v", err)
		writeServiceError(w, err)
		return
	}

	wb := export.PaymentSheet(rows, h.service.Config.Export.PaymentSheetName)
	h.serveWorkbook(w, "payment-sheet", export.PaymentSheetFilename(time.Now()), wb)
}
