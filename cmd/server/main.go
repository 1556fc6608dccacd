package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/handlers"
)

func main() {
	service, err := app.NewService("config.toml")
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	if err := service.Store.ApplyMigrations(service.Config.Database.MigrationsDir); err != nil {
		logger.Error.Fatalf("Failed to apply migrations: %v", err)
	}

	entryHandler := handlers.NewEntryHandler(service)
	filterHandler := handlers.NewFilterHandler(service)
	reportHandler := handlers.NewReportHandler(service)
	bankHandler := handlers.NewBankAccountHandler(service)
	examinerHandler := handlers.NewExaminerHandler(service)
	examNameHandler := handlers.NewExamNameHandler(service)

	http.HandleFunc("POST /api/v1/entries", entryHandler.HandleCreateEntry)
	http.HandleFunc("GET /api/v1/entries", entryHandler.HandleListEntries)

	http.HandleFunc("GET /api/v1/exam-names", filterHandler.HandleExamNames)
	http.HandleFunc("GET /api/v1/branches", filterHandler.HandleBranches)
	http.HandleFunc("GET /api/v1/dates", filterHandler.HandleDates)
	http.HandleFunc("GET /api/v1/examiner-types", filterHandler.HandleExaminerTypes)

	http.HandleFunc("GET /api/v1/reports/daily-sheet", reportHandler.HandleDailySheet)
	http.HandleFunc("GET /api/v1/reports/daily-sheet/export", reportHandler.HandleDailySheetExport)
	http.HandleFunc("GET /api/v1/reports/cover-sheet", reportHandler.HandleCoverSheet)
	http.HandleFunc("GET /api/v1/reports/cover-sheet/export", reportHandler.HandleCoverSheetExport)
	http.HandleFunc("GET /api/v1/reports/payment-sheet", reportHandler.HandlePaymentSheet)
	http.HandleFunc("GET /api/v1/reports/payment-sheet/export", reportHandler.HandlePaymentSheetExport)

	http.HandleFunc("POST /api/v1/bank-accounts", bankHandler.HandleCreate)
	http.HandleFunc("GET /api/v1/bank-accounts", bankHandler.HandleList)
	http.HandleFunc("GET /api/v1/bank-accounts/{id}", bankHandler.HandleGet)
	http.HandleFunc("PUT /api/v1/bank-accounts/{id}", bankHandler.HandleUpdate)
	http.HandleFunc("DELETE /api/v1/bank-accounts/{id}", bankHandler.HandleDelete)

	http.HandleFunc("GET /api/v1/examiners", examinerHandler.HandleDirectory)
	http.HandleFunc("GET /api/v1/examiners/{name}", examinerHandler.HandleProfile)

	http.HandleFunc("GET /api/v1/current-exam-name", examNameHandler.HandleGet)
	http.HandleFunc("POST /api/v1/current-exam-name", examNameHandler.HandleSet)

	if service.Config.Server.EnableAuth {
		tokenHandler := handlers.NewTokenHandler(service)
		http.HandleFunc("POST /api/v1/admin/tokens/{clerk}", tokenHandler.HandleIssue)
		http.HandleFunc("DELETE /api/v1/admin/tokens/{clerk}", tokenHandler.HandleRevoke)
	}

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting viva server on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Viva server failed: %v", err)
	}
}
