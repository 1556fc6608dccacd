package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/Pratik-Gohel/Viva-management/internal/app"
	"github.com/Pratik-Gohel/Viva-management/internal/export"
	"github.com/Pratik-Gohel/Viva-management/internal/store"
)

// Offline xlsx exporter. One-shot by default; with -schedule it keeps
// running and re-exports on the given cron expression, for the office
// machine that archives every report nightly.
func main() {
	var (
		configPath   = flag.String("config", "config.toml", "Path to config file")
		report       = flag.String("report", "daily", "Report to export: daily, cover or payment")
		examName     = flag.String("exam", "", "Exam name filter (empty or ALL for all)")
		branch       = flag.String("branch", "", "Branch filter (empty or ALL for all)")
		examDate     = flag.String("date", "", "Exam date filter, YYYY-MM-DD (empty or ALL for all)")
		examinerType = flag.String("type", "", "Examiner type filter (empty or ALL for all)")
		outDir       = flag.String("out", ".", "Directory to write the xlsx into")
		schedule     = flag.String("schedule", "", "Cron expression; empty runs once and exits")
	)
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Close()

	filter := store.EntryFilter{
		ExamName:     *examName,
		Branch:       *branch,
		ExamDate:     *examDate,
		ExaminerType: *examinerType,
	}

	run := func() error {
		return exportReport(service, *report, filter, *outDir)
	}

	if *schedule == "" {
		if err := run(); err != nil {
			logger.Error.Fatalf("Export failed: %v", err)
		}
		return
	}

	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Cron(*schedule).Do(func() {
		if err := run(); err != nil {
			logger.Error.Printf("Export failed: %v", err)
		}
	}); err != nil {
		logger.Error.Fatalf("Failed to schedule export: %v", err)
	}
	scheduler.StartAsync()

	logger.Info.Printf("Exporting %s sheet on schedule %q", *report, *schedule)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	scheduler.Stop()
	logger.Info.Println("Exporter stopped")
}

func exportReport(service *app.Service, report string, filter store.EntryFilter, outDir string) error {
	var (
		wb       *export.Workbook
		filename string
		now      = time.Now()
	)

	switch report {
	case "daily":
		rows, err := service.DailySheet(filter)
		if err != nil {
			return err
		}
		wb = export.DailySheet(rows, service.Config.Export.DailySheetName)
		filename = export.DailySheetFilename(now)
	case "cover":
		rows, err := service.CoverSheet(filter)
		if err != nil {
			return err
		}
		wb = export.CoverSheet(rows, service.Config.Export.CoverSheetName)
		filename = export.CoverSheetFilename(now)
	case "payment":
		rows, total, err := service.PaymentSheet(filter)
		if err != nil {
			return err
		}
		wb = export.PaymentSheet(rows, service.Config.Export.PaymentSheetName)
		filename = export.PaymentSheetFilename(now)
		logger.Info.Printf("Payment sheet total: %.2f across %d rows", total, len(rows))
	default:
		return fmt.Errorf("unknown report %q, want daily, cover or payment", report)
	}

	path := filepath.Join(outDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := wb.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Info.Printf("Wrote %s", path)
	return nil
}
