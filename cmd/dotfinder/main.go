package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/ivlev/dotfinder/internal/analyzer"
	"github.com/ivlev/dotfinder/internal/config"
	"github.com/ivlev/dotfinder/internal/engine"
	"github.com/ivlev/dotfinder/internal/report"
	"github.com/ivlev/dotfinder/internal/source"
	"github.com/ivlev/dotfinder/internal/system"
)

// Overridden at build time with -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

var openSource = source.Open

func main() {
	log.SetFlags(0)

	inputPtr := flag.String("input", "", "Путь к изображению, папке с изображениями или PDF (по умолчанию: самый свежий файл в input/)")
	configPtr := flag.String("config", "", "YAML-файл с порогами детектора")
	reportPtr := flag.String("report", "", "Сохранить отчет (.yaml или .json); если указана папка, имя генерируется автоматически")
	overlayPtr := flag.String("overlay", "", "Папка для изображений с отмеченными маркерами")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	dpiPtr := flag.Int("dpi", 150, "DPI для страниц PDF")
	variantPtr := flag.String("variant", "red", "Детектор: red, opencv (требует сборки с -tags gocv)")
	momentsPtr := flag.String("moments", config.MomentsContour, "Моменты: contour (по контуру), area (по пикселям)")
	satMinPtr := flag.Int("sat-min", 100, "Минимальная насыщенность")
	valMinPtr := flag.Int("val-min", 100, "Минимальная яркость")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	// Флаги, заданные явно, важнее файла конфигурации
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = *workersPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "variant":
			cfg.Detector.Variant = *variantPtr
		case "moments":
			cfg.Detector.Moments = *momentsPtr
		case "sat-min":
			cfg.Detector.SaturationMin = *satMinPtr
		case "val-min":
			cfg.Detector.ValueMin = *valMinPtr
		}
	})
	cfg.InputPath = *inputPtr
	cfg.ReportPath = *reportPtr
	cfg.OverlayDir = *overlayPtr
	cfg.ShowStats = *statsPtr
	cfg.BuildVersion = buildVersion

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Ошибка конфигурации: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("[-] %v", err)
	}
}

// run performs one detection. Sources it opens are closed before it returns.
func run(cfg *config.Config) error {
	if cfg.InputPath == "" {
		latest, err := system.FindLatestImage("input")
		if err != nil {
			return fmt.Errorf("ошибка: %w. Положите изображение в input/ или укажите -input", err)
		}
		cfg.InputPath = latest
		log.Printf("[*] Выбран файл: %s", cfg.InputPath)
	}

	src, err := openSource(cfg.InputPath, cfg.DPI)
	if err != nil {
		return fmt.Errorf("ошибка загрузки: %w", err)
	}
	defer src.Close()

	det, err := analyzer.NewDetector(cfg.Detector.Variant, cfg.Detector)
	if err != nil {
		return fmt.Errorf("ошибка детектора: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := engine.NewProject(cfg, src, det).Run(ctx)
	if err != nil {
		return fmt.Errorf("ошибка анализа: %w", err)
	}

	if err := rep.WriteText(os.Stdout); err != nil {
		return fmt.Errorf("ошибка вывода: %w", err)
	}

	if cfg.ReportPath != "" {
		path := reportPath(cfg.ReportPath, cfg.InputPath)
		if err := report.Write(rep, path); err != nil {
			return fmt.Errorf("ошибка сохранения отчета: %w", err)
		}
		log.Printf("[+++] Отчет сохранен: %s", path)
	}

	if rep.MarkerCount() == 0 {
		log.Printf("[*] Красные маркеры не найдены")
	}
	return nil
}

// reportPath generates a file name when target is an existing directory.
func reportPath(target, input string) string {
	if fi, err := os.Stat(target); err == nil && fi.IsDir() {
		return report.GenerateReportPath(target, input, ".yaml")
	}
	return target
}
