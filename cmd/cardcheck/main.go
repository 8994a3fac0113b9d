package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"calibration-bot/config"
	app "calibration-bot/internal/application"
	"calibration-bot/internal/container"
	"calibration-bot/internal/domain/entity"
)

func main() {
	var cardPath, focusPath, lightPath, boardGlob, diagnosticsDir, pdfPath string
	var rows, cols int

	flag.StringVar(&cardPath, "card", "", "Color card image")
	flag.StringVar(&focusPath, "focus", "", "Image for focus measurement")
	flag.StringVar(&lightPath, "light", "", "Image for light intensity measurement")
	flag.StringVar(&boardGlob, "chessboard", "", "Glob of chessboard images for lens calibration, e.g. 'boards/*.png'")
	flag.IntVar(&rows, "rows", 0, "Color card rows (default from CARD_ROWS or 6)")
	flag.IntVar(&cols, "cols", 0, "Color card columns (default from CARD_COLS or 4)")
	flag.StringVar(&diagnosticsDir, "diagnostics", "", "Directory to write mask/edges/grid/cells PNGs")
	flag.StringVar(&pdfPath, "pdf", "", "Write the PDF report to this file, e.g. CameraCalibrationReport.pdf")
	flag.Parse()

	if cardPath == "" && focusPath == "" && lightPath == "" && boardGlob == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if rows > 0 {
		cfg.CardRows = rows
	}
	if cols > 0 {
		cfg.CardCols = cols
	}

	c, err := container.FromConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	in, err := readInputs(cardPath, focusPath, lightPath, boardGlob)
	if err != nil {
		log.Fatalf("Failed to read inputs: %v", err)
	}

	ctx := context.Background()
	report, analysis := c.CalibrationService.Evaluate(ctx, in)

	if diagnosticsDir != "" && analysis != nil {
		if err := writeDiagnostics(diagnosticsDir, analysis.Diagnostics); err != nil {
			log.Printf("Failed to write diagnostics: %v", err)
		}
	}

	text, err := c.CalibrationService.Render(ctx, report)
	if err != nil {
		log.Fatalf("Failed to render report: %v", err)
	}
	fmt.Print(text)

	if pdfPath != "" {
		pdf, err := c.CalibrationService.RenderDocument(ctx, report)
		if err != nil {
			log.Fatalf("Failed to render PDF report: %v", err)
		}
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("Failed to write PDF report: %v", err)
		}
		log.Printf("PDF report written to %s", pdfPath)
	}

	if !report.Pass() {
		os.Exit(1)
	}
}

func readInputs(cardPath, focusPath, lightPath, boardGlob string) (app.Inputs, error) {
	var in app.Inputs
	var err error

	if in.Card, err = readOptional(cardPath); err != nil {
		return in, err
	}
	if in.Focus, err = readOptional(focusPath); err != nil {
		return in, err
	}
	if in.Light, err = readOptional(lightPath); err != nil {
		return in, err
	}

	if boardGlob != "" {
		files, err := filepath.Glob(boardGlob)
		if err != nil {
			return in, fmt.Errorf("bad chessboard glob: %w", err)
		}
		if len(files) == 0 {
			log.Printf("No chessboard images match %q", boardGlob)
		}
		sort.Strings(files)
		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				return in, err
			}
			in.Chessboards = append(in.Chessboards, data)
		}
	}

	return in, nil
}

func readOptional(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	return os.ReadFile(path)
}

func writeDiagnostics(dir string, d entity.Diagnostics) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	files := map[string][]byte{
		"mask.png":  d.Mask,
		"edges.png": d.Edges,
		"grid.png":  d.GridLines,
		"cells.png": d.Cells,
	}
	for name, data := range files {
		if len(data) == 0 {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
