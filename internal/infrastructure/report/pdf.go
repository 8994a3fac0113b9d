package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
)

const (
	rowHeight = 7.0
	pageSide  = 14.0
)

// PDFRenderer собирает отчёт в PDF формата A4: те же разделы, что и в тексте,
// плюс образцы цветов и картинки разбора карты.
type PDFRenderer struct {
	ImageWidth float64 // ширина картинок разбора, мм
	Compress   bool
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		ImageWidth: 85,
		Compress:   true,
	}
}

func (r *PDFRenderer) RenderDocument(ctx context.Context, report *entity.CalibrationReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageSide, pageSide, pageSide)
	pdf.SetAutoPageBreak(true, pageSide)
	pdf.SetCompression(r.Compress)
	pdf.SetTitle(report.Title, true)
	pdf.SetCreator("calibration-bot", true)
	if !report.GeneratedAt.IsZero() {
		pdf.SetCreationDate(report.GeneratedAt)
	}

	d := &document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, d.tr(report.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	d.field("Using:", report.CardName)
	d.field("Generated on:", report.GeneratedAt.Format(timeLayout))

	d.heading("Calibration Summary")
	d.header([]float64{60, 40}, "Metric", "Pass/Fail")
	d.summaryRow("Focus Value", report.Focus.Pass)
	d.summaryRow("Resolution", report.Reprojection.Pass)
	d.summaryRow("Light Intensity", report.Light.Pass)
	d.summaryRow("Color Balance", report.Colors.Pass)
	d.summaryRow("Overall", report.Pass())

	d.heading("Focus Analysis")
	widths := []float64{45, 45, 45}
	d.header(widths, "Focus Value", "Threshold", "Pass/Fail")
	d.metricRow(widths, report.Focus.Pass, fmt.Sprintf("%.2f", report.Focus.Value), report.Focus.Threshold)
	d.failure(report.Focus.Err)

	d.heading("Resolution Analysis")
	d.header(widths, "Camera Matrix", "", "")
	for _, row := range report.Lens.CameraMatrix {
		d.row(widths, fmt.Sprintf("%.3f", row[0]), fmt.Sprintf("%.3f", row[1]), fmt.Sprintf("%.3f", row[2]))
	}
	pdf.Ln(3)
	d.header([]float64{45}, "Distortion Coefficients")
	for _, v := range report.Lens.DistCoefficients {
		d.row([]float64{45}, fmt.Sprintf("%.5f", v))
	}
	if report.Lens.FramesTotal > 0 {
		d.note(fmt.Sprintf("Frames used: %d of %d", report.Lens.FramesUsed, report.Lens.FramesTotal))
	}

	d.heading("Reprojection Error")
	d.header(widths, "Reprojection Error", "Threshold", "Pass/Fail")
	d.metricRow(widths, report.Reprojection.Pass, formatError(report.Reprojection.Value), report.Reprojection.Threshold)
	d.failure(report.Reprojection.Err)

	d.heading("Light Intensity Analysis")
	d.header(widths, "Light Intensity", "Good Range", "Pass/Fail")
	d.metricRow(widths, report.Light.Pass, fmt.Sprintf("%.2f", report.Light.Value), formatRange(report.LightRange))
	d.failure(report.Light.Err)

	d.heading("Color Balance Analysis")
	colorWidths := []float64{38, 38, 22, 22, 22, 22}
	d.header(colorWidths, "Color", "HSV (H°, S%, V%)", "Sample", "Reference", "Distance", "Pass/Fail")
	for _, c := range report.Colors.Checks {
		d.colorRow(colorWidths, c)
	}
	d.failure(report.Colors.Err)

	if report.Diagnostics != nil {
		d.heading("Color Card Diagnostics")
		r.image(d, "cells", "Cells filled with the median color", report.Diagnostics.Cells)
		r.image(d, "grid", "Detected grid lines", report.Diagnostics.GridLines)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// image вставляет PNG по ширине ImageWidth с сохранением пропорций.
// Ошибка разбора PNG остаётся в pdf и возвращается из Output.
func (r *PDFRenderer) image(d *document, name, caption string, data []byte) {
	if len(data) == 0 {
		return
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	if d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data)) == nil {
		return
	}
	d.note(caption)
	d.pdf.ImageOptions(name, -1, 0, r.ImageWidth, 0, true, opts, 0, "")
	d.pdf.Ln(3)
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *document) heading(title string) {
	d.pdf.Ln(5)
	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.CellFormat(0, 8, d.tr(title), "", 1, "L", false, 0, "")
}

func (d *document) field(label, value string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(d.pdf.GetStringWidth(label)+2, 6, d.tr(label), "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, 6, d.tr(value), "", 1, "L", false, 0, "")
}

func (d *document) note(text string) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.CellFormat(0, 6, d.tr(text), "", 1, "L", false, 0, "")
}

func (d *document) failure(err error) {
	if err == nil {
		return
	}
	d.pdf.SetTextColor(200, 0, 0)
	d.note("Error: " + err.Error())
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) header(widths []float64, cells ...string) {
	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(211, 211, 211)
	for i, text := range cells {
		d.pdf.CellFormat(widths[i], rowHeight, d.tr(text), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *document) row(widths []float64, cells ...string) {
	d.pdf.SetFont("Helvetica", "", 9)
	for i, text := range cells {
		d.pdf.CellFormat(widths[i], rowHeight, d.tr(text), "1", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)
}

func (d *document) verdictCell(width float64, pass bool) {
	if pass {
		d.pdf.SetTextColor(0, 128, 0)
	} else {
		d.pdf.SetTextColor(200, 0, 0)
	}
	d.pdf.CellFormat(width, rowHeight, verdict(pass), "1", 0, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) summaryRow(metric string, pass bool) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.CellFormat(60, rowHeight, d.tr(metric), "1", 0, "L", false, 0, "")
	d.verdictCell(40, pass)
	d.pdf.Ln(-1)
}

func (d *document) metricRow(widths []float64, pass bool, value, threshold string) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.CellFormat(widths[0], rowHeight, value, "1", 0, "C", false, 0, "")
	d.pdf.CellFormat(widths[1], rowHeight, d.tr(threshold), "1", 0, "C", false, 0, "")
	d.verdictCell(widths[2], pass)
	d.pdf.Ln(-1)
}

// colorRow рисует строку таблицы цветов; образец и эталон показаны заливкой.
func (d *document) colorRow(widths []float64, c entity.ColorCheck) {
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.CellFormat(widths[0], rowHeight, d.tr(c.Name), "1", 0, "C", false, 0, "")
	d.pdf.CellFormat(widths[1], rowHeight, d.tr(c.HSV.String()), "1", 0, "C", false, 0, "")
	d.swatch(widths[2], c.Sample)
	d.swatch(widths[3], c.Reference)
	d.pdf.CellFormat(widths[4], rowHeight, fmt.Sprintf("%.2f", c.Distance), "1", 0, "C", false, 0, "")
	d.verdictCell(widths[5], c.Pass)
	d.pdf.Ln(-1)
}

func (d *document) swatch(width float64, c entity.Color) {
	d.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	d.pdf.CellFormat(width, rowHeight, "", "1", 0, "C", true, 0, "")
}

var _ port.DocumentRenderer = (*PDFRenderer)(nil)
