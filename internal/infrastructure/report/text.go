package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"calibration-bot/internal/domain/entity"
	"calibration-bot/internal/domain/port"
)

const timeLayout = "Monday, 02 January 2006 15:04:05"

// TextRenderer рендерит отчёт простыми текстовыми таблицами.
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render собирает текст отчёта: сводка, затем разделы по каждой метрике.
func (r *TextRenderer) Render(ctx context.Context, report *entity.CalibrationReport) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\n", report.Title)
	fmt.Fprintf(w, "Using: %s\n", report.CardName)
	fmt.Fprintf(w, "Generated on: %s\n", report.GeneratedAt.Format(timeLayout))

	section(w, "Calibration Summary")
	fmt.Fprintln(w, "Metric\tPass/Fail\t")
	fmt.Fprintf(w, "Focus Value\t%s\t\n", verdict(report.Focus.Pass))
	fmt.Fprintf(w, "Resolution\t%s\t\n", verdict(report.Reprojection.Pass))
	fmt.Fprintf(w, "Light Intensity\t%s\t\n", verdict(report.Light.Pass))
	fmt.Fprintf(w, "Color Balance\t%s\t\n", verdict(report.Colors.Pass))
	fmt.Fprintf(w, "Overall\t%s\t\n", verdict(report.Pass()))

	section(w, "Focus Analysis")
	fmt.Fprintln(w, "Focus Value\tThreshold\tPass/Fail\t")
	fmt.Fprintf(w, "%.2f\t%s\t%s\t\n", report.Focus.Value, report.Focus.Threshold, verdict(report.Focus.Pass))
	failure(w, report.Focus.Err)

	section(w, "Resolution Analysis")
	if err := w.Flush(); err != nil {
		return "", err
	}
	writeCameraMatrix(&buf, report.Lens.CameraMatrix)
	fmt.Fprintln(w, "Distortion Coefficients\t")
	for _, v := range report.Lens.DistCoefficients {
		fmt.Fprintf(w, "%.5f\t\n", v)
	}
	if report.Lens.FramesTotal > 0 {
		fmt.Fprintf(w, "Frames used: %d of %d\n", report.Lens.FramesUsed, report.Lens.FramesTotal)
	}

	section(w, "Reprojection Error")
	fmt.Fprintln(w, "Reprojection Error\tThreshold\tPass/Fail\t")
	fmt.Fprintf(w, "%s\t%s\t%s\t\n", formatError(report.Reprojection.Value), report.Reprojection.Threshold, verdict(report.Reprojection.Pass))
	failure(w, report.Reprojection.Err)

	section(w, "Light Intensity Analysis")
	fmt.Fprintln(w, "Light Intensity\tGood Range\tPass/Fail\t")
	fmt.Fprintf(w, "%.2f\t%s\t%s\t\n", report.Light.Value, formatRange(report.LightRange), verdict(report.Light.Pass))
	failure(w, report.Light.Err)

	section(w, "Color Balance Analysis")
	fmt.Fprintln(w, "Color\tHSV (H°, S%, V%)\tSample\tReference\tDistance\tPass/Fail\t")
	for _, c := range report.Colors.Checks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\t\n",
			c.Name, c.HSV, c.Sample.Hex(), c.Reference.Hex(), c.Distance, verdict(c.Pass))
	}
	failure(w, report.Colors.Err)
	if rejected := report.Colors.Rejected(); len(rejected) > 0 && report.Colors.Err == nil {
		names := make([]string, len(rejected))
		for i, c := range rejected {
			names[i] = c.Name
		}
		fmt.Fprintf(w, "Not accepted: %s\n", strings.Join(names, ", "))
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}

func failure(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func verdict(pass bool) string {
	if pass {
		return "Pass"
	}
	return "Fail"
}

func formatError(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", v)
}

func formatRange(r [2]float64) string {
	return fmt.Sprintf("(%g, %g)", r[0], r[1])
}

// writeCameraMatrix печатает матрицу камеры с тремя знаками после запятой.
func writeCameraMatrix(w io.Writer, m [3][3]float64) {
	dense := mat.NewDense(3, 3, nil)
	for i := range m {
		dense.SetRow(i, m[i][:])
	}
	fmt.Fprintf(w, "Camera Matrix\n%.3f\n", mat.Formatted(dense, mat.Squeeze()))
}

// Проверка реализации интерфейса
var _ port.ReportRenderer = (*TextRenderer)(nil)
