package telegram

import (
	"fmt"
	"math"
	"strings"

	"calibration-bot/internal/domain/entity"
)

func verdictMark(pass bool) string {
	if pass {
		return "✅"
	}
	return "❌"
}

// formatColorResult описывает результат проверки цветопередачи.
func formatColorResult(result entity.ColorBalanceResult) string {
	if result.Err != nil {
		return fmt.Sprintf("⚠️ Не удалось найти карту на снимке: %v\nВсе поля помечены как непрошедшие.", result.Err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎨 %s — цветопередача %s\n", result.CardName, verdictMark(result.Pass))
	fmt.Fprintf(&sb, "Порог расстояния: %.0f\n\n", result.Threshold)
	for _, c := range result.Checks {
		fmt.Fprintf(&sb, "%s %s: %s (HSV %s), Δ=%.1f\n", verdictMark(c.Pass), c.Name, c.Sample.Hex(), c.HSV, c.Distance)
	}

	if rejected := result.Rejected(); len(rejected) > 0 {
		names := make([]string, len(rejected))
		for i, c := range rejected {
			names[i] = c.Name
		}
		fmt.Fprintf(&sb, "\nНе приняты: %s", strings.Join(names, ", "))
	}
	return sb.String()
}

// formatCardRegion описывает, где на снимке найдена карта.
func formatCardRegion(analysis *entity.CardAnalysis) string {
	r := analysis.Region
	x, y := r.Center()
	return fmt.Sprintf("📐 Карта найдена: %d×%d px из %d×%d, центр (%d, %d), сетка %d×%d",
		r.Width, r.Height, analysis.ImageWidth, analysis.ImageHeight, x, y, analysis.Grid.Rows, analysis.Grid.Cols)
}

// formatMetric описывает числовую метрику с порогом.
func formatMetric(title string, m entity.MetricResult) string {
	if m.Err != nil {
		return fmt.Sprintf("⚠️ %s: не удалось измерить (%v). Метрика не пройдена.", title, m.Err)
	}

	value := fmt.Sprintf("%.2f", m.Value)
	if math.IsInf(m.Value, 1) {
		value = "∞"
	}
	return fmt.Sprintf("%s %s: %s (порог %s)", verdictMark(m.Pass), title, value, m.Threshold)
}

// formatLens описывает результат калибровки объектива.
func formatLens(metric entity.MetricResult, lens *entity.LensCalibration) string {
	text := formatMetric("Ошибка репроекции", metric)
	if lens == nil {
		return text
	}

	m := lens.CameraMatrix
	return fmt.Sprintf("%s\nКадров использовано: %d из %d\nfx=%.1f fy=%.1f cx=%.1f cy=%.1f",
		text, lens.FramesUsed, lens.FramesTotal, m[0][0], m[1][1], m[0][2], m[1][2])
}

// formatSummary короткая сводка отчёта.
func formatSummary(report *entity.CalibrationReport) string {
	return fmt.Sprintf("📋 %s\n%s Резкость\n%s Разрешение\n%s Освещённость\n%s Цветопередача\n\nИтог: %s",
		report.Title,
		verdictMark(report.Focus.Pass),
		verdictMark(report.Reprojection.Pass),
		verdictMark(report.Light.Pass),
		verdictMark(report.Colors.Pass),
		verdictMark(report.Pass()),
	)
}
