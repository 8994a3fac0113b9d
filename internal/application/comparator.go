package app

import "calibration-bot/internal/domain/entity"

// CompareColors сопоставляет измеренные цвета с эталонами карты по порядку.
// Недостающие цвета заменяются чёрным; проверка проходит, только если прошли все поля.
func CompareColors(card entity.ColorCard, samples []entity.Color, threshold float64) entity.ColorBalanceResult {
	result := entity.ColorBalanceResult{
		CardName:  card.Name,
		Checks:    make([]entity.ColorCheck, 0, len(card.Colors)),
		Threshold: threshold,
		Pass:      true,
	}

	for i, ref := range card.Colors {
		sample := entity.Black
		if i < len(samples) {
			sample = samples[i]
		}

		distance := entity.ColorDistance(sample, ref.RGB)
		check := entity.ColorCheck{
			Name:      ref.Name,
			Sample:    sample,
			Reference: ref.RGB,
			HSV:       entity.ToHSVScaled(sample),
			Distance:  distance,
			Pass:      distance <= threshold,
		}
		if !check.Pass {
			result.Pass = false
		}
		result.Checks = append(result.Checks, check)
	}

	return result
}
