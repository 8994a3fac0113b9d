package entity

import "time"

// ColorCheck сравнение одного поля карты с эталоном.
type ColorCheck struct {
	Name      string
	Sample    Color
	Reference Color
	HSV       HSV // HSV измеренного цвета
	Distance  float64
	Pass      bool
}

// ColorBalanceResult результат проверки цветопередачи.
type ColorBalanceResult struct {
	CardName  string
	Checks    []ColorCheck
	Threshold float64
	Pass      bool // true, только если прошли все поля
	Err       error
}

// Rejected возвращает поля, не прошедшие проверку.
func (r *ColorBalanceResult) Rejected() []ColorCheck {
	var out []ColorCheck
	for _, c := range r.Checks {
		if !c.Pass {
			out = append(out, c)
		}
	}
	return out
}

// MetricResult числовая метрика с порогом.
type MetricResult struct {
	Name      string
	Value     float64
	Threshold string
	Pass      bool
	Err       error
}

// LensCalibration результат калибровки по шахматной доске.
type LensCalibration struct {
	CameraMatrix      [3][3]float64
	DistCoefficients  []float64
	ReprojectionError float64
	FramesUsed        int
	FramesTotal       int
}

// CalibrationReport итоговый отчёт проверки камеры.
type CalibrationReport struct {
	Title        string
	CardName     string
	GeneratedAt  time.Time
	Focus        MetricResult
	Lens         LensCalibration
	Reprojection MetricResult
	Light        MetricResult
	LightRange   [2]float64
	Colors       ColorBalanceResult
	Diagnostics  *Diagnostics // картинки разбора карты, nil если карта не разобрана
}

// Pass общий вердикт: проходят все метрики.
func (r *CalibrationReport) Pass() bool {
	return r.Focus.Pass && r.Reprojection.Pass && r.Light.Pass && r.Colors.Pass
}
