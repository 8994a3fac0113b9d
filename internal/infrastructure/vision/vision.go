package vision

import (
	"errors"
	"fmt"
)

var errGoCVDisabled = errors.New("gocv build tag is not enabled")

// SegmentParams пороги выделения карты на снимке.
type SegmentParams struct {
	BlurKernel       int     // размер ядра Гаусса
	SaturationCutoff float64 // порог канала S (0-255)
	ValueCutoff      float64 // порог канала V (0-255)
	CannyLow         float64
	CannyHigh        float64
	CloseKernel      int // размер прямоугольного ядра морфологического замыкания
}

// DefaultSegmentParams возвращает пороги, подобранные под карту CameraTrax 24.
func DefaultSegmentParams() SegmentParams {
	return SegmentParams{
		BlurKernel:       5,
		SaturationCutoff: 60,
		ValueCutoff:      60,
		CannyLow:         30,
		CannyHigh:        180,
		CloseKernel:      3,
	}
}

// LineParams параметры вероятностного преобразования Хафа.
type LineParams struct {
	Rho           float64
	ThetaDegrees  float64
	Threshold     int
	MinLineLength float64
	MaxLineGap    float64
	Extension     float64 // на сколько пикселей продлевать отрезок с каждой стороны
	Thickness     int     // толщина линии на диагностической картинке
}

func DefaultLineParams() LineParams {
	return LineParams{
		Rho:           1,
		ThetaDegrees:  1,
		Threshold:     80,
		MinLineLength: 30,
		MaxLineGap:    40,
		Extension:     350,
		Thickness:     4,
	}
}

// GoCVAnalyzer находит цветовую карту и снимает цвета её ячеек.
type GoCVAnalyzer struct {
	Segment SegmentParams
	Lines   LineParams
	// MaxDiagnosticSide ограничивает размер диагностических PNG (0 без ограничения).
	MaxDiagnosticSide int
}

// NewGoCVAnalyzer создаёт анализатор с заданными порогами сегментации.
func NewGoCVAnalyzer(segment SegmentParams) *GoCVAnalyzer {
	return &GoCVAnalyzer{
		Segment:           segment,
		Lines:             DefaultLineParams(),
		MaxDiagnosticSide: 1024,
	}
}

// FocusMethod мера резкости.
type FocusMethod string

const (
	FocusSobelVariance FocusMethod = "sobel_variance" // среднее модуля Собеля + дисперсия яркости
	FocusLaplacian     FocusMethod = "laplacian"      // дисперсия лапласиана
	FocusTenengrad     FocusMethod = "tenengrad"      // среднее модуля Собеля
	FocusLocalVariance FocusMethod = "local_variance" // средняя локальная дисперсия в окне 5×5
	FocusBrenner       FocusMethod = "brenner"        // сумма квадратов разностей со сдвигом на 2 пикселя
)

// ParseFocusMethod разбирает название меры; пустая строка даёт меру по умолчанию.
func ParseFocusMethod(s string) (FocusMethod, error) {
	switch m := FocusMethod(s); m {
	case "":
		return FocusSobelVariance, nil
	case FocusSobelVariance, FocusLaplacian, FocusTenengrad, FocusLocalVariance, FocusBrenner:
		return m, nil
	default:
		return "", fmt.Errorf("unknown focus method %q", s)
	}
}

// DefaultFocusThreshold возвращает порог приёмки, подобранный под шкалу меры.
// Значения разных мер несравнимы между собой.
func DefaultFocusThreshold(method FocusMethod) float64 {
	switch method {
	case FocusLaplacian:
		return 10000
	case FocusTenengrad:
		return 100
	case FocusLocalVariance:
		return 200
	case FocusBrenner:
		return 5000
	default:
		return 150000
	}
}

// GoCVFocusMeter оценивает резкость выбранной мерой.
type GoCVFocusMeter struct {
	Method      FocusMethod
	SobelKernel int
	LocalWindow int
}

func NewGoCVFocusMeter(method FocusMethod) *GoCVFocusMeter {
	return &GoCVFocusMeter{
		Method:      method,
		SobelKernel: 3,
		LocalWindow: 5,
	}
}

// GoCVLightMeter считает среднюю яркость серого изображения.
type GoCVLightMeter struct{}

func NewGoCVLightMeter() *GoCVLightMeter {
	return &GoCVLightMeter{}
}

// GoCVLensCalibrator калибрует камеру по внутренним углам шахматной доски.
type GoCVLensCalibrator struct {
	PatternCols   int // внутренних углов по горизонтали
	PatternRows   int // внутренних углов по вертикали
	SubPixWindow  int
	MaxIterations int
	Epsilon       float64
}

// NewGoCVLensCalibrator создаёт калибратор для доски cols×rows внутренних углов.
func NewGoCVLensCalibrator(cols, rows int) *GoCVLensCalibrator {
	return &GoCVLensCalibrator{
		PatternCols:   cols,
		PatternRows:   rows,
		SubPixWindow:  11,
		MaxIterations: 30,
		Epsilon:       0.001,
	}
}
