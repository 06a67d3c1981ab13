package temperature

import (
	"math"

	"github.com/appengine-ltd/hydrostress/internal/config"
)

// ProcessFactors scale process rates: 1 means unaffected.
type ProcessFactors struct {
	Photosynthesis float64 `json:"photosynthesis"`
	Respiration    float64 `json:"respiration"`
	Growth         float64 `json:"growth"`
	Development    float64 `json:"development"`
	Overall        float64 `json:"overall"`
}

func neutralFactors() ProcessFactors {
	return ProcessFactors{Photosynthesis: 1, Respiration: 1, Growth: 1, Development: 1, Overall: 1}
}

// Factors converts a stress level into per-process factors using the
// zone's sensitivities.
func Factors(p config.TemperatureParams, stress float64, z Zone) ProcessFactors {
	s := p.Sensitivity
	var f ProcessFactors
	switch {
	case z == ZoneHeat:
		f = ProcessFactors{
			Photosynthesis: scale(stress, s.PhotosynthesisHeat),
			Respiration:    scale(stress, s.RespirationHeat),
			Growth:         scale(stress, s.GrowthHeat),
			Development:    scale(stress, s.DevelopmentHeat),
		}
	case z.IsColdSide():
		f = ProcessFactors{
			Photosynthesis: scale(stress, s.PhotosynthesisCold),
			Respiration:    scale(stress, s.RespirationCold),
			Growth:         scale(stress, s.GrowthCold),
			Development:    scale(stress, s.DevelopmentCold),
		}
	default:
		return neutralFactors()
	}
	f.Overall = overall(p.Overall, f)
	return f
}

func scale(stress, sensitivity float64) float64 {
	return math.Max(0, 1-stress*sensitivity)
}

func overall(w config.OverallWeights, f ProcessFactors) float64 {
	sum := w.Photosynthesis + w.Growth + w.Development + w.Respiration
	if sum <= 0 {
		return 1
	}
	v := f.Photosynthesis*w.Photosynthesis +
		f.Growth*w.Growth +
		f.Development*w.Development +
		f.Respiration*w.Respiration
	return v / sum
}
