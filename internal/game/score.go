// internal/game/score.go
//
// Light-to-points mapping and the render contract shared with the UI.
//
// Points decays exponentially with exposure:
//
//	points = round(100 * e^(-4 * light/100)), never below MinPoints
//
// so the first few percent of light cost the most. Callers scoring a
// finished round must pass the round's high-water mark, not the current
// slider position.
package game

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	MaxLight  = 100
	MinLight  = 0
	MaxPoints = 100
	MinPoints = 1

	decayRate = 4.0
)

// Points returns the score earned for a round whose exposure peaked at light.
// Inputs outside [0,100] are clamped first.
func Points(light int) int {
	light = ClampLight(light)
	raw := MaxPoints * math.Exp(-decayRate*float64(light)/MaxLight)
	// Round half away from zero; all values here are positive.
	p := int(decimal.NewFromFloat(raw).Round(0).IntPart())
	if p < MinPoints {
		return MinPoints
	}
	return p
}

// ClampLight bounds a light percentage to [0,100].
func ClampLight(light int) int {
	switch {
	case light < MinLight:
		return MinLight
	case light > MaxLight:
		return MaxLight
	}
	return light
}

// MaskOpacity is the opacity of the mask layer drawn over the photo:
// fully opaque at 0% light, fully transparent at 100%.
func MaskOpacity(light int) float64 {
	return 1 - float64(ClampLight(light))/MaxLight
}

// Brightness is the diagnostic brightness figure shown in test mode.
func Brightness(light int) float64 {
	return float64(ClampLight(light)) / MaxLight * 0.5
}
