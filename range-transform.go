package logslider

import "math"

// DeriveExponent returns the exponent of the power curve that maps slider space [0, sliderSteps]
// onto an amount range of the given width. It returns 0 (the degenerate sentinel) whenever the
// exponent would not be positive, the curve then collapses to the minimum amount.
// Ranges up to 1 fall in that case even though their bounds are valid: x^e can not pass through
// (steps, range) while staying increasing, so every position reports minAmount and the high handle
// never reaches maxAmount. Hosts with sub-unit ranges should scale their amounts (e.g. to cents).
func DeriveExponent(valuesRange, sliderSteps float64) float64 {
	if !isFinite(valuesRange) || !isFinite(sliderSteps) {
		return 0
	}
	if valuesRange <= 1 || sliderSteps <= 1 {
		return 0
	}
	return math.Log(valuesRange) / math.Log(sliderSteps)
}

// SliderToAmount converts a slider position into an amount: sliderValue^exponent + minAmount.
// A degenerate exponent always yields minAmount.
func SliderToAmount(sliderValue, exponent, minAmount float64) float64 {
	if exponent == 0 || !isFinite(exponent) {
		return minAmount
	}
	if sliderValue <= 0 {
		return minAmount
	}
	return math.Pow(sliderValue, exponent) + minAmount
}

// AmountToSlider converts an amount that already had minAmount subtracted back into a slider position.
func AmountToSlider(amountValue, exponent float64) float64 {
	if exponent == 0 || !isFinite(exponent) {
		return 0
	}
	// no real root below the curve origin
	if amountValue <= 0 || math.IsNaN(amountValue) {
		return 0
	}
	return math.Pow(amountValue, 1/exponent)
}

// RangeParameters is one immutable configuration of the slider curve.
// Create it with NewRangeParameters so Exponent always matches the bounds.
type RangeParameters struct {
	MinAmount   float64
	MaxAmount   float64
	SliderSteps float64
	Exponent    float64
}

// NewRangeParameters derives the exponent for the given bounds. Invalid bounds are accepted and
// produce a degenerate curve.
func NewRangeParameters(minAmount, maxAmount, sliderSteps float64) RangeParameters {
	return RangeParameters{
		MinAmount:   minAmount,
		MaxAmount:   maxAmount,
		SliderSteps: sliderSteps,
		Exponent:    DeriveExponent(maxAmount-minAmount, sliderSteps),
	}
}

// ValuesRange is the width of the amount range
func (p RangeParameters) ValuesRange() float64 {
	return p.MaxAmount - p.MinAmount
}

// IsDegenerate reports whether the curve collapsed to a constant MinAmount.
func (p RangeParameters) IsDegenerate() bool {
	return p.Exponent == 0
}

// ToAmount converts a slider position into amount space. The upper end of slider space maps to
// exactly MaxAmount.
func (p RangeParameters) ToAmount(sliderValue float64) float64 {
	if !p.IsDegenerate() && sliderValue == p.SliderSteps {
		return p.MaxAmount
	}
	return SliderToAmount(sliderValue, p.Exponent, p.MinAmount)
}

// ToSlider converts an amount into slider space (subtract MinAmount, then invert).
func (p RangeParameters) ToSlider(amountValue float64) float64 {
	if !p.IsDegenerate() && amountValue == p.MaxAmount {
		return p.SliderSteps
	}
	return AmountToSlider(amountValue-p.MinAmount, p.Exponent)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
