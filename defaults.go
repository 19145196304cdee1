package logslider

const (
	DefaultAmountMin   float64 = 0
	DefaultAmountMax   float64 = 100000
	DefaultSliderSteps float64 = 100
)

// DefaultCurrentValues puts the handles on both ends of the default slider space.
func DefaultCurrentValues() []CurrentValue {
	return []CurrentValue{
		{DefaultSlider: 0},
		{DefaultSlider: DefaultSliderSteps},
	}
}
