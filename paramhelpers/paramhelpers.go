package paramhelpers

import "google.golang.org/protobuf/types/known/structpb"

// Request field names
const (
	FieldMinAmount   = "min_amount"
	FieldMaxAmount   = "max_amount"
	FieldSliderSteps = "slider_steps"
	FieldLowAmount   = "low_amount"
	FieldHighAmount  = "high_amount"
	FieldLowSlider   = "low_slider"
	FieldHighSlider  = "high_slider"
)

// Configure builds the request for Slider/Configure. Amount and step fields can be left out on the
// wire, the server then uses 0 for amounts and the default step count.
func Configure(minAmount, maxAmount, sliderSteps float64) *structpb.Struct {
	return values(map[string]float64{
		FieldMinAmount:   minAmount,
		FieldMaxAmount:   maxAmount,
		FieldSliderSteps: sliderSteps,
	})
}

// ConfigureText builds a Configure request straight from user input boxes, the server parses the
// text and falls back for empty or invalid fields.
func ConfigureText(minAmount, maxAmount, sliderSteps string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldMinAmount:   structpb.NewStringValue(minAmount),
		FieldMaxAmount:   structpb.NewStringValue(maxAmount),
		FieldSliderSteps: structpb.NewStringValue(sliderSteps),
	}}
}

// Amounts builds the request for Slider/SetAmounts (amount space)
func Amounts(lowAmount, highAmount float64) *structpb.Struct {
	return values(map[string]float64{
		FieldLowAmount:  lowAmount,
		FieldHighAmount: highAmount,
	})
}

// Drag builds the request for Slider/Drag (slider space)
func Drag(lowSlider, highSlider float64) *structpb.Struct {
	return values(map[string]float64{
		FieldLowSlider:  lowSlider,
		FieldHighSlider: highSlider,
	})
}

func values(fields map[string]float64) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for key, value := range fields {
		s.Fields[key] = structpb.NewNumberValue(value)
	}
	return s
}
