package logslider

// HandleValue is the state of one slider handle in both coordinate systems.
type HandleValue struct {
	// Extreme is the configured bound the handle belongs to (MinAmount for low, MaxAmount for high)
	Extreme       float64
	CurrentAmount float64
	CurrentSlider float64
}

// IsAtExtreme reports whether the handle sits exactly on its configured bound.
func (h HandleValue) IsAtExtreme() bool {
	return h.CurrentAmount == h.Extreme
}

// RangeResult is the payload of every listener notification.
type RangeResult struct {
	Low         HandleValue
	High        HandleValue
	ValuesRange float64
	Exponent    float64
}

// SliderListener receives notifications from a RangeController.
// Both methods are called synchronously on the goroutine that drives the controller.
type SliderListener interface {
	OnSliderMoving(result RangeResult)
	OnSliderStop(result RangeResult)
}

// ListenerFuncs adapts plain functions to a SliderListener. Nil functions are skipped.
type ListenerFuncs struct {
	Moving func(result RangeResult)
	Stop   func(result RangeResult)
}

func (l ListenerFuncs) OnSliderMoving(result RangeResult) {
	if l.Moving != nil {
		l.Moving(result)
	}
}

func (l ListenerFuncs) OnSliderStop(result RangeResult) {
	if l.Stop != nil {
		l.Stop(result)
	}
}

// CurrentValue sets one handle either from an amount or, when Amount is nil, from a slider position.
type CurrentValue struct {
	Amount        *float64
	DefaultSlider float64
}

// AmountValue is a shortcut for a CurrentValue that carries an amount
func AmountValue(amount float64) CurrentValue {
	return CurrentValue{Amount: &amount}
}
