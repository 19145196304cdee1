package logslider

import (
	log "github.com/s00500/env_logger"
	"go.uber.org/atomic"
)

// RangeController keeps the live curve parameters and the two handle positions (in slider space)
// and reports changes to a SliderListener in amount space.
//
// It is not safe for concurrent use, drive it from one goroutine (see SliderManager).
// Listeners may call back into the controller, the new state is used from the next notification on.
type RangeController struct {
	params     RangeParameters
	listener   SliderListener
	configured atomic.Bool

	lowSlider  float64
	highSlider float64
}

// NewRangeController returns an unconfigured controller, every mutation is ignored until Configure.
func NewRangeController() *RangeController {
	return &RangeController{}
}

// Configure replaces the curve parameters and the listener. Handle positions are kept as they are.
// A nil listener silences notifications.
func (c *RangeController) Configure(minAmount, maxAmount, sliderSteps float64, listener SliderListener) {
	params := NewRangeParameters(minAmount, maxAmount, sliderSteps)
	validateParameters(params)

	c.params = params
	c.listener = listener
	c.configured.Store(true)
	log.Debugf("Slider configured: amounts [%v, %v], steps %v, exponent %v", minAmount, maxAmount, sliderSteps, params.Exponent)
}

// ConfigureDefaults configures the default amount range over the default slider steps.
func (c *RangeController) ConfigureDefaults(listener SliderListener) {
	c.Configure(DefaultAmountMin, DefaultAmountMax, DefaultSliderSteps, listener)
}

// IsConfigured reports whether Configure has been called at least once
func (c *RangeController) IsConfigured() bool {
	return c.configured.Load()
}

// Parameters returns the live parameters and whether the controller is configured.
func (c *RangeController) Parameters() (RangeParameters, bool) {
	return c.params, c.IsConfigured()
}

// SetCurrentAmounts moves both handles to the given amounts and fires a moving notification.
func (c *RangeController) SetCurrentAmounts(lowAmount, highAmount float64) {
	if !c.IsConfigured() {
		log.Debugf("Ignoring amounts %v, %v: slider is not configured yet", lowAmount, highAmount)
		return
	}
	c.lowSlider = sliderPosition(c.params.ToSlider(lowAmount), c.lowSlider)
	c.highSlider = sliderPosition(c.params.ToSlider(highAmount), c.highSlider)
	c.notifyMoving()
}

// SetCustomValues sets the handles in order (low, high). A value without amount falls back to its
// default slider position. Missing values leave the handle where it is.
func (c *RangeController) SetCustomValues(values ...CurrentValue) {
	if !c.IsConfigured() {
		log.Debugf("Ignoring custom values: slider is not configured yet")
		return
	}
	if len(values) == 0 {
		values = DefaultCurrentValues()
	}
	positions := []*float64{&c.lowSlider, &c.highSlider}
	for i, value := range values {
		if i >= len(positions) {
			log.Warnf("Range slider has two handles, ignoring %d extra values", len(values)-len(positions))
			break
		}
		if value.Amount != nil {
			*positions[i] = sliderPosition(c.params.ToSlider(*value.Amount), *positions[i])
		} else {
			*positions[i] = sliderPosition(value.DefaultSlider, *positions[i])
		}
	}
	c.notifyMoving()
}

// OnDragUpdate stores the handle positions reported by the widget and fires a moving notification.
// A NaN or infinite position leaves that handle where it was.
func (c *RangeController) OnDragUpdate(lowSlider, highSlider float64) {
	if !c.IsConfigured() {
		return
	}
	c.lowSlider = sliderPosition(lowSlider, c.lowSlider)
	c.highSlider = sliderPosition(highSlider, c.highSlider)
	c.notifyMoving()
}

// OnDragEnd fires a stop notification for the last stored positions.
func (c *RangeController) OnDragEnd() {
	if !c.IsConfigured() {
		return
	}
	if listener := c.listener; listener != nil {
		listener.OnSliderStop(c.result())
	}
}

// AmountForSlider converts a slider position with the live parameters, used for thumb labels.
func (c *RangeController) AmountForSlider(sliderValue float64) float64 {
	return c.params.ToAmount(sliderValue)
}

// Result computes the current RangeResult. The bool is false while unconfigured.
func (c *RangeController) Result() (RangeResult, bool) {
	if !c.IsConfigured() {
		return RangeResult{}, false
	}
	return c.result(), true
}

// sliderPosition keeps the previous position for non-finite input, min/max would spread a NaN to both handles
func sliderPosition(value, previous float64) float64 {
	if isFinite(value) {
		return value
	}
	log.Warnf("Ignoring non-finite slider position %v, handle stays at %v", value, previous)
	return previous
}

func (c *RangeController) notifyMoving() {
	if listener := c.listener; listener != nil {
		listener.OnSliderMoving(c.result())
	}
}

func (c *RangeController) result() RangeResult {
	p := c.params
	lowSlider, highSlider := min(c.lowSlider, c.highSlider), max(c.lowSlider, c.highSlider)

	return RangeResult{
		Low: HandleValue{
			Extreme:       p.MinAmount,
			CurrentAmount: p.ToAmount(lowSlider),
			CurrentSlider: lowSlider,
		},
		High: HandleValue{
			Extreme:       p.MaxAmount,
			CurrentAmount: p.ToAmount(highSlider),
			CurrentSlider: highSlider,
		},
		ValuesRange: p.ValuesRange(),
		Exponent:    p.Exponent,
	}
}
