package logslider

// ServerOption changes how NewServer sets up the slider server and its manager.
type ServerOption func(s *SliderServer)

// WithDistributorBuffer sizes the event channel of every subscriber. Events for a subscriber whose
// channel is full get dropped.
func WithDistributorBuffer(size int) ServerOption {
	return func(s *SliderServer) {
		if size <= 0 {
			return
		}
		s.manager.distributorBuffer = size
	}
}

// WithInitialParameters configures the slider as soon as the manager starts, before any client
// connects.
func WithInitialParameters(minAmount, maxAmount, sliderSteps float64) ServerOption {
	return func(s *SliderServer) {
		params := NewRangeParameters(minAmount, maxAmount, sliderSteps)
		s.manager.initial = &params
	}
}
