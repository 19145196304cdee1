package logslider

import (
	"math"
	"testing"
)

func Test_parameterProblems(t *testing.T) {
	tests := []struct {
		name   string
		params RangeParameters
		want   int
	}{
		{name: "valid", params: NewRangeParameters(0, 100000, 100), want: 0},
		{name: "equal bounds", params: NewRangeParameters(50, 50, 100), want: 1},
		{name: "inverted bounds and one step", params: NewRangeParameters(100, 0, 1), want: 2},
		{name: "nan bound", params: NewRangeParameters(math.NaN(), 100, 100), want: 1},
		{name: "range below one", params: NewRangeParameters(0, 0.5, 100), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parameterProblems(tt.params); len(got) != tt.want {
				t.Errorf("parameterProblems() = %v, want %d problems", got, tt.want)
			}
		})
	}

	if got := describeProblems(NewRangeParameters(100, 0, 1)); got != "maximum amount is not above minimum amount; slider needs more than one step" {
		t.Errorf("describeProblems() = %q", got)
	}
}

func TestListenerFuncs_NilSafe(t *testing.T) {
	var moved int
	l := ListenerFuncs{Moving: func(RangeResult) { moved++ }}
	l.OnSliderMoving(RangeResult{})
	l.OnSliderStop(RangeResult{})
	ListenerFuncs{}.OnSliderMoving(RangeResult{})
	if moved != 1 {
		t.Errorf("Moving called %d times, want 1", moved)
	}
}
