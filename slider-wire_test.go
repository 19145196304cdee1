package logslider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func Test_numberField(t *testing.T) {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		"number":  structpb.NewNumberValue(42.5),
		"text":    structpb.NewStringValue("100 000"),
		"garbage": structpb.NewStringValue("lots"),
		"empty":   structpb.NewStringValue(""),
		"flag":    structpb.NewBoolValue(true),
	}}
	tests := []struct {
		name     string
		key      string
		fallback float64
		want     float64
	}{
		{name: "number", key: "number", fallback: 1, want: 42.5},
		{name: "grouped text", key: "text", fallback: 1, want: 100000},
		{name: "unparseable text", key: "garbage", fallback: 7, want: 7},
		{name: "empty text", key: "empty", fallback: 7, want: 7},
		{name: "wrong kind", key: "flag", fallback: 3, want: 3},
		{name: "missing", key: "nope", fallback: 100, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := numberField(s, tt.key, tt.fallback); got != tt.want {
				t.Errorf("numberField(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}

	assert.Equal(t, 5.0, numberField(nil, "number", 5))
}

func Test_eventToStruct(t *testing.T) {
	result := RangeResult{
		Low:         HandleValue{Extreme: 0, CurrentAmount: 0, CurrentSlider: 0},
		High:        HandleValue{Extreme: 100000, CurrentAmount: 17677.669529663688, CurrentSlider: 50},
		ValuesRange: 100000,
		Exponent:    2.5,
	}
	s := eventToStruct(&RangeEvent{Kind: EventMoving, Result: result})

	assert.Equal(t, "moving", s.Fields[fieldKind].GetStringValue())
	low := s.Fields[fieldLow].GetStructValue()
	require.NotNil(t, low)
	assert.True(t, low.Fields[fieldIsAtExtreme].GetBoolValue())
	high := s.Fields[fieldHigh].GetStructValue()
	require.NotNil(t, high)
	assert.False(t, high.Fields[fieldIsAtExtreme].GetBoolValue())

	event, err := structToEvent(s)
	require.NoError(t, err)
	assert.Equal(t, EventMoving, event.Kind)
	assert.Equal(t, result, event.Result)
	assert.Nil(t, event.Status)
}

func Test_structToEvent_Status(t *testing.T) {
	msg := &StatusMessage{ID: statusDegenerateRange, Message: "max amount must be above min amount"}
	event, err := structToEvent(eventToStruct(&RangeEvent{Kind: EventStatus, Status: msg}))
	require.NoError(t, err)
	assert.Equal(t, EventStatus, event.Kind)
	assert.Equal(t, msg, event.Status)

	_, err = structToEvent(&structpb.Struct{Fields: map[string]*structpb.Value{
		fieldKind: structpb.NewStringValue("status"),
	}})
	assert.Error(t, err)

	_, err = structToEvent(&structpb.Struct{})
	assert.Error(t, err)
}
