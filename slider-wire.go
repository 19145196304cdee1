package logslider

import (
	"fmt"

	"github.com/SKAARHOJ/ibeam-logslider-go/valuehelpers"
	"google.golang.org/protobuf/types/known/structpb"
)

// Response and event field names
const (
	fieldKind        = "kind"
	fieldLow         = "low"
	fieldHigh        = "high"
	fieldValuesRange = "values_range"
	fieldExponent    = "exponent"
	fieldStatus      = "status"

	fieldExtreme       = "extreme"
	fieldCurrentAmount = "current_amount"
	fieldCurrentSlider = "current_slider"
	fieldIsAtExtreme   = "is_at_extreme"

	fieldID       = "id"
	fieldMessage  = "message"
	fieldResolved = "resolved"
)

// numberField reads a request field. Missing fields and unparseable text fall back, the way a
// host treats an empty input box.
func numberField(s *structpb.Struct, key string, fallback float64) float64 {
	v, ok := s.GetFields()[key]
	if !ok {
		return fallback
	}
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue
	case *structpb.Value_StringValue:
		return valuehelpers.ParseAmount(kind.StringValue, fallback)
	}
	return fallback
}

func handleToStruct(h HandleValue) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldExtreme:       structpb.NewNumberValue(h.Extreme),
		fieldCurrentAmount: structpb.NewNumberValue(h.CurrentAmount),
		fieldCurrentSlider: structpb.NewNumberValue(h.CurrentSlider),
		fieldIsAtExtreme:   structpb.NewBoolValue(h.IsAtExtreme()),
	}}
}

func structToHandle(s *structpb.Struct) HandleValue {
	return HandleValue{
		Extreme:       numberField(s, fieldExtreme, 0),
		CurrentAmount: numberField(s, fieldCurrentAmount, 0),
		CurrentSlider: numberField(s, fieldCurrentSlider, 0),
	}
}

func resultToStruct(r RangeResult) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldLow:         structpb.NewStructValue(handleToStruct(r.Low)),
		fieldHigh:        structpb.NewStructValue(handleToStruct(r.High)),
		fieldValuesRange: structpb.NewNumberValue(r.ValuesRange),
		fieldExponent:    structpb.NewNumberValue(r.Exponent),
	}}
}

func structToResult(s *structpb.Struct) RangeResult {
	return RangeResult{
		Low:         structToHandle(s.GetFields()[fieldLow].GetStructValue()),
		High:        structToHandle(s.GetFields()[fieldHigh].GetStructValue()),
		ValuesRange: numberField(s, fieldValuesRange, 0),
		Exponent:    numberField(s, fieldExponent, 0),
	}
}

func eventToStruct(event *RangeEvent) *structpb.Struct {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldKind: structpb.NewStringValue(event.Kind.String()),
	}}
	if event.Kind == EventStatus && event.Status != nil {
		s.Fields[fieldStatus] = structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			fieldID:       structpb.NewStringValue(event.Status.ID),
			fieldMessage:  structpb.NewStringValue(event.Status.Message),
			fieldResolved: structpb.NewBoolValue(event.Status.Resolved),
		}})
		return s
	}
	for key, value := range resultToStruct(event.Result).Fields {
		s.Fields[key] = value
	}
	return s
}

func structToEvent(s *structpb.Struct) (*RangeEvent, error) {
	kind, err := parseEventKind(s.GetFields()[fieldKind].GetStringValue())
	if err != nil {
		return nil, err
	}
	event := &RangeEvent{Kind: kind}
	if kind == EventStatus {
		status := s.GetFields()[fieldStatus].GetStructValue()
		if status == nil {
			return nil, fmt.Errorf("status event without status")
		}
		event.Status = &StatusMessage{
			ID:       status.GetFields()[fieldID].GetStringValue(),
			Message:  status.GetFields()[fieldMessage].GetStringValue(),
			Resolved: status.GetFields()[fieldResolved].GetBoolValue(),
		}
		return event, nil
	}
	event.Result = structToResult(s)
	return event, nil
}
