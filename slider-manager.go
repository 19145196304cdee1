package logslider

import (
	"context"
	"errors"
	"fmt"

	"github.com/SKAARHOJ/ibeam-logslider-go/syncmap"
	log "github.com/s00500/env_logger"
	"go.uber.org/atomic"
)

// ErrManagerStopped is returned for commands sent after the manager loop has exited.
var ErrManagerStopped = errors.New("slider manager is not running")

// EventKind tells subscribers what caused a RangeEvent.
type EventKind int

const (
	EventMoving EventKind = iota + 1
	EventStop
	EventSnapshot
	EventStatus
)

func (k EventKind) String() string {
	switch k {
	case EventMoving:
		return "moving"
	case EventStop:
		return "stop"
	case EventSnapshot:
		return "snapshot"
	case EventStatus:
		return "status"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func parseEventKind(s string) (EventKind, error) {
	for _, k := range []EventKind{EventMoving, EventStop, EventSnapshot, EventStatus} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// RangeEvent is what subscribers of a SliderManager receive. Status is only set for EventStatus.
type RangeEvent struct {
	Kind   EventKind
	Result RangeResult
	Status *StatusMessage
}

type commandKind int

const (
	commandConfigure commandKind = iota
	commandAmounts
	commandCustomValues
	commandDrag
	commandDragEnd
	commandSnapshot
)

type sliderCommand struct {
	kind   commandKind
	values [3]float64
	custom []CurrentValue
	reply  chan sliderReply
}

type sliderReply struct {
	result     RangeResult
	configured bool
}

// SliderManager drives one RangeController from a single goroutine, so commands coming from many
// clients are applied strictly in order. Controller notifications are fanned out to subscribers.
type SliderManager struct {
	controller *RangeController
	in         chan sliderCommand
	done       chan struct{}
	started    atomic.Bool

	distributors      *syncmap.Map[chan *RangeEvent, bool]
	distributorBuffer int
	statuses          *statusCache

	initial *RangeParameters
}

// DefaultDistributorBuffer is the subscriber channel size used when none is given
const DefaultDistributorBuffer = 100

// NewSliderManager creates a stopped manager. distributorBuffer sizes every subscriber channel.
func NewSliderManager(distributorBuffer int) *SliderManager {
	if distributorBuffer <= 0 {
		distributorBuffer = DefaultDistributorBuffer
	}
	return &SliderManager{
		controller:        NewRangeController(),
		in:                make(chan sliderCommand),
		done:              make(chan struct{}),
		distributors:      syncmap.New[chan *RangeEvent, bool](),
		distributorBuffer: distributorBuffer,
		statuses:          newStatusCache(),
	}
}

// Start runs the manager loop until ctx is cancelled. Calling it twice has no effect.
func (m *SliderManager) Start(ctx context.Context) {
	if !m.started.CompareAndSwap(false, true) {
		log.Warn("Slider manager already started")
		return
	}
	if m.initial != nil {
		m.configure(m.initial.MinAmount, m.initial.MaxAmount, m.initial.SliderSteps)
	}

	go func() {
		defer close(m.done)
		for {
			select {
			case <-ctx.Done():
				log.Debugf("Slider manager stopped: %v", ctx.Err())
				return
			case cmd := <-m.in:
				m.ingestCommand(cmd)
			}
		}
	}()
}

// Done is closed once the manager loop has exited
func (m *SliderManager) Done() <-chan struct{} {
	return m.done
}

func (m *SliderManager) ingestCommand(cmd sliderCommand) {
	switch cmd.kind {
	case commandConfigure:
		m.configure(cmd.values[0], cmd.values[1], cmd.values[2])
	case commandAmounts:
		m.controller.SetCurrentAmounts(cmd.values[0], cmd.values[1])
	case commandCustomValues:
		m.controller.SetCustomValues(cmd.custom...)
	case commandDrag:
		m.controller.OnDragUpdate(cmd.values[0], cmd.values[1])
	case commandDragEnd:
		m.controller.OnDragEnd()
	case commandSnapshot:
	default:
		log.Errorf("Unknown slider command %d", cmd.kind)
	}

	if cmd.reply != nil {
		result, configured := m.controller.Result()
		cmd.reply <- sliderReply{result: result, configured: configured}
	}
}

func (m *SliderManager) configure(minAmount, maxAmount, sliderSteps float64) {
	m.controller.Configure(minAmount, maxAmount, sliderSteps, m)

	params, _ := m.controller.Parameters()
	status := &StatusMessage{ID: statusDegenerateRange, Resolved: !params.IsDegenerate()}
	if params.IsDegenerate() {
		status.Message = describeProblems(params)
	}
	if m.statuses.handleStatus(status) {
		m.distribute(&RangeEvent{Kind: EventStatus, Status: status})
	}
}

// OnSliderMoving implements SliderListener for the managed controller
func (m *SliderManager) OnSliderMoving(result RangeResult) {
	m.distribute(&RangeEvent{Kind: EventMoving, Result: result})
}

// OnSliderStop implements SliderListener for the managed controller
func (m *SliderManager) OnSliderStop(result RangeResult) {
	m.distribute(&RangeEvent{Kind: EventStop, Result: result})
}

func (m *SliderManager) distribute(event *RangeEvent) {
	for _, distributor := range m.distributors.Keys() {
		select {
		case distributor <- event:
		default:
			log.Errorf("Slider event channel would block, dropped %v event for one subscriber", event.Kind)
		}
	}
}

// Subscribe registers a new distributor channel. Call the returned function to unsubscribe.
func (m *SliderManager) Subscribe() (<-chan *RangeEvent, func()) {
	distributor := make(chan *RangeEvent, m.distributorBuffer)
	m.distributors.Set(distributor, true)
	log.Debugf("Added distributor number %v", m.distributors.Len())
	return distributor, func() {
		m.distributors.Delete(distributor)
	}
}

// ActiveStatuses lists the status messages that are currently raised.
func (m *SliderManager) ActiveStatuses() []*StatusMessage {
	return m.statuses.getActiveStatuses()
}

func (m *SliderManager) send(ctx context.Context, cmd sliderCommand) (sliderReply, error) {
	cmd.reply = make(chan sliderReply, 1)
	select {
	case m.in <- cmd:
	case <-m.done:
		return sliderReply{}, ErrManagerStopped
	case <-ctx.Done():
		return sliderReply{}, ctx.Err()
	}

	select {
	case reply := <-cmd.reply:
		return reply, nil
	case <-m.done:
		return sliderReply{}, ErrManagerStopped
	case <-ctx.Done():
		return sliderReply{}, ctx.Err()
	}
}

// Configure replaces the slider parameters, see RangeController.Configure.
func (m *SliderManager) Configure(ctx context.Context, minAmount, maxAmount, sliderSteps float64) error {
	_, err := m.send(ctx, sliderCommand{kind: commandConfigure, values: [3]float64{minAmount, maxAmount, sliderSteps}})
	return err
}

// SetCurrentAmounts moves both handles to amounts, see RangeController.SetCurrentAmounts.
func (m *SliderManager) SetCurrentAmounts(ctx context.Context, lowAmount, highAmount float64) error {
	_, err := m.send(ctx, sliderCommand{kind: commandAmounts, values: [3]float64{lowAmount, highAmount}})
	return err
}

// SetCustomValues forwards to RangeController.SetCustomValues.
func (m *SliderManager) SetCustomValues(ctx context.Context, values ...CurrentValue) error {
	_, err := m.send(ctx, sliderCommand{kind: commandCustomValues, custom: values})
	return err
}

// DragUpdate forwards a user drag, see RangeController.OnDragUpdate.
func (m *SliderManager) DragUpdate(ctx context.Context, lowSlider, highSlider float64) error {
	_, err := m.send(ctx, sliderCommand{kind: commandDrag, values: [3]float64{lowSlider, highSlider}})
	return err
}

// DragEnd forwards the end of a drag gesture
func (m *SliderManager) DragEnd(ctx context.Context) error {
	_, err := m.send(ctx, sliderCommand{kind: commandDragEnd})
	return err
}

// Snapshot returns the current result and whether the slider has been configured.
func (m *SliderManager) Snapshot(ctx context.Context) (RangeResult, bool, error) {
	reply, err := m.send(ctx, sliderCommand{kind: commandSnapshot})
	return reply.result, reply.configured, err
}
