package logslider

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/SKAARHOJ/ibeam-logslider-go/paramhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const bufSize = 1024 * 1024

// startTestServer serves a fresh slider server over an in-memory listener
func startTestServer(t *testing.T, opts ...ServerOption) (*SliderServer, *SliderClient) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	s := NewServer(opts...)
	s.Manager().Start(ctx)

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	s.Register(srv)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			t.Errorf("serve: %v", err)
		}
	}()

	conn, err := grpc.DialContext(ctx, "bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
		lis.Close()
		<-done
		cancel()
		<-s.Manager().Done()
	})
	return s, NewSliderClient(conn)
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSliderServer_GetUnconfigured(t *testing.T) {
	_, client := startTestServer(t)
	ctx := testContext(t)

	_, err := client.Get(ctx)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestSliderServer_ConfigureAndDrag(t *testing.T) {
	_, client := startTestServer(t)
	ctx := testContext(t)

	result, err := client.Configure(ctx, paramhelpers.Configure(0, 100000, 100))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, result.Exponent, 1e-12)
	assert.Equal(t, 100000.0, result.ValuesRange)

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)

	event, err := sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, EventSnapshot, event.Kind)

	require.NoError(t, client.Drag(ctx, 100, 0))
	event, err = sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, EventMoving, event.Kind)
	assert.Equal(t, 0.0, event.Result.Low.CurrentAmount)
	assert.Equal(t, 100000.0, event.Result.High.CurrentAmount)
	assert.True(t, event.Result.Low.IsAtExtreme())
	assert.True(t, event.Result.High.IsAtExtreme())

	require.NoError(t, client.Stop(ctx))
	event, err = sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, EventStop, event.Kind)
	assert.Equal(t, 100.0, event.Result.High.CurrentSlider)

	got, err := client.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, event.Result, got)
}

func TestSliderServer_SetAmounts(t *testing.T) {
	_, client := startTestServer(t, WithInitialParameters(250, 1000, 100))
	ctx := testContext(t)

	require.NoError(t, client.SetAmounts(ctx, 1000, 250))
	result, err := client.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.0, result.Low.CurrentAmount)
	assert.Equal(t, 1000.0, result.High.CurrentAmount)
	assert.Equal(t, 100.0, result.High.CurrentSlider)
}

func TestSliderServer_DegenerateStatus(t *testing.T) {
	_, client := startTestServer(t)
	ctx := testContext(t)

	result, err := client.Configure(ctx, paramhelpers.ConfigureText("50", "50", "100"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Exponent)

	sub, err := client.Subscribe(ctx)
	require.NoError(t, err)

	event, err := sub.Recv()
	require.NoError(t, err)
	require.Equal(t, EventStatus, event.Kind)
	assert.Equal(t, statusDegenerateRange, event.Status.ID)
	assert.False(t, event.Status.Resolved)

	event, err = sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, EventSnapshot, event.Kind)

	require.NoError(t, client.Drag(ctx, 10, 90))
	event, err = sub.Recv()
	require.NoError(t, err)
	assert.Equal(t, 50.0, event.Result.Low.CurrentAmount)
	assert.Equal(t, 50.0, event.Result.High.CurrentAmount)

	_, err = client.Configure(ctx, paramhelpers.Configure(0, 1000, 10))
	require.NoError(t, err)
	event, err = sub.Recv()
	require.NoError(t, err)
	require.Equal(t, EventStatus, event.Kind)
	assert.True(t, event.Status.Resolved)
}

func TestSliderServer_ConfigureMissingFields(t *testing.T) {
	_, client := startTestServer(t)
	ctx := testContext(t)

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		paramhelpers.FieldMaxAmount: structpb.NewNumberValue(1000),
	}}
	result, err := client.Configure(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Low.Extreme)
	assert.Equal(t, 1000.0, result.High.Extreme)
	assert.InDelta(t, 1.5, result.Exponent, 1e-12)
}

func TestSliderServer_DragNonFinite(t *testing.T) {
	_, client := startTestServer(t, WithInitialParameters(0, 100000, 100))
	ctx := testContext(t)

	require.NoError(t, client.Drag(ctx, 10, 90))
	tests := []struct {
		name     string
		low      float64
		high     float64
		wantLow  float64
		wantHigh float64
	}{
		{name: "nan low", low: math.NaN(), high: 50, wantLow: 10, wantHigh: 50},
		{name: "infinite high", low: 20, high: math.Inf(1), wantLow: 20, wantHigh: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, client.Drag(ctx, tt.low, tt.high))
			result, err := client.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLow, result.Low.CurrentSlider)
			assert.Equal(t, tt.wantHigh, result.High.CurrentSlider)
			assert.False(t, math.IsNaN(result.Low.CurrentAmount) || math.IsNaN(result.High.CurrentAmount))
		})
	}
}

func TestSliderServer_ManagerStopped(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	s.Manager().Start(ctx)
	cancel()
	<-s.Manager().Done()

	_, err := s.Get(context.Background(), nil)
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func Test_toStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "stopped", err: ErrManagerStopped, want: codes.Unavailable},
		{name: "canceled", err: context.Canceled, want: codes.Canceled},
		{name: "deadline", err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{name: "other", err: errors.New("boom"), want: codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}
}
