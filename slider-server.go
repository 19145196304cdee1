package logslider

import (
	"context"
	"errors"
	"net"

	"github.com/SKAARHOJ/ibeam-logslider-go/paramhelpers"
	log "github.com/s00500/env_logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the full gRPC service name of the slider service
const ServiceName = "logslider.Slider"

// SliderServer exposes one SliderManager over gRPC.
type SliderServer struct {
	manager *SliderManager
}

// NewServer sets up the slider server and its manager. The manager is started by StartWithServer,
// or by calling Manager().Start when the server is registered on an existing grpc.Server.
func NewServer(opts ...ServerOption) *SliderServer {
	s := &SliderServer{manager: NewSliderManager(0)}
	for _, opt := range opts {
		opt(s)
	}
	log.Info("Server created")
	return s
}

// Manager returns the manager behind the server, for hosts that drive the slider locally too.
func (s *SliderServer) Manager() *SliderManager {
	return s.manager
}

// Register adds the slider service to a grpc server
func (s *SliderServer) Register(grpcServer *grpc.Server) {
	grpcServer.RegisterService(&sliderServiceDesc, s)
}

// StartWithServer starts the manager and serves the slider service on network/address. It blocks
// until ctx is cancelled or serving fails.
func (s *SliderServer) StartWithServer(ctx context.Context, network, address string) error {
	s.manager.Start(ctx)

	lis, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer()
	s.Register(grpcServer)

	go func() {
		<-ctx.Done()
		log.Info("Stopping slider server")
		grpcServer.GracefulStop()
	}()

	log.Infof("Slider server listening on %s %s", network, lis.Addr())
	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Configure replaces the slider parameters. Missing fields use 0 for the amounts and the default
// step count.
func (s *SliderServer) Configure(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	err := s.manager.Configure(ctx,
		numberField(req, paramhelpers.FieldMinAmount, 0),
		numberField(req, paramhelpers.FieldMaxAmount, 0),
		numberField(req, paramhelpers.FieldSliderSteps, DefaultSliderSteps),
	)
	if err != nil {
		return nil, toStatus(err)
	}
	return s.Get(ctx, &emptypb.Empty{})
}

// SetAmounts moves both handles to the given amounts
func (s *SliderServer) SetAmounts(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	err := s.manager.SetCurrentAmounts(ctx,
		numberField(req, paramhelpers.FieldLowAmount, 0),
		numberField(req, paramhelpers.FieldHighAmount, 0),
	)
	if err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Drag reports handle positions of an ongoing drag
func (s *SliderServer) Drag(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	err := s.manager.DragUpdate(ctx,
		numberField(req, paramhelpers.FieldLowSlider, 0),
		numberField(req, paramhelpers.FieldHighSlider, 0),
	)
	if err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Stop ends the current drag gesture
func (s *SliderServer) Stop(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.manager.DragEnd(ctx); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Get returns the current result. It fails with FailedPrecondition while the slider is not configured.
func (s *SliderServer) Get(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	result, configured, err := s.manager.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	if !configured {
		return nil, status.Error(codes.FailedPrecondition, "slider is not configured")
	}
	return resultToStruct(result), nil
}

// Subscribe streams slider events. On subscribe all active statuses and, if configured, a snapshot
// of the current result are sent first.
func (s *SliderServer) Subscribe(_ *emptypb.Empty, stream grpc.ServerStream) error {
	log.Info("New Client subscribed")
	ctx := stream.Context()

	// Subscribe before the snapshot so no event in between gets lost. An event raised in that
	// window is sent twice, once folded into the initial statuses or snapshot and once from the
	// channel. Both carry the same state, clients can apply them idempotently.
	events, unsubscribe := s.manager.Subscribe()
	defer unsubscribe()

	for _, msg := range s.manager.ActiveStatuses() {
		if err := stream.SendMsg(eventToStruct(&RangeEvent{Kind: EventStatus, Status: msg})); err != nil {
			return err
		}
	}

	result, configured, err := s.manager.Snapshot(ctx)
	if err != nil {
		return toStatus(err)
	}
	if configured {
		if err := stream.SendMsg(eventToStruct(&RangeEvent{Kind: EventSnapshot, Result: result})); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug("Connection to client for subscription lost")
			return nil
		case <-s.manager.Done():
			return status.Error(codes.Unavailable, ErrManagerStopped.Error())
		case event := <-events:
			log.Tracef("Send %v event to client", event.Kind)
			if err := stream.SendMsg(eventToStruct(event)); err != nil {
				return err
			}
		}
	}
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, ErrManagerStopped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// sliderService is implemented by SliderServer, grpc checks registrations against it
type sliderService interface {
	Configure(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetAmounts(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Drag(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	Stop(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Get(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Subscribe(*emptypb.Empty, grpc.ServerStream) error
}

func unaryHandler[In any, Out any](method string, call func(sliderService, context.Context, *In) (*Out, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(In)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(sliderService), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(sliderService), ctx, req.(*In))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var sliderServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*sliderService)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Configure", sliderService.Configure),
		unaryHandler("SetAmounts", sliderService.SetAmounts),
		unaryHandler("Drag", sliderService.Drag),
		unaryHandler("Stop", sliderService.Stop),
		unaryHandler("Get", sliderService.Get),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName: "Subscribe",
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				in := new(emptypb.Empty)
				if err := stream.RecvMsg(in); err != nil {
					return err
				}
				return srv.(sliderService).Subscribe(in, stream)
			},
			ServerStreams: true,
		},
	},
}

// SliderClient calls a slider service over any grpc connection
type SliderClient struct {
	cc grpc.ClientConnInterface
}

// NewSliderClient wraps an established grpc connection
func NewSliderClient(cc grpc.ClientConnInterface) *SliderClient {
	return &SliderClient{cc: cc}
}

func (c *SliderClient) invoke(ctx context.Context, method string, in, out interface{}, opts ...grpc.CallOption) error {
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

// Configure sends a request built with paramhelpers.Configure or paramhelpers.ConfigureText and
// returns the resulting slider state.
func (c *SliderClient) Configure(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (RangeResult, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "Configure", req, out, opts...); err != nil {
		return RangeResult{}, err
	}
	return structToResult(out), nil
}

// SetAmounts moves both handles to amounts
func (c *SliderClient) SetAmounts(ctx context.Context, lowAmount, highAmount float64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "SetAmounts", paramhelpers.Amounts(lowAmount, highAmount), new(emptypb.Empty), opts...)
}

// Drag reports handle positions in slider space
func (c *SliderClient) Drag(ctx context.Context, lowSlider, highSlider float64, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "Drag", paramhelpers.Drag(lowSlider, highSlider), new(emptypb.Empty), opts...)
}

// Stop ends the drag gesture
func (c *SliderClient) Stop(ctx context.Context, opts ...grpc.CallOption) error {
	return c.invoke(ctx, "Stop", &emptypb.Empty{}, new(emptypb.Empty), opts...)
}

// Get fetches the current result
func (c *SliderClient) Get(ctx context.Context, opts ...grpc.CallOption) (RangeResult, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, "Get", &emptypb.Empty{}, out, opts...); err != nil {
		return RangeResult{}, err
	}
	return structToResult(out), nil
}

// SliderSubscription receives events of a Subscribe call
type SliderSubscription struct {
	stream grpc.ClientStream
}

// Subscribe opens an event stream. Cancel ctx to close it.
func (c *SliderClient) Subscribe(ctx context.Context, opts ...grpc.CallOption) (*SliderSubscription, error) {
	stream, err := c.cc.NewStream(ctx, &sliderServiceDesc.Streams[0], "/"+ServiceName+"/Subscribe", opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(&emptypb.Empty{}); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &SliderSubscription{stream: stream}, nil
}

// Recv blocks for the next event
func (s *SliderSubscription) Recv() (*RangeEvent, error) {
	out := new(structpb.Struct)
	if err := s.stream.RecvMsg(out); err != nil {
		return nil, err
	}
	return structToEvent(out)
}
