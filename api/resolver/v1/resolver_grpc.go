package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name, also used for health checks.
const ServiceName = "streamresolver.v1.StreamResolverService"

const (
	StreamResolverService_ResolveMovie_FullMethodName   = "/" + ServiceName + "/ResolveMovie"
	StreamResolverService_ResolveEpisode_FullMethodName = "/" + ServiceName + "/ResolveEpisode"
	StreamResolverService_ListStreams_FullMethodName    = "/" + ServiceName + "/ListStreams"
)

// StreamResolverServiceClient is the client API for StreamResolverService.
type StreamResolverServiceClient interface {
	ResolveMovie(ctx context.Context, in *ResolveMovieRequest, opts ...grpc.CallOption) (*ResolveResponse, error)
	ResolveEpisode(ctx context.Context, in *ResolveEpisodeRequest, opts ...grpc.CallOption) (*ResolveResponse, error)
	ListStreams(ctx context.Context, in *ListStreamsRequest, opts ...grpc.CallOption) (*ListStreamsResponse, error)
}

type streamResolverServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStreamResolverServiceClient wraps a connection. Every call is sent with the json content subtype.
func NewStreamResolverServiceClient(cc grpc.ClientConnInterface) StreamResolverServiceClient {
	return &streamResolverServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *streamResolverServiceClient) ResolveMovie(ctx context.Context, in *ResolveMovieRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	out := new(ResolveResponse)
	if err := c.cc.Invoke(ctx, StreamResolverService_ResolveMovie_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *streamResolverServiceClient) ResolveEpisode(ctx context.Context, in *ResolveEpisodeRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	out := new(ResolveResponse)
	if err := c.cc.Invoke(ctx, StreamResolverService_ResolveEpisode_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *streamResolverServiceClient) ListStreams(ctx context.Context, in *ListStreamsRequest, opts ...grpc.CallOption) (*ListStreamsResponse, error) {
	out := new(ListStreamsResponse)
	if err := c.cc.Invoke(ctx, StreamResolverService_ListStreams_FullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// StreamResolverServiceServer is the server API for StreamResolverService.
type StreamResolverServiceServer interface {
	ResolveMovie(context.Context, *ResolveMovieRequest) (*ResolveResponse, error)
	ResolveEpisode(context.Context, *ResolveEpisodeRequest) (*ResolveResponse, error)
	ListStreams(context.Context, *ListStreamsRequest) (*ListStreamsResponse, error)
}

// UnimplementedStreamResolverServiceServer can be embedded to keep servers forward compatible.
type UnimplementedStreamResolverServiceServer struct{}

func (UnimplementedStreamResolverServiceServer) ResolveMovie(context.Context, *ResolveMovieRequest) (*ResolveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResolveMovie not implemented")
}

func (UnimplementedStreamResolverServiceServer) ResolveEpisode(context.Context, *ResolveEpisodeRequest) (*ResolveResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResolveEpisode not implemented")
}

func (UnimplementedStreamResolverServiceServer) ListStreams(context.Context, *ListStreamsRequest) (*ListStreamsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListStreams not implemented")
}

// RegisterStreamResolverServiceServer registers srv on s.
func RegisterStreamResolverServiceServer(s grpc.ServiceRegistrar, srv StreamResolverServiceServer) {
	s.RegisterService(&StreamResolverService_ServiceDesc, srv)
}

func _StreamResolverService_ResolveMovie_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResolveMovieRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StreamResolverServiceServer).ResolveMovie(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StreamResolverService_ResolveMovie_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StreamResolverServiceServer).ResolveMovie(ctx, req.(*ResolveMovieRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StreamResolverService_ResolveEpisode_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ResolveEpisodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StreamResolverServiceServer).ResolveEpisode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StreamResolverService_ResolveEpisode_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StreamResolverServiceServer).ResolveEpisode(ctx, req.(*ResolveEpisodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _StreamResolverService_ListStreams_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ListStreamsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StreamResolverServiceServer).ListStreams(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StreamResolverService_ListStreams_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StreamResolverServiceServer).ListStreams(ctx, req.(*ListStreamsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// StreamResolverService_ServiceDesc is the grpc.ServiceDesc for StreamResolverService.
var StreamResolverService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StreamResolverServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ResolveMovie", Handler: _StreamResolverService_ResolveMovie_Handler},
		{MethodName: "ResolveEpisode", Handler: _StreamResolverService_ResolveEpisode_Handler},
		{MethodName: "ListStreams", Handler: _StreamResolverService_ListStreams_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "streamresolver/v1/resolver.json",
}
