package grpc

// proto.go hand-writes the service descriptor for conveyor.v1.ConveyorService.
// Messages are the application DTOs, carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/conveyor/internal/application/dto"
)

const serviceName = "conveyor.v1.ConveyorService"

// ConveyorServiceServer is the server API for ConveyorService.
type ConveyorServiceServer interface {
	CalculateOffers(context.Context, *dto.OffersRequest) (*dto.OffersResponse, error)
	CalculateCredit(context.Context, *dto.CreditRequest) (*dto.CreditResponse, error)
	GetCredit(context.Context, *dto.GetCreditRequest) (*dto.CreditResponse, error)
	GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error)
	mustEmbedUnimplementedConveyorServiceServer()
}

// UnimplementedConveyorServiceServer provides forward-compatible default implementations.
type UnimplementedConveyorServiceServer struct{}

func (UnimplementedConveyorServiceServer) CalculateOffers(context.Context, *dto.OffersRequest) (*dto.OffersResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateOffers not implemented")
}
func (UnimplementedConveyorServiceServer) CalculateCredit(context.Context, *dto.CreditRequest) (*dto.CreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateCredit not implemented")
}
func (UnimplementedConveyorServiceServer) GetCredit(context.Context, *dto.GetCreditRequest) (*dto.CreditResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCredit not implemented")
}
func (UnimplementedConveyorServiceServer) GetApplication(context.Context, *dto.GetApplicationRequest) (*dto.ApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetApplication not implemented")
}
func (UnimplementedConveyorServiceServer) mustEmbedUnimplementedConveyorServiceServer() {}

// RegisterConveyorServiceServer registers the ConveyorServiceServer with the gRPC server.
func RegisterConveyorServiceServer(s grpclib.ServiceRegistrar, srv ConveyorServiceServer) {
	s.RegisterService(&_ConveyorService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ConveyorService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ConveyorServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CalculateOffers", Handler: _ConveyorService_CalculateOffers_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "CalculateCredit", Handler: _ConveyorService_CalculateCredit_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetCredit", Handler: _ConveyorService_GetCredit_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "GetApplication", Handler: _ConveyorService_GetApplication_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "conveyor/v1/conveyor.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _ConveyorService_CalculateOffers_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.OffersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConveyorServiceServer).CalculateOffers(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/CalculateOffers",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConveyorServiceServer).CalculateOffers(ctx, req.(*dto.OffersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConveyorService_CalculateCredit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.CreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConveyorServiceServer).CalculateCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/CalculateCredit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConveyorServiceServer).CalculateCredit(ctx, req.(*dto.CreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConveyorService_GetCredit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GetCreditRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConveyorServiceServer).GetCredit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetCredit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConveyorServiceServer).GetCredit(ctx, req.(*dto.GetCreditRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ConveyorService_GetApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GetApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConveyorServiceServer).GetApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + serviceName + "/GetApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConveyorServiceServer).GetApplication(ctx, req.(*dto.GetApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
