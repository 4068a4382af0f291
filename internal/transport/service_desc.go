package transport

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "farmtrace.v1.BatchRegistry"

// BatchRegistryServer is the server API of the registry service.
type BatchRegistryServer interface {
	RegisterBatch(context.Context, *RegisterBatchRequest) (*RegisterBatchResponse, error)
	AppendEvent(context.Context, *AppendEventRequest) (*AppendEventResponse, error)
	GradeBatch(context.Context, *GradeBatchRequest) (*GradeBatchResponse, error)
	ResolveBatch(context.Context, *ResolveBatchRequest) (*ResolveBatchResponse, error)
	VerifyBatch(context.Context, *VerifyBatchRequest) (*VerifyBatchResponse, error)
	DecodeSymbol(context.Context, *DecodeSymbolRequest) (*DecodeSymbolResponse, error)
	ExportLabel(context.Context, *ExportLabelRequest) (*ExportLabelResponse, error)
	RecordScan(context.Context, *RecordScanRequest) (*RecordScanResponse, error)
	ScanStats(context.Context, *ScanStatsRequest) (*ScanStatsResponse, error)
	ListAnomalies(context.Context, *ListAnomaliesRequest) (*ListAnomaliesResponse, error)
	RegistryOverview(context.Context, *RegistryOverviewRequest) (*RegistryOverviewResponse, error)
	Health(context.Context, *HealthRequest) (*HealthResponse, error)
}

// BatchRegistryServiceDesc describes the registry service to grpc.Server.
var BatchRegistryServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BatchRegistryServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("RegisterBatch", BatchRegistryServer.RegisterBatch),
		unary("AppendEvent", BatchRegistryServer.AppendEvent),
		unary("GradeBatch", BatchRegistryServer.GradeBatch),
		unary("ResolveBatch", BatchRegistryServer.ResolveBatch),
		unary("VerifyBatch", BatchRegistryServer.VerifyBatch),
		unary("DecodeSymbol", BatchRegistryServer.DecodeSymbol),
		unary("ExportLabel", BatchRegistryServer.ExportLabel),
		unary("RecordScan", BatchRegistryServer.RecordScan),
		unary("ScanStats", BatchRegistryServer.ScanStats),
		unary("ListAnomalies", BatchRegistryServer.ListAnomalies),
		unary("RegistryOverview", BatchRegistryServer.RegistryOverview),
		unary("Health", BatchRegistryServer.Health),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "farmtrace/v1/registry",
}

// RegisterBatchRegistryServer registers srv on s.
func RegisterBatchRegistryServer(s grpc.ServiceRegistrar, srv BatchRegistryServer) {
	s.RegisterService(&BatchRegistryServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp any](name string, call func(BatchRegistryServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BatchRegistryServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BatchRegistryServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
