package httpapi

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthServer answers the standard gRPC health protocol for load balancers
// that probe over gRPC instead of HTTP. It reuses the same readiness probe
// as /readyz so both planes report the same answer.
type HealthServer struct {
	grpc_health_v1.UnimplementedHealthServer

	ready ReadyProbe
}

func NewHealthServer(ready ReadyProbe) *HealthServer {
	return &HealthServer{ready: ready}
}

func (s *HealthServer) Check(ctx context.Context, _ *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			return &grpc_health_v1.HealthCheckResponse{
				Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING,
			}, nil
		}
	}
	return &grpc_health_v1.HealthCheckResponse{
		Status: grpc_health_v1.HealthCheckResponse_SERVING,
	}, nil
}

func (s *HealthServer) Watch(_ *grpc_health_v1.HealthCheckRequest, _ grpc.ServerStreamingServer[grpc_health_v1.HealthCheckResponse]) error {
	return status.Error(codes.Unimplemented, "watch is not supported")
}

// ServeGRPCHealth blocks serving the health service on addr until ctx is
// canceled.
func ServeGRPCHealth(ctx context.Context, addr string, ready ReadyProbe) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := grpc.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, NewHealthServer(ready))

	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()
	return srv.Serve(lis)
}
