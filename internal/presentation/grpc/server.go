package grpc

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/akashent3/redflags-sub001/pkg/auth"
)

// Server wraps the gRPC server with its listener lifecycle.
type Server struct {
	grpcServer *grpclib.Server
	address    string
	logger     *slog.Logger
}

// NewServer builds the gRPC server with auth, health and reflection wired.
// Health-check methods bypass the auth interceptor so probes do not need
// tokens.
func NewServer(address string, handler *AnalysisHandler, jwtService *auth.JWTService, logger *slog.Logger) *Server {
	skipAuth := []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	}

	grpcServer := grpclib.NewServer(
		grpclib.UnaryInterceptor(auth.UnaryAuthInterceptor(jwtService, skipAuth)),
	)

	RegisterAnalysisServiceServer(grpcServer, handler)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("redflags.v1.AnalysisService", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	if os.Getenv("GRPC_REFLECTION") == "true" {
		reflection.Register(grpcServer)
	}

	return &Server{
		grpcServer: grpcServer,
		address:    address,
		logger:     logger,
	}
}

// Start blocks serving until the listener fails or Stop is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}
	s.logger.Info("grpc server listening", slog.String("address", s.address))
	return s.grpcServer.Serve(listener)
}

// Stop drains in-flight RPCs and shuts the server down.
func (s *Server) Stop() {
	s.logger.Info("grpc server stopping")
	s.grpcServer.GracefulStop()
}
