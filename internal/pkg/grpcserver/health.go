// Package grpcserver поднимает стандартный grpc.health.v1 для оркестратора.
package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"moveit/pkg/logger"
)

const (
	// ServiceName - имя, под которым публикуется статус бронирования.
	ServiceName = "moveit.Booking"

	keepaliveMinTime         = 30 * time.Second
	keepalivePermitNoStreams = true
)

type HealthServer struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func NewHealthServer(log logger.Logger) *HealthServer {
	server := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             keepaliveMinTime,
			PermitWithoutStream: keepalivePermitNoStreams,
		}),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		log: log.With(
			logger.NewField("component", "grpc-health"),
		),
		server: server,
		health: healthServer,
	}
}

// Serve блокируется до остановки сервера.
func (s *HealthServer) Serve(lis net.Listener) error {
	s.log.With(
		logger.NewField("addr", lis.Addr().String()),
	).Info("gRPC health server starting")

	err := s.server.Serve(lis)
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc health serve: %w", err)
	}
	return nil
}

func (s *HealthServer) ListenAndServe(port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}
	return s.Serve(lis)
}

func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Shutdown переводит статус в NOT_SERVING и ждет завершения стримов Watch
// не дольше ctx.
func (s *HealthServer) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.log.Warn("gRPC health graceful stop timed out, forcing stop")
		s.server.Stop()
	}
}
