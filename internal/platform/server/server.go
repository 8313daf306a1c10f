package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/celebrityscoop868/sunpowerabc/internal/adapters/grpc/handler"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     *zap.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, onboarding handler.OnboardingServiceServer, logger *zap.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(recoveryInterceptor(logger), loggingInterceptor(logger)),
	}, opts...)

	srv := grpc.NewServer(opts...)
	handler.RegisterOnboardingServiceServer(srv, onboarding)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}
	return s.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down gRPC server")
			s.grpcServer.GracefulStop()
		case <-stopped:
		}
	}()

	s.logger.Info("gRPC server listening", zap.String("addr", lis.Addr().String()))
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

func loggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := next(ctx, req)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("code", status.Code(err).String()),
		}
		switch status.Code(err) {
		case codes.OK:
			logger.Debug("rpc completed", fields...)
		case codes.Internal, codes.Unknown:
			logger.Error("rpc failed", append(fields, zap.Error(err))...)
		default:
			logger.Info("rpc rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

func recoveryInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("rpc panicked", zap.String("method", info.FullMethod), zap.Any("panic", r), zap.Stack("stack"))
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return next(ctx, req)
	}
}
