package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
)

const defaultHealthInterval = 10 * time.Second

// Pinger は依存先の疎通確認を行います。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Option は Server の振る舞いを変更します。
type Option func(*Server)

// WithHealthInterval は gRPC ヘルスステータスの更新間隔を指定します。
func WithHealthInterval(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.healthInterval = d
		}
	}
}

// WithGRPCServerOptions は gRPC ヘルスサーバーへのオプションを追加します。
func WithGRPCServerOptions(opts ...grpc.ServerOption) Option {
	return func(s *Server) {
		s.grpcOpts = append(s.grpcOpts, opts...)
	}
}

// Server は HTTP API と gRPC ヘルスサービスのライフサイクルを管理します。
type Server struct {
	cfg            config.ServerConfig
	httpServer     *http.Server
	grpcServer     *grpc.Server
	health         *health.Server
	db             Pinger
	logger         *zap.Logger
	healthInterval time.Duration
	grpcOpts       []grpc.ServerOption
}

// New は設定に従ってサーバーを構築します。GRPCHealthAddr が空の場合 gRPC は起動しません。
func New(cfg config.ServerConfig, handler http.Handler, db Pinger, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:            cfg,
		db:             db,
		logger:         logger,
		healthInterval: defaultHealthInterval,
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			ErrorLog:          zap.NewStdLog(logger),
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.GRPCHealthAddr != "" {
		s.grpcServer = grpc.NewServer(s.grpcOpts...)
		s.health = health.NewServer()
		healthpb.RegisterHealthServer(s.grpcServer, s.health)
	}

	return s
}

// Run は設定されたアドレスで待ち受け、コンテキストがキャンセルされると停止します。
func (s *Server) Run(ctx context.Context) error {
	httpLis, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.ListenAddr, err)
	}

	var grpcLis net.Listener
	if s.grpcServer != nil {
		grpcLis, err = net.Listen("tcp", s.cfg.GRPCHealthAddr)
		if err != nil {
			_ = httpLis.Close()
			return fmt.Errorf("listen on %s: %w", s.cfg.GRPCHealthAddr, err)
		}
	}

	return s.Serve(ctx, httpLis, grpcLis)
}

// Serve は与えられたリスナーでサーバーを起動します。grpcLis は gRPC を無効にしている場合 nil で構いません。
func (s *Server) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("http server listening", zap.String("addr", httpLis.Addr().String()))
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	if s.grpcServer != nil && grpcLis != nil {
		g.Go(func() error {
			s.logger.Info("grpc health server listening", zap.String("addr", grpcLis.Addr().String()))
			if err := s.grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("serve grpc: %w", err)
			}
			return nil
		})

		g.Go(func() error {
			s.watchHealth(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down servers", zap.Duration("timeout", timeout))

	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		stopped := make(chan struct{})
		go func() {
			s.grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			s.grpcServer.Stop()
		}
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

func (s *Server) watchHealth(ctx context.Context) {
	s.updateHealth(ctx)

	ticker := time.NewTicker(s.healthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.updateHealth(ctx)
		}
	}
}

func (s *Server) updateHealth(ctx context.Context) {
	if s.health == nil {
		return
	}

	status := healthpb.HealthCheckResponse_SERVING
	if s.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, s.healthInterval)
		err := s.db.Ping(pingCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("database ping failed", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
