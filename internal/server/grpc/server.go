// Package grpc serves the DogBox FileService API.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/dogbox/internal/api"
	"github.com/dmitrijs2005/dogbox/internal/logging"
	"github.com/dmitrijs2005/dogbox/internal/server/metrics"
	"github.com/dmitrijs2005/dogbox/internal/server/models"
	"google.golang.org/grpc"
)

// fileService is the registry as used by the handlers; *services.FileService
// implements it.
type fileService interface {
	List(ctx context.Context, ownerID string) ([]*models.File, error)
	Create(ctx context.Context, ownerID, name string, bytes int64) (*models.File, error)
	Delete(ctx context.Context, ownerID, id string) error
	PresignPut(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error)
	PresignGet(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error)
}

type GRPCServer struct {
	address   string
	files     fileService
	metrics   *metrics.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

var _ api.FileServiceServer = (*GRPCServer)(nil)

// NewGRPCServer wires the handlers. m may be nil, in which case no
// request metrics are recorded.
func NewGRPCServer(a string, l logging.Logger, fs fileService, m *metrics.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		files:     fs,
		metrics:   m,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	var interceptors []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryServerInterceptor())
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	api.RegisterFileServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
