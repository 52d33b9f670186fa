package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/api"
	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.FileServiceClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewDogBoxClient creates a client for endpointURL. The connection is
// established lazily on the first call.
func NewDogBoxClient(endpointURL, accessToken string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, accessToken: accessToken}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewFileServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

// List returns the registry records in the order the server sent them.
func (s *GRPCClient) List(ctx context.Context) ([]models.FileEntry, error) {
	resp, err := s.client.ListFiles(ctx, &api.ListFilesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	entries := make([]models.FileEntry, 0, len(resp.Files))
	for _, f := range resp.Files {
		entries = append(entries, toEntry(f))
	}
	return entries, nil
}

func (s *GRPCClient) Create(ctx context.Context, name string, bytes int64) (models.FileEntry, error) {
	resp, err := s.client.CreateFile(ctx, &api.CreateFileRequest{Name: name, Bytes: bytes})
	if err != nil {
		return models.FileEntry{}, s.mapError(err)
	}
	return toEntry(resp.File), nil
}

func (s *GRPCClient) Delete(ctx context.Context, id string) error {
	if _, err := s.client.DeleteFile(ctx, &api.DeleteFileRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

// PresignPut returns the upload URL for a registered name and the headers
// the upload must carry.
func (s *GRPCClient) PresignPut(ctx context.Context, name string) (string, map[string][]string, error) {
	resp, err := s.client.PresignPut(ctx, &api.PresignPutRequest{Name: name})
	if err != nil {
		return "", nil, s.mapError(err)
	}
	return resp.URL, resp.Headers, nil
}

// PresignGet returns a retrieval URL and the time it stops working.
func (s *GRPCClient) PresignGet(ctx context.Context, name string) (string, time.Time, error) {
	resp, err := s.client.PresignGet(ctx, &api.PresignGetRequest{Name: name})
	if err != nil {
		return "", time.Time{}, s.mapError(err)
	}
	return resp.URL, resp.ExpiresAt, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return common.ErrNotFound
	case codes.AlreadyExists:
		return common.ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func toEntry(f api.File) models.FileEntry {
	return models.FileEntry{
		ID:        f.ID,
		Name:      f.Name,
		Bytes:     f.Bytes,
		CreatedAt: f.CreatedAt,
	}
}
