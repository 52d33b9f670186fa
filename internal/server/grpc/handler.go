package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/dogbox/internal/api"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListFiles(ctx context.Context, req *api.ListFilesRequest) (*api.ListFilesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	files, err := s.files.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list files", err)
	}

	resp := &api.ListFilesResponse{Files: make([]api.File, 0, len(files))}
	for _, f := range files {
		resp.Files = append(resp.Files, toAPIFile(f))
	}
	return resp, nil
}

func (s *GRPCServer) CreateFile(ctx context.Context, req *api.CreateFileRequest) (*api.CreateFileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	f, err := s.files.Create(ctx, userID, req.Name, req.Bytes)
	if err != nil {
		return nil, s.toStatus(ctx, "create file", err)
	}

	s.logger.Info(ctx, "File registered", "user_id", userID, "name", f.Name, "bytes", f.Bytes)
	return &api.CreateFileResponse{File: toAPIFile(f)}, nil
}

func (s *GRPCServer) DeleteFile(ctx context.Context, req *api.DeleteFileRequest) (*api.DeleteFileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.files.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete file", err)
	}

	s.logger.Info(ctx, "File deleted", "user_id", userID, "id", req.ID)
	return &api.DeleteFileResponse{ID: req.ID}, nil
}

func (s *GRPCServer) PresignPut(ctx context.Context, req *api.PresignPutRequest) (*api.PresignPutResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.files.PresignPut(ctx, userID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, "presign put", err)
	}

	return &api.PresignPutResponse{URL: r.URL, Headers: r.Headers, ExpiresAt: r.ExpiresAt}, nil
}

func (s *GRPCServer) PresignGet(ctx context.Context, req *api.PresignGetRequest) (*api.PresignGetResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	r, err := s.files.PresignGet(ctx, userID, req.Name)
	if err != nil {
		return nil, s.toStatus(ctx, "presign get", err)
	}

	return &api.PresignGetResponse{URL: r.URL, ExpiresAt: r.ExpiresAt}, nil
}

// toStatus maps service errors to gRPC codes. Unexpected errors are logged
// and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, common.ErrInvalidName), errors.Is(err, common.ErrInvalidSize):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	s.logger.Error(ctx, op+" failed", "error", err.Error())
	return status.Error(codes.Internal, "internal error")
}

func toAPIFile(f *models.File) api.File {
	return api.File{
		ID:        f.ID,
		Name:      f.Name,
		Bytes:     f.Bytes,
		CreatedAt: f.CreatedAt,
	}
}
