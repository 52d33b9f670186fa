package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "dogbox.v1.FileService"

const (
	PingFullMethodName       = "/" + ServiceName + "/Ping"
	ListFilesFullMethodName  = "/" + ServiceName + "/ListFiles"
	CreateFileFullMethodName = "/" + ServiceName + "/CreateFile"
	DeleteFileFullMethodName = "/" + ServiceName + "/DeleteFile"
	PresignPutFullMethodName = "/" + ServiceName + "/PresignPut"
	PresignGetFullMethodName = "/" + ServiceName + "/PresignGet"
)

// FileServiceServer is implemented by the server's gRPC handler.
type FileServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListFiles(context.Context, *ListFilesRequest) (*ListFilesResponse, error)
	CreateFile(context.Context, *CreateFileRequest) (*CreateFileResponse, error)
	DeleteFile(context.Context, *DeleteFileRequest) (*DeleteFileResponse, error)
	PresignPut(context.Context, *PresignPutRequest) (*PresignPutResponse, error)
	PresignGet(context.Context, *PresignGetRequest) (*PresignGetResponse, error)
}

// FileServiceClient is the client stub.
type FileServiceClient interface {
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error)
	CreateFile(ctx context.Context, in *CreateFileRequest, opts ...grpc.CallOption) (*CreateFileResponse, error)
	DeleteFile(ctx context.Context, in *DeleteFileRequest, opts ...grpc.CallOption) (*DeleteFileResponse, error)
	PresignPut(ctx context.Context, in *PresignPutRequest, opts ...grpc.CallOption) (*PresignPutResponse, error)
	PresignGet(ctx context.Context, in *PresignGetRequest, opts ...grpc.CallOption) (*PresignGetResponse, error)
}

// unaryMethod builds a MethodDesc that decodes Req, runs it through the
// interceptor chain and dispatches to call.
func unaryMethod[Req, Resp any](name string, call func(FileServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(FileServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(FileServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FileServiceDesc is the grpc.ServiceDesc for FileService.
var FileServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Ping", FileServiceServer.Ping),
		unaryMethod("ListFiles", FileServiceServer.ListFiles),
		unaryMethod("CreateFile", FileServiceServer.CreateFile),
		unaryMethod("DeleteFile", FileServiceServer.DeleteFile),
		unaryMethod("PresignPut", FileServiceServer.PresignPut),
		unaryMethod("PresignGet", FileServiceServer.PresignGet),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

func RegisterFileServiceServer(s grpc.ServiceRegistrar, srv FileServiceServer) {
	s.RegisterService(&FileServiceDesc, srv)
}

type fileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFileServiceClient(cc grpc.ClientConnInterface) FileServiceClient {
	return &fileServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PingFullMethodName, in, opts)
}

func (c *fileServiceClient) ListFiles(ctx context.Context, in *ListFilesRequest, opts ...grpc.CallOption) (*ListFilesResponse, error) {
	return invoke[ListFilesResponse](ctx, c.cc, ListFilesFullMethodName, in, opts)
}

func (c *fileServiceClient) CreateFile(ctx context.Context, in *CreateFileRequest, opts ...grpc.CallOption) (*CreateFileResponse, error) {
	return invoke[CreateFileResponse](ctx, c.cc, CreateFileFullMethodName, in, opts)
}

func (c *fileServiceClient) DeleteFile(ctx context.Context, in *DeleteFileRequest, opts ...grpc.CallOption) (*DeleteFileResponse, error) {
	return invoke[DeleteFileResponse](ctx, c.cc, DeleteFileFullMethodName, in, opts)
}

func (c *fileServiceClient) PresignPut(ctx context.Context, in *PresignPutRequest, opts ...grpc.CallOption) (*PresignPutResponse, error) {
	return invoke[PresignPutResponse](ctx, c.cc, PresignPutFullMethodName, in, opts)
}

func (c *fileServiceClient) PresignGet(ctx context.Context, in *PresignGetRequest, opts ...grpc.CallOption) (*PresignGetResponse, error) {
	return invoke[PresignGetResponse](ctx, c.cc, PresignGetFullMethodName, in, opts)
}
