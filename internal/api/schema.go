package api

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	protoPackage = "dogbox.v1"
	protoFile    = "dogbox/v1/files.proto"
)

// schema is the file descriptor of the FileService API, equivalent to:
//
//	syntax = "proto3";
//	package dogbox.v1;
//	import "google/protobuf/timestamp.proto";
//
//	message File {
//	  string id = 1;
//	  string name = 2;
//	  int64 bytes = 3;
//	  google.protobuf.Timestamp created_at = 4;
//	}
//	message Header { string name = 1; repeated string values = 2; }
//
//	message PingRequest {}
//	message PingResponse { string status = 1; }
//	message ListFilesRequest {}
//	message ListFilesResponse { repeated File files = 1; }
//	message CreateFileRequest { string name = 1; int64 bytes = 2; }
//	message CreateFileResponse { File file = 1; }
//	message DeleteFileRequest { string id = 1; }
//	message DeleteFileResponse { string id = 1; }
//	message PresignPutRequest { string name = 1; }
//	message PresignPutResponse {
//	  string url = 1;
//	  repeated Header headers = 2;
//	  google.protobuf.Timestamp expires_at = 3;
//	}
//	message PresignGetRequest { string name = 1; }
//	message PresignGetResponse {
//	  string url = 1;
//	  google.protobuf.Timestamp expires_at = 2;
//	}
//
//	service FileService { rpc Ping(PingRequest) returns (PingResponse); ... }
var schema = mustBuildSchema()

var (
	typeString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeInt64   = descriptorpb.FieldDescriptorProto_TYPE_INT64
	typeMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

func scalar(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
}

func nested(name string, number int32, typeName string) *descriptorpb.FieldDescriptorProto {
	f := scalar(name, number, typeMessage)
	f.TypeName = proto.String(typeName)
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func messageType(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func method(name string) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + protoPackage + "." + name + "Request"),
		OutputType: proto.String("." + protoPackage + "." + name + "Response"),
	}
}

func mustBuildSchema() protoreflect.FileDescriptor {
	const (
		timestamp = ".google.protobuf.Timestamp"
		file      = "." + protoPackage + ".File"
		header    = "." + protoPackage + ".Header"
	)

	fdp := &descriptorpb.FileDescriptorProto{
		Name:       proto.String(protoFile),
		Package:    proto.String(protoPackage),
		Syntax:     proto.String("proto3"),
		Dependency: []string{timestamppb.File_google_protobuf_timestamp_proto.Path()},
		MessageType: []*descriptorpb.DescriptorProto{
			messageType("File",
				scalar("id", 1, typeString),
				scalar("name", 2, typeString),
				scalar("bytes", 3, typeInt64),
				nested("created_at", 4, timestamp),
			),
			messageType("Header",
				scalar("name", 1, typeString),
				repeated(scalar("values", 2, typeString)),
			),
			messageType("PingRequest"),
			messageType("PingResponse", scalar("status", 1, typeString)),
			messageType("ListFilesRequest"),
			messageType("ListFilesResponse", repeated(nested("files", 1, file))),
			messageType("CreateFileRequest",
				scalar("name", 1, typeString),
				scalar("bytes", 2, typeInt64),
			),
			messageType("CreateFileResponse", nested("file", 1, file)),
			messageType("DeleteFileRequest", scalar("id", 1, typeString)),
			messageType("DeleteFileResponse", scalar("id", 1, typeString)),
			messageType("PresignPutRequest", scalar("name", 1, typeString)),
			messageType("PresignPutResponse",
				scalar("url", 1, typeString),
				repeated(nested("headers", 2, header)),
				nested("expires_at", 3, timestamp),
			),
			messageType("PresignGetRequest", scalar("name", 1, typeString)),
			messageType("PresignGetResponse",
				scalar("url", 1, typeString),
				nested("expires_at", 2, timestamp),
			),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("FileService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Ping"),
				method("ListFiles"),
				method("CreateFile"),
				method("DeleteFile"),
				method("PresignPut"),
				method("PresignGet"),
			},
		}},
	}

	deps := new(protoregistry.Files)
	if err := deps.RegisterFile(timestamppb.File_google_protobuf_timestamp_proto); err != nil {
		panic(fmt.Sprintf("api: register timestamp.proto: %v", err))
	}

	fd, err := protodesc.NewFile(fdp, deps)
	if err != nil {
		panic(fmt.Sprintf("api: build %s: %v", protoFile, err))
	}
	return fd
}

// descriptorOf returns the descriptor of a message declared in schema.
func descriptorOf(name protoreflect.Name) protoreflect.MessageDescriptor {
	md := schema.Messages().ByName(name)
	if md == nil {
		panic(fmt.Sprintf("api: no message %s in %s", name, protoFile))
	}
	return md
}
