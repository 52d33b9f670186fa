// Package api describes the DogBox gRPC service shared by the server and
// the client: request/response messages, the service descriptor and the
// protobuf codec they travel with.
package api

import (
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// CodecName is the gRPC content-subtype the client must request
// (grpc.CallContentSubtype(CodecName)).
const CodecName = "dogboxpb"

// message is implemented by every request and response in this package.
type message interface {
	protoName() protoreflect.Name
	toProto(m protoreflect.Message)
	fromProto(m protoreflect.Message)
}

// protoCodec encodes messages as dogbox.v1 protobuf.
type protoCodec struct{}

func (protoCodec) Marshal(v any) ([]byte, error) {
	switch msg := v.(type) {
	case message:
		m := dynamicpb.NewMessage(descriptorOf(msg.protoName()))
		msg.toProto(m)
		return proto.Marshal(m)
	case proto.Message:
		return proto.Marshal(msg)
	default:
		return nil, fmt.Errorf("marshal %T: not a protobuf message", v)
	}
}

func (protoCodec) Unmarshal(data []byte, v any) error {
	switch msg := v.(type) {
	case message:
		m := dynamicpb.NewMessage(descriptorOf(msg.protoName()))
		if err := proto.Unmarshal(data, m); err != nil {
			return fmt.Errorf("unmarshal %s: %w", msg.protoName(), err)
		}
		msg.fromProto(m)
		return nil
	case proto.Message:
		return proto.Unmarshal(data, msg)
	default:
		return fmt.Errorf("unmarshal %T: not a protobuf message", v)
	}
}

func (protoCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(protoCodec{})
}
