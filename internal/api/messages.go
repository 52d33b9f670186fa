package api

import (
	"slices"
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// File is a registry record on the wire.
type File struct {
	ID        string
	Name      string
	Bytes     int64
	CreatedAt time.Time
}

func (f *File) toProto(m protoreflect.Message) {
	setString(m, "id", f.ID)
	setString(m, "name", f.Name)
	setInt64(m, "bytes", f.Bytes)
	setTime(m, "created_at", f.CreatedAt)
}

func (f *File) fromProto(m protoreflect.Message) {
	f.ID = getString(m, "id")
	f.Name = getString(m, "name")
	f.Bytes = getInt64(m, "bytes")
	f.CreatedAt = getTime(m, "created_at")
}

type PingRequest struct{}

func (*PingRequest) protoName() protoreflect.Name   { return "PingRequest" }
func (*PingRequest) toProto(protoreflect.Message)   {}
func (*PingRequest) fromProto(protoreflect.Message) {}

type PingResponse struct {
	Status string
}

func (*PingResponse) protoName() protoreflect.Name { return "PingResponse" }

func (r *PingResponse) toProto(m protoreflect.Message) {
	setString(m, "status", r.Status)
}

func (r *PingResponse) fromProto(m protoreflect.Message) {
	r.Status = getString(m, "status")
}

type ListFilesRequest struct{}

func (*ListFilesRequest) protoName() protoreflect.Name   { return "ListFilesRequest" }
func (*ListFilesRequest) toProto(protoreflect.Message)   {}
func (*ListFilesRequest) fromProto(protoreflect.Message) {}

type ListFilesResponse struct {
	Files []File
}

func (*ListFilesResponse) protoName() protoreflect.Name { return "ListFilesResponse" }

func (r *ListFilesResponse) toProto(m protoreflect.Message) {
	for i := range r.Files {
		appendMessage(m, "files", r.Files[i].toProto)
	}
}

func (r *ListFilesResponse) fromProto(m protoreflect.Message) {
	r.Files = []File{}
	rangeMessages(m, "files", func(fm protoreflect.Message) {
		var f File
		f.fromProto(fm)
		r.Files = append(r.Files, f)
	})
}

type CreateFileRequest struct {
	Name  string
	Bytes int64
}

func (*CreateFileRequest) protoName() protoreflect.Name { return "CreateFileRequest" }

func (r *CreateFileRequest) toProto(m protoreflect.Message) {
	setString(m, "name", r.Name)
	setInt64(m, "bytes", r.Bytes)
}

func (r *CreateFileRequest) fromProto(m protoreflect.Message) {
	r.Name = getString(m, "name")
	r.Bytes = getInt64(m, "bytes")
}

type CreateFileResponse struct {
	File File
}

func (*CreateFileResponse) protoName() protoreflect.Name { return "CreateFileResponse" }

func (r *CreateFileResponse) toProto(m protoreflect.Message) {
	setMessage(m, "file", r.File.toProto)
}

func (r *CreateFileResponse) fromProto(m protoreflect.Message) {
	getMessage(m, "file", r.File.fromProto)
}

type DeleteFileRequest struct {
	ID string
}

func (*DeleteFileRequest) protoName() protoreflect.Name { return "DeleteFileRequest" }

func (r *DeleteFileRequest) toProto(m protoreflect.Message)   { setString(m, "id", r.ID) }
func (r *DeleteFileRequest) fromProto(m protoreflect.Message) { r.ID = getString(m, "id") }

type DeleteFileResponse struct {
	ID string
}

func (*DeleteFileResponse) protoName() protoreflect.Name { return "DeleteFileResponse" }

func (r *DeleteFileResponse) toProto(m protoreflect.Message)   { setString(m, "id", r.ID) }
func (r *DeleteFileResponse) fromProto(m protoreflect.Message) { r.ID = getString(m, "id") }

type PresignPutRequest struct {
	Name string
}

func (*PresignPutRequest) protoName() protoreflect.Name { return "PresignPutRequest" }

func (r *PresignPutRequest) toProto(m protoreflect.Message)   { setString(m, "name", r.Name) }
func (r *PresignPutRequest) fromProto(m protoreflect.Message) { r.Name = getString(m, "name") }

type PresignPutResponse struct {
	URL string
	// Headers are the signed headers the PUT request must carry.
	Headers   map[string][]string
	ExpiresAt time.Time
}

func (*PresignPutResponse) protoName() protoreflect.Name { return "PresignPutResponse" }

// Headers travel as a repeated Header sorted by name.
func (r *PresignPutResponse) toProto(m protoreflect.Message) {
	setString(m, "url", r.URL)

	names := make([]string, 0, len(r.Headers))
	for k := range r.Headers {
		names = append(names, k)
	}
	slices.Sort(names)
	for _, k := range names {
		appendMessage(m, "headers", func(h protoreflect.Message) {
			setString(h, "name", k)
			setStrings(h, "values", r.Headers[k])
		})
	}

	setTime(m, "expires_at", r.ExpiresAt)
}

func (r *PresignPutResponse) fromProto(m protoreflect.Message) {
	r.URL = getString(m, "url")
	r.Headers = nil
	rangeMessages(m, "headers", func(h protoreflect.Message) {
		if r.Headers == nil {
			r.Headers = make(map[string][]string)
		}
		r.Headers[getString(h, "name")] = getStrings(h, "values")
	})
	r.ExpiresAt = getTime(m, "expires_at")
}

type PresignGetRequest struct {
	Name string
}

func (*PresignGetRequest) protoName() protoreflect.Name { return "PresignGetRequest" }

func (r *PresignGetRequest) toProto(m protoreflect.Message)   { setString(m, "name", r.Name) }
func (r *PresignGetRequest) fromProto(m protoreflect.Message) { r.Name = getString(m, "name") }

type PresignGetResponse struct {
	URL       string
	ExpiresAt time.Time
}

func (*PresignGetResponse) protoName() protoreflect.Name { return "PresignGetResponse" }

func (r *PresignGetResponse) toProto(m protoreflect.Message) {
	setString(m, "url", r.URL)
	setTime(m, "expires_at", r.ExpiresAt)
}

func (r *PresignGetResponse) fromProto(m protoreflect.Message) {
	r.URL = getString(m, "url")
	r.ExpiresAt = getTime(m, "expires_at")
}
