package api

import (
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Field accessors over protoreflect messages built from schema. Zero values
// are left unset, as proto3 encodes them.

func fieldOf(m protoreflect.Message, name protoreflect.Name) protoreflect.FieldDescriptor {
	return m.Descriptor().Fields().ByName(name)
}

func setString(m protoreflect.Message, name protoreflect.Name, v string) {
	if v != "" {
		m.Set(fieldOf(m, name), protoreflect.ValueOfString(v))
	}
}

func getString(m protoreflect.Message, name protoreflect.Name) string {
	return m.Get(fieldOf(m, name)).String()
}

func setInt64(m protoreflect.Message, name protoreflect.Name, v int64) {
	if v != 0 {
		m.Set(fieldOf(m, name), protoreflect.ValueOfInt64(v))
	}
}

func getInt64(m protoreflect.Message, name protoreflect.Name) int64 {
	return m.Get(fieldOf(m, name)).Int()
}

// setTime writes t as a google.protobuf.Timestamp.
func setTime(m protoreflect.Message, name protoreflect.Name, t time.Time) {
	if t.IsZero() {
		return
	}
	ts := m.Mutable(fieldOf(m, name)).Message()
	setInt64(ts, "seconds", t.Unix())
	if nanos := t.Nanosecond(); nanos != 0 {
		ts.Set(fieldOf(ts, "nanos"), protoreflect.ValueOfInt32(int32(nanos)))
	}
}

// getTime reads a google.protobuf.Timestamp; unset is the zero time.
func getTime(m protoreflect.Message, name protoreflect.Name) time.Time {
	fd := fieldOf(m, name)
	if !m.Has(fd) {
		return time.Time{}
	}
	ts := m.Get(fd).Message()
	return time.Unix(getInt64(ts, "seconds"), ts.Get(fieldOf(ts, "nanos")).Int()).UTC()
}

func setMessage(m protoreflect.Message, name protoreflect.Name, fill func(protoreflect.Message)) {
	fill(m.Mutable(fieldOf(m, name)).Message())
}

func getMessage(m protoreflect.Message, name protoreflect.Name, read func(protoreflect.Message)) {
	if fd := fieldOf(m, name); m.Has(fd) {
		read(m.Get(fd).Message())
	}
}

func appendMessage(m protoreflect.Message, name protoreflect.Name, fill func(protoreflect.Message)) {
	l := m.Mutable(fieldOf(m, name)).List()
	v := l.NewElement()
	fill(v.Message())
	l.Append(v)
}

func rangeMessages(m protoreflect.Message, name protoreflect.Name, read func(protoreflect.Message)) {
	l := m.Get(fieldOf(m, name)).List()
	for i := 0; i < l.Len(); i++ {
		read(l.Get(i).Message())
	}
}

func setStrings(m protoreflect.Message, name protoreflect.Name, vs []string) {
	if len(vs) == 0 {
		return
	}
	l := m.Mutable(fieldOf(m, name)).List()
	for _, v := range vs {
		l.Append(protoreflect.ValueOfString(v))
	}
}

func getStrings(m protoreflect.Message, name protoreflect.Name) []string {
	l := m.Get(fieldOf(m, name)).List()
	out := make([]string, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		out = append(out, l.Get(i).String())
	}
	return out
}
