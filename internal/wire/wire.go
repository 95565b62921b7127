// Package wire holds the protobuf wire helpers shared by the hand-written
// codecs of the IBC store types. Field numbers and layouts match the
// corresponding ibc-go protobuf definitions so that stored values and proofs
// stay byte compatible with other IBC implementations.
package wire

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var deterministic = proto.MarshalOptions{Deterministic: true}

// Field is a single decoded protobuf field. Only one of Varint or Bytes is
// meaningful, depending on Type.
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// AppendString appends a string field. Empty strings are omitted, as in proto3.
func AppendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// AppendRepeatedString appends every element of a repeated string field.
func AppendRepeatedString(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

// AppendBytes appends a bytes field. Empty values are omitted, as in proto3.
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// AppendUvarint appends a varint field. Zero values are omitted, as in proto3.
func AppendUvarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// AppendMessage appends an embedded message field. A set message is always
// written, even when its encoding is empty.
func AppendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// AppendTimestamp appends a google.protobuf.Timestamp field.
func AppendTimestamp(b []byte, num protowire.Number, t time.Time) ([]byte, error) {
	bz, err := deterministic.Marshal(timestamppb.New(t))
	if err != nil {
		return nil, err
	}
	return AppendMessage(b, num, bz), nil
}

// UnmarshalTimestamp decodes a google.protobuf.Timestamp.
func UnmarshalTimestamp(bz []byte) (time.Time, error) {
	var ts timestamppb.Timestamp
	if err := proto.Unmarshal(bz, &ts); err != nil {
		return time.Time{}, err
	}
	if err := ts.CheckValid(); err != nil {
		return time.Time{}, err
	}
	return ts.AsTime(), nil
}

// MarshalAny wraps value into a google.protobuf.Any with the given type URL.
func MarshalAny(typeURL string, value []byte) ([]byte, error) {
	return deterministic.Marshal(&anypb.Any{TypeUrl: typeURL, Value: value})
}

// UnmarshalAny decodes a google.protobuf.Any and returns its type URL and value.
func UnmarshalAny(bz []byte) (string, []byte, error) {
	var msg anypb.Any
	if err := proto.Unmarshal(bz, &msg); err != nil {
		return "", nil, err
	}
	return msg.GetTypeUrl(), msg.GetValue(), nil
}

// Range decodes bz field by field and calls fn for every varint or
// length-delimited field. Fields of other wire types are skipped.
func Range(bz []byte, fn func(Field) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return protowire.ParseError(n)
		}
		bz = bz[n:]

		field := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(bz)
			if m < 0 {
				return protowire.ParseError(m)
			}
			field.Varint = v
			n = m
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(bz)
			if m < 0 {
				return protowire.ParseError(m)
			}
			field.Bytes = v
			n = m
		default:
			m := protowire.ConsumeFieldValue(num, typ, bz)
			if m < 0 {
				return protowire.ParseError(m)
			}
			bz = bz[m:]
			continue
		}
		bz = bz[n:]

		if err := fn(field); err != nil {
			return err
		}
	}
	return nil
}

// ExpectType returns an error if the field was not encoded with the wire type
// its schema declares.
func ExpectType(f Field, typ protowire.Type) error {
	if f.Type != typ {
		return fmt.Errorf("field %d: wire type %d, expected %d", f.Num, f.Type, typ)
	}
	return nil
}
