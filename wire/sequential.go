// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

import "math"

// SequentialData is the cursor state shared by readable and writable
// sequential views: a capacity, a movable position, and a movable limit.
type SequentialData interface {
	// Capacity is the total number of bytes this view can ever address.
	Capacity() int64
	// Position is the current cursor offset.
	Position() int64
	// SetPosition moves the cursor. It fails if pos is outside [0, Limit()].
	SetPosition(pos int64) error
	// Limit is the current end-of-data marker; reads/writes never cross it.
	Limit() int64
	// SetLimit moves the limit. It fails if limit is outside [0, Capacity()].
	SetLimit(limit int64) error
	// Remaining is Limit()-Position(), clamped to >= 0.
	Remaining() int64
	// HasRemaining reports Remaining() > 0.
	HasRemaining() bool
	// Skip advances the position by n bytes, clamped to [0, Remaining()],
	// and returns the number of bytes actually skipped.
	Skip(n int64) int64
}

// ReadableSequentialData is a position-tracked cursor over bytes, with the
// varint/zig-zag/fixed-width/UTF-8 decode helpers the protobuf wire format
// needs.
type ReadableSequentialData interface {
	SequentialData

	ReadByte() (byte, error)
	ReadBytes(dst []byte) (int, error)

	// ReadVarint reads a base-128 varint and returns it as an unsigned
	// 64-bit value; callers narrow/cast per field type.
	ReadVarint() (uint64, error)
	// ReadZigZag32 reads a varint and undoes the zig-zag transform for a
	// 32-bit signed value.
	ReadZigZag32() (int32, error)
	// ReadZigZag64 reads a varint and undoes the zig-zag transform for a
	// 64-bit signed value.
	ReadZigZag64() (int64, error)

	ReadFixed32() (uint32, error)
	ReadFixed64() (uint64, error)
	ReadFloat() (float32, error)
	ReadDouble() (float64, error)

	// ReadUTF8 reads exactly length bytes and decodes them as UTF-8.
	ReadUTF8(length int64) (string, error)
}

// WritableSequentialData is a position-tracked cursor for writing bytes,
// mirroring ReadableSequentialData's encode side.
type WritableSequentialData interface {
	SequentialData

	WriteByte(b byte) error
	WriteBytes(src []byte) (int, error)

	WriteVarint(v uint64) error
	WriteZigZag32(v int32) error
	WriteZigZag64(v int64) error

	WriteFixed32(v uint32) error
	WriteFixed64(v uint64) error
	WriteFloat(v float32) error
	WriteDouble(v float64) error

	// WriteUTF8 writes the UTF-8 encoding of s. The UTF8 helpers (see
	// utf8.go) pre-compute the encoded length when the caller needs to
	// write a length prefix first.
	WriteUTF8(s string) error
}

// EncodeZigZag32 maps a signed 32-bit value onto an unsigned one so that
// small-magnitude negatives encode as small varints.
func EncodeZigZag32(v int32) uint32 {
	return uint32((v << 1) ^ (v >> 31))
}

// DecodeZigZag32 is the inverse of EncodeZigZag32.
func DecodeZigZag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// EncodeZigZag64 maps a signed 64-bit value onto an unsigned one so that
// small-magnitude negatives encode as small varints.
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// DecodeZigZag64 is the inverse of EncodeZigZag64.
func DecodeZigZag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// Float32ToBits and Float64ToBits round-trip through the standard math
// bit-pattern conversions; kept here so emitters only ever import wire, not
// math, for fixed-width float encoding.

func Float32ToBits(f float32) uint32    { return math.Float32bits(f) }
func BitsToFloat32(b uint32) float32    { return math.Float32frombits(b) }
func Float64ToBits(f float64) uint64    { return math.Float64bits(f) }
func BitsToFloat64(b uint64) float64    { return math.Float64frombits(b) }
