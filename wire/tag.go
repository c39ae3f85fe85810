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

// WireType is one of the four protobuf wire-format encodings a field tag
// can carry.
type WireType uint8

const (
	WireVarint          WireType = 0
	WireFixed64         WireType = 1
	WireLengthDelimited WireType = 2
	// WireStartGroup and WireEndGroup exist only so unknown-field skipping
	// can recognize and reject proto2 groups; this compiler never emits
	// them (proto2 is a Non-goal).
	WireStartGroup WireType = 3
	WireEndGroup   WireType = 4
	WireFixed32    WireType = 5
)

// MakeTag packs a field number and wire type into the single varint that
// precedes every field's value on the wire.
func MakeTag(fieldNumber int32, wt WireType) uint64 {
	return uint64(fieldNumber)<<3 | uint64(wt)
}

// SizeVarint returns the number of bytes WriteVarint(v) would write,
// without writing anything. Generated Writers use this to precompute a
// message's total encoded length before allocating a buffer for it.
func SizeVarint(v uint64) int64 {
	n := int64(1)
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// SplitTag unpacks a tag varint into its field number and wire type.
func SplitTag(tag uint64) (fieldNumber int32, wt WireType) {
	return int32(tag >> 3), WireType(tag & 0x7)
}

// SkipField reads and discards the value that follows a tag of the given
// wire type, without interpreting it. Used by generated parsers to ignore
// fields they don't recognize, per the "unknown fields are skipped" rule.
func SkipField(r ReadableSequentialData, wt WireType) error {
	switch wt {
	case WireVarint:
		_, err := r.ReadVarint()
		return err
	case WireFixed64:
		_, err := r.ReadFixed64()
		return err
	case WireFixed32:
		_, err := r.ReadFixed32()
		return err
	case WireLengthDelimited:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		if int64(n) > r.Remaining() {
			return wireFormatError("length-delimited field overruns buffer")
		}
		r.Skip(int64(n))
		return nil
	default:
		return wireFormatError("cannot skip group-encoded field")
	}
}
