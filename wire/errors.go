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

// Package wire provides the byte-buffer and sequential I/O primitives that
// generated protoforge models, parsers, and writers depend on: an
// immutable, zero-copy [Bytes] view, a mutable [BufferedData] buffer, and
// the varint/zig-zag/fixed-width/UTF-8 helpers the protobuf wire format
// needs.
package wire

import "fmt"

// OutOfBoundsError is returned whenever a read or write would cross a
// buffer's declared bounds. Bounds violations are always reported, never
// silently truncated.
type OutOfBoundsError struct {
	Op     string
	Offset int64
	Length int64
	Extent int64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("wire: %s out of bounds: offset=%d length=%d extent=%d", e.Op, e.Offset, e.Length, e.Extent)
}

func outOfBounds(op string, offset, length, extent int64) error {
	return &OutOfBoundsError{Op: op, Offset: offset, Length: length, Extent: extent}
}

// WireFormatError is returned by sequential readers when the bytes being
// decoded do not form a valid protobuf encoding: a truncated varint, a
// length-delimited field whose declared length overruns the buffer, or an
// unexpected end of input mid-field.
type WireFormatError struct {
	Reason string
}

func (e *WireFormatError) Error() string {
	return "wire: " + e.Reason
}

func wireFormatError(reason string) error {
	return &WireFormatError{Reason: reason}
}
