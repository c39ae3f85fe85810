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

import "bytes"

// EqualOptional compares two explicit-presence scalar fields: nil is
// only equal to nil, and two present values compare by ==. Generated
// Equals methods call this for every proto3 `optional` scalar and
// wrapper-optional field except BYTES, which is not comparable (see
// EqualOptionalBytes).
func EqualOptional[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// EqualOptionalBytes is EqualOptional's counterpart for a
// google.protobuf.BytesValue-wrapped field, whose Go representation
// (*[]byte) cannot satisfy the comparable constraint EqualOptional needs.
func EqualOptionalBytes(a, b *[]byte) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return bytes.Equal(*a, *b)
}

// EqualSlice compares two repeated scalar or repeated enum fields
// elementwise. Repeated MESSAGE fields compare by calling each element's
// own Equals method instead, and repeated BYTES fields use
// EqualBytesSlice, since neither satisfies comparable.
func EqualSlice[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualBytesSlice compares two repeated BYTES fields elementwise.
func EqualBytesSlice(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
