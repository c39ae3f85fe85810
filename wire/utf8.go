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

// EncodedLength returns the number of bytes s occupies when encoded as
// UTF-8. This always equals len(s) in Go, since Go strings are already
// UTF-8 byte sequences; the function exists so callers never need to know
// that, and so generated writers have one place to call when they need a
// length prefix before the bytes themselves.
func EncodedLength(s string) int64 {
	return int64(len(s))
}

// EncodeUTF8 writes the UTF-8 bytes of s to w.
func EncodeUTF8(s string, w WritableSequentialData) error {
	return w.WriteUTF8(s)
}

// DecodeUTF8 reads exactly length bytes from r and decodes them as UTF-8.
func DecodeUTF8(r ReadableSequentialData, length int64) (string, error) {
	return r.ReadUTF8(length)
}
