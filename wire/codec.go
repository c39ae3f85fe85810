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

// Codec is the parse/measure/write shape of a wire-format codec: parse a
// value out of bytes, measure how many bytes writing it would take, and
// write it to a sequential destination. Generated code does not implement
// it as a single type: each message's generated Parser and Writer carry
// these operations separately, and no JSON codec is generated. Measuring
// before writing is what lets the Writer Emitter's generated code compute
// a MESSAGE field's length prefix without a two-pass buffer strategy (it
// pre-computes the length, then writes once).
type Codec[T any] interface {
	Parse(data Bytes) (T, error)
	Measure(value T) int64
	Write(value T, w WritableSequentialData) error
}

// CursorCodec is the Codec variant for codecs that only know how to read from a
// ReadableSequentialData cursor (the common case for nested MESSAGE
// fields, which read from the same cursor as their parent rather than
// slicing out a fresh Bytes).
type CursorCodec[T any] interface {
	ParseFrom(r ReadableSequentialData, length int64) (T, error)
	Measure(value T) int64
	Write(value T, w WritableSequentialData) error
}
