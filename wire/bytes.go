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

import "unicode/utf8"

// RandomAccessData is the read-only, absolute-offset view implemented by
// Bytes. BufferedData does not implement it; its contents are read this
// way through the Bytes view its Bytes method returns.
type RandomAccessData interface {
	// Length returns the number of bytes visible through this view.
	Length() int64
	// GetByte returns the byte at offset, relative to this view.
	GetByte(offset int64) (byte, error)
	// GetInt reads 4 bytes at offset as a big-endian int32.
	GetInt(offset int64) (int32, error)
	// GetLong reads 8 bytes at offset as a big-endian int64.
	GetLong(offset int64) (int64, error)
	// GetBytes copies min(length, Length()-srcOffset) bytes starting at
	// srcOffset into dst starting at dstOffset, and returns the number of
	// bytes copied. It fails with OutOfBoundsError if dstOffset+length
	// would run past the end of dst.
	GetBytes(srcOffset int64, dst []byte, dstOffset int64, length int64) (int64, error)
	// Slice returns a zero-copy view of length bytes starting at offset.
	// The returned view shares storage with this one and remains valid
	// for the storage's lifetime.
	Slice(offset, length int64) (RandomAccessData, error)
}

// Bytes is an immutable, shareable byte sequence. Slicing a Bytes never
// copies: the slice is a new Bytes header pointing into the same backing
// array.
type Bytes struct {
	data []byte
	off  int64
	len  int64
}

// WrapBytes returns a Bytes view over b. The caller must not mutate b after
// this call: Bytes is contractually immutable, and callers that need to
// keep writing to a buffer should use BufferedData instead.
func WrapBytes(b []byte) Bytes {
	return Bytes{data: b, off: 0, len: int64(len(b))}
}

// EmptyBytes is the canonical zero-length Bytes value.
var EmptyBytes = WrapBytes(nil)

func (b Bytes) Length() int64 { return b.len }

func (b Bytes) GetByte(offset int64) (byte, error) {
	if offset < 0 || offset >= b.len {
		return 0, outOfBounds("GetByte", offset, 1, b.len)
	}
	return b.data[b.off+offset], nil
}

func (b Bytes) GetInt(offset int64) (int32, error) {
	if offset < 0 || offset+4 > b.len {
		return 0, outOfBounds("GetInt", offset, 4, b.len)
	}
	i := b.off + offset
	return int32(uint32(b.data[i])<<24 | uint32(b.data[i+1])<<16 | uint32(b.data[i+2])<<8 | uint32(b.data[i+3])), nil
}

func (b Bytes) GetLong(offset int64) (int64, error) {
	if offset < 0 || offset+8 > b.len {
		return 0, outOfBounds("GetLong", offset, 8, b.len)
	}
	i := b.off + offset
	var v uint64
	for k := int64(0); k < 8; k++ {
		v = v<<8 | uint64(b.data[i+k])
	}
	return int64(v), nil
}

func (b Bytes) GetBytes(srcOffset int64, dst []byte, dstOffset int64, length int64) (int64, error) {
	if srcOffset < 0 || srcOffset > b.len {
		return 0, outOfBounds("GetBytes", srcOffset, length, b.len)
	}
	if dstOffset < 0 || dstOffset+length > int64(len(dst)) {
		return 0, outOfBounds("GetBytes", dstOffset, length, int64(len(dst)))
	}
	n := length
	if avail := b.len - srcOffset; n > avail {
		n = avail
	}
	if n < 0 {
		n = 0
	}
	copy(dst[dstOffset:dstOffset+n], b.data[b.off+srcOffset:b.off+srcOffset+n])
	return n, nil
}

func (b Bytes) Slice(offset, length int64) (RandomAccessData, error) {
	if offset < 0 || length < 0 || offset+length > b.len {
		return nil, outOfBounds("Slice", offset, length, b.len)
	}
	return Bytes{data: b.data, off: b.off + offset, len: length}, nil
}

// AsUtf8String decodes the entire view as UTF-8.
func (b Bytes) AsUtf8String() string {
	return string(b.data[b.off : b.off+b.len])
}

// MatchesPrefix reports whether this view's first len(prefix) bytes equal
// prefix, byte for byte. An empty prefix against empty data is true.
func (b Bytes) MatchesPrefix(prefix RandomAccessData) bool {
	pl := prefix.Length()
	if pl > b.len {
		return false
	}
	for i := int64(0); i < pl; i++ {
		want, err := prefix.GetByte(i)
		if err != nil {
			return false
		}
		got, _ := b.GetByte(i)
		if got != want {
			return false
		}
	}
	return true
}

// Contains reports whether needle fits at offset within this view's
// current bounds and matches byte for byte.
func (b Bytes) Contains(offset int64, needle RandomAccessData) bool {
	nl := needle.Length()
	if offset < 0 || offset+nl > b.len {
		return false
	}
	for i := int64(0); i < nl; i++ {
		want, err := needle.GetByte(i)
		if err != nil {
			return false
		}
		got, _ := b.GetByte(offset + i)
		if got != want {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the underlying data as a plain []byte. Callers
// that only need to read should prefer the RandomAccessData accessors,
// which never copy.
func (b Bytes) Bytes() []byte {
	out := make([]byte, b.len)
	copy(out, b.data[b.off:b.off+b.len])
	return out
}

// ValidUTF8 reports whether this view's bytes form valid UTF-8, matching
// the precondition AsUtf8String relies on.
func (b Bytes) ValidUTF8() bool {
	return utf8.Valid(b.data[b.off : b.off+b.len])
}
