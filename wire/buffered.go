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

// BufferedData is a mutable, exclusively-owned buffer implementing both
// ReadableSequentialData and WritableSequentialData. It follows the usual
// write-then-flip-then-read lifecycle: Allocate leaves it ready to write up
// to its capacity; Flip switches it to read back exactly what was written.
type BufferedData struct {
	data     []byte
	position int64
	limit    int64
	capacity int64
}

// Allocate returns a new buffer of the given capacity, positioned at the
// start and limited to the full capacity, ready for writing.
func Allocate(capacity int64) *BufferedData {
	return &BufferedData{
		data:     make([]byte, capacity),
		position: 0,
		limit:    capacity,
		capacity: capacity,
	}
}

// WrapForReading returns a buffer over b, positioned at the start and
// limited to len(b), ready for reading. Unlike Bytes, the returned buffer
// owns b and is free to mutate it; callers that need immutability should
// use WrapBytes instead.
func WrapForReading(b []byte) *BufferedData {
	return &BufferedData{
		data:     b,
		position: 0,
		limit:    int64(len(b)),
		capacity: int64(len(b)),
	}
}

// Flip switches the buffer from write mode to read mode: the limit becomes
// the current position (the amount written) and the position resets to 0.
func (b *BufferedData) Flip() {
	b.limit = b.position
	b.position = 0
}

// Clear resets the buffer to write mode over its full capacity, without
// erasing the underlying bytes.
func (b *BufferedData) Clear() {
	b.position = 0
	b.limit = b.capacity
}

func (b *BufferedData) Capacity() int64 { return b.capacity }
func (b *BufferedData) Position() int64 { return b.position }
func (b *BufferedData) Limit() int64    { return b.limit }

func (b *BufferedData) SetPosition(pos int64) error {
	if pos < 0 || pos > b.limit {
		return outOfBounds("SetPosition", pos, 0, b.limit)
	}
	b.position = pos
	return nil
}

func (b *BufferedData) SetLimit(limit int64) error {
	if limit < 0 || limit > b.capacity {
		return outOfBounds("SetLimit", limit, 0, b.capacity)
	}
	b.limit = limit
	if b.position > limit {
		b.position = limit
	}
	return nil
}

func (b *BufferedData) Remaining() int64 {
	r := b.limit - b.position
	if r < 0 {
		return 0
	}
	return r
}

func (b *BufferedData) HasRemaining() bool { return b.Remaining() > 0 }

func (b *BufferedData) Skip(n int64) int64 {
	if n < 0 {
		n = 0
	}
	if n > b.Remaining() {
		n = b.Remaining()
	}
	b.position += n
	return n
}

// GetBytes is a direct, absolute-offset read: it copies len(dst) bytes
// starting at offset (relative to the start of the buffer, not the
// position) without touching the cursor.
func (b *BufferedData) GetBytes(offset int64, dst []byte) (int, error) {
	n := int64(len(dst))
	if offset < 0 || offset+n > b.limit {
		return 0, outOfBounds("GetBytes", offset, n, b.limit)
	}
	copy(dst, b.data[offset:offset+n])
	return len(dst), nil
}

// Bytes returns a zero-copy view of the region [0, Limit()) of this
// buffer. The view shares the BufferedData's backing array, so any later
// write through the BufferedData into that region, before or after the
// position at snapshot time, is visible through the returned Bytes.
func (b *BufferedData) Bytes() Bytes {
	return WrapBytes(b.data[:b.limit])
}

func (b *BufferedData) requireReadable(n int64) error {
	if n > b.Remaining() {
		return wireFormatError("unexpected end of input")
	}
	return nil
}

func (b *BufferedData) requireWritable(n int64) error {
	if n > b.Remaining() {
		return outOfBounds("write", b.position, n, b.limit)
	}
	return nil
}

func (b *BufferedData) ReadByte() (byte, error) {
	if err := b.requireReadable(1); err != nil {
		return 0, err
	}
	v := b.data[b.position]
	b.position++
	return v, nil
}

func (b *BufferedData) WriteByte(v byte) error {
	if err := b.requireWritable(1); err != nil {
		return err
	}
	b.data[b.position] = v
	b.position++
	return nil
}

func (b *BufferedData) ReadBytes(dst []byte) (int, error) {
	n := int64(len(dst))
	if err := b.requireReadable(n); err != nil {
		return 0, err
	}
	copy(dst, b.data[b.position:b.position+n])
	b.position += n
	return len(dst), nil
}

func (b *BufferedData) WriteBytes(src []byte) (int, error) {
	n := int64(len(src))
	if err := b.requireWritable(n); err != nil {
		return 0, err
	}
	copy(b.data[b.position:b.position+n], src)
	b.position += n
	return len(src), nil
}

// ReadVarint reads a standard protobuf base-128 varint (little-endian
// groups of 7 bits, continuation bit in the high bit of each byte).
func (b *BufferedData) ReadVarint() (uint64, error) {
	var result uint64
	var shift uint
	for {
		if shift >= 64 {
			return 0, wireFormatError("varint too long")
		}
		v, err := b.ReadByte()
		if err != nil {
			return 0, wireFormatError("truncated varint")
		}
		result |= uint64(v&0x7f) << shift
		if v&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// WriteVarint writes v as a standard protobuf base-128 varint.
func (b *BufferedData) WriteVarint(v uint64) error {
	for {
		if v < 0x80 {
			return b.WriteByte(byte(v))
		}
		if err := b.WriteByte(byte(v) | 0x80); err != nil {
			return err
		}
		v >>= 7
	}
}

func (b *BufferedData) ReadZigZag32() (int32, error) {
	v, err := b.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(uint32(v)), nil
}

func (b *BufferedData) WriteZigZag32(v int32) error {
	return b.WriteVarint(uint64(EncodeZigZag32(v)))
}

func (b *BufferedData) ReadZigZag64() (int64, error) {
	v, err := b.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

func (b *BufferedData) WriteZigZag64(v int64) error {
	return b.WriteVarint(EncodeZigZag64(v))
}

func (b *BufferedData) ReadFixed32() (uint32, error) {
	var buf [4]byte
	if _, err := b.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24, nil
}

func (b *BufferedData) WriteFixed32(v uint32) error {
	buf := [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	_, err := b.WriteBytes(buf[:])
	return err
}

func (b *BufferedData) ReadFixed64() (uint64, error) {
	var buf [8]byte
	if _, err := b.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v, nil
}

func (b *BufferedData) WriteFixed64(v uint64) error {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v)
		v >>= 8
	}
	_, err := b.WriteBytes(buf[:])
	return err
}

func (b *BufferedData) ReadFloat() (float32, error) {
	v, err := b.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return BitsToFloat32(v), nil
}

func (b *BufferedData) WriteFloat(v float32) error {
	return b.WriteFixed32(Float32ToBits(v))
}

func (b *BufferedData) ReadDouble() (float64, error) {
	v, err := b.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return BitsToFloat64(v), nil
}

func (b *BufferedData) WriteDouble(v float64) error {
	return b.WriteFixed64(Float64ToBits(v))
}

func (b *BufferedData) ReadUTF8(length int64) (string, error) {
	buf := make([]byte, length)
	if _, err := b.ReadBytes(buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func (b *BufferedData) WriteUTF8(s string) error {
	_, err := b.WriteBytes([]byte(s))
	return err
}

var (
	_ ReadableSequentialData = (*BufferedData)(nil)
	_ WritableSequentialData = (*BufferedData)(nil)
)
