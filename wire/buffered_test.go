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

import "testing"

func TestBufferedData_WriteFlipRead(t *testing.T) {
	b := Allocate(16)
	if err := b.WriteByte(0x42); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if _, err := b.WriteBytes([]byte("hi")); err != nil {
		t.Fatalf("WriteBytes: %v", err)
	}
	b.Flip()
	if got, want := b.Limit(), int64(3); got != want {
		t.Fatalf("Limit() = %d, want %d", got, want)
	}
	if got, want := b.Position(), int64(0); got != want {
		t.Fatalf("Position() = %d, want %d", got, want)
	}
	v, err := b.ReadByte()
	if err != nil || v != 0x42 {
		t.Fatalf("ReadByte() = (%v, %v), want (0x42, nil)", v, err)
	}
	rest := make([]byte, 2)
	if _, err := b.ReadBytes(rest); err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(rest) != "hi" {
		t.Fatalf("ReadBytes() = %q, want %q", rest, "hi")
	}
}

func TestBufferedData_VarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 32, ^uint64(0)}
	for _, v := range cases {
		b := Allocate(10)
		if err := b.WriteVarint(v); err != nil {
			t.Fatalf("WriteVarint(%d): %v", v, err)
		}
		b.Flip()
		got, err := b.ReadVarint()
		if err != nil {
			t.Fatalf("ReadVarint after writing %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestBufferedData_ZigZagRoundTrip32(t *testing.T) {
	cases := []int32{0, 1, -1, 42, -42, 2147483647, -2147483648}
	for _, v := range cases {
		b := Allocate(10)
		if err := b.WriteZigZag32(v); err != nil {
			t.Fatalf("WriteZigZag32(%d): %v", v, err)
		}
		b.Flip()
		got, err := b.ReadZigZag32()
		if err != nil {
			t.Fatalf("ReadZigZag32 after writing %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestBufferedData_ZigZagRoundTrip64(t *testing.T) {
	cases := []int64{0, 1, -1, 42, -42, 1 << 40, -(1 << 40)}
	for _, v := range cases {
		b := Allocate(11)
		if err := b.WriteZigZag64(v); err != nil {
			t.Fatalf("WriteZigZag64(%d): %v", v, err)
		}
		b.Flip()
		got, err := b.ReadZigZag64()
		if err != nil {
			t.Fatalf("ReadZigZag64 after writing %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestBufferedData_FixedRoundTrip(t *testing.T) {
	b := Allocate(12)
	if err := b.WriteFixed32(0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteFixed64(0x0102030405060708); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	f32, err := b.ReadFixed32()
	if err != nil || f32 != 0xdeadbeef {
		t.Fatalf("ReadFixed32() = (%#x, %v)", f32, err)
	}
	f64, err := b.ReadFixed64()
	if err != nil || f64 != 0x0102030405060708 {
		t.Fatalf("ReadFixed64() = (%#x, %v)", f64, err)
	}
}

func TestBufferedData_FloatDoubleRoundTrip(t *testing.T) {
	b := Allocate(12)
	if err := b.WriteFloat(3.5); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteDouble(-2.25); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	f, err := b.ReadFloat()
	if err != nil || f != 3.5 {
		t.Fatalf("ReadFloat() = (%v, %v)", f, err)
	}
	d, err := b.ReadDouble()
	if err != nil || d != -2.25 {
		t.Fatalf("ReadDouble() = (%v, %v)", d, err)
	}
}

func TestBufferedData_UTF8RoundTrip(t *testing.T) {
	b := Allocate(32)
	if err := b.WriteUTF8("héllo"); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	s, err := b.ReadUTF8(b.Remaining())
	if err != nil {
		t.Fatal(err)
	}
	if s != "héllo" {
		t.Fatalf("ReadUTF8() = %q, want %q", s, "héllo")
	}
}

func TestBufferedData_SkipClampsToRemaining(t *testing.T) {
	b := Allocate(4)
	b.Flip() // limit=0, nothing written
	if got := b.Skip(100); got != 0 {
		t.Fatalf("Skip(100) on empty buffer = %d, want 0", got)
	}

	b2 := Allocate(4)
	if _, err := b2.WriteBytes([]byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	b2.Flip()
	if got := b2.Skip(2); got != 2 {
		t.Fatalf("Skip(2) = %d, want 2", got)
	}
	if got := b2.Skip(100); got != 2 {
		t.Fatalf("Skip(100) with 2 remaining = %d, want 2", got)
	}
	if b2.HasRemaining() {
		t.Fatal("expected no remaining bytes after skipping past the limit")
	}
}

func TestBufferedData_WriteBeyondLimitFails(t *testing.T) {
	b := Allocate(1)
	if err := b.WriteByte(1); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := b.WriteByte(2); err == nil {
		t.Fatal("expected OutOfBoundsError writing past capacity")
	}
}

func TestBufferedData_ReadPastLimitFails(t *testing.T) {
	b := Allocate(1)
	b.Flip()
	if _, err := b.ReadByte(); err == nil {
		t.Fatal("expected WireFormatError reading an empty buffer")
	}
}

func TestBufferedData_GetBytesDirectOffset(t *testing.T) {
	b := Allocate(4)
	if _, err := b.WriteBytes([]byte{9, 8, 7, 6}); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	dst := make([]byte, 2)
	if _, err := b.GetBytes(1, dst); err != nil {
		t.Fatal(err)
	}
	if dst[0] != 8 || dst[1] != 7 {
		t.Fatalf("GetBytes(1, ...) = %v, want [8 7]", dst)
	}
	// Direct-offset reads do not move the cursor.
	if b.Position() != 0 {
		t.Fatalf("Position() = %d, want 0", b.Position())
	}
}
