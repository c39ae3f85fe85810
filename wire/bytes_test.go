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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBytes_GetBytes_PartialCopy(t *testing.T) {
	// Bytes holding {1..8}; requesting more than is available from the
	// offset copies only what remains, per "copies
	// min(length, Length()-srcOffset) bytes".
	b := WrapBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	dst := make([]byte, 8)
	n, err := b.GetBytes(3, dst, 0, 6)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
	want := []byte{4, 5, 6, 7, 8, 0, 0, 0}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Fatalf("dst mismatch (-want +got):\n%s", diff)
	}
}

func TestBytes_GetBytes_ExactCopy(t *testing.T) {
	b := WrapBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	dst := make([]byte, 8)
	n, err := b.GetBytes(4, dst, 0, 4)
	if err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []byte{5, 6, 7, 8, 0, 0, 0, 0}
	if diff := cmp.Diff(want, dst); diff != "" {
		t.Fatalf("dst mismatch (-want +got):\n%s", diff)
	}
}

func TestBytes_GetBytes_DestinationOverrun(t *testing.T) {
	b := WrapBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	dst := make([]byte, 8)
	_, err := b.GetBytes(4, dst, 6, 4)
	var oob *OutOfBoundsError
	if err == nil {
		t.Fatal("expected OutOfBoundsError, got nil")
	}
	if !asOutOfBounds(err, &oob) {
		t.Fatalf("err = %v, want *OutOfBoundsError", err)
	}
}

func asOutOfBounds(err error, target **OutOfBoundsError) bool {
	oob, ok := err.(*OutOfBoundsError)
	if ok {
		*target = oob
	}
	return ok
}

func TestBytes_Slice_SharesStorageAndOffsets(t *testing.T) {
	d := WrapBytes([]byte{10, 20, 30, 40, 50, 60})
	s, err := d.Slice(1, 5)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if s.Length() != 5 {
		t.Fatalf("Length() = %d, want 5", s.Length())
	}
	for i := int64(0); i < 5; i++ {
		got, err := s.GetByte(i)
		if err != nil {
			t.Fatalf("GetByte(%d): %v", i, err)
		}
		want, _ := d.GetByte(1 + i)
		if got != want {
			t.Fatalf("GetByte(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestBytes_Slice_IntAlignsWithParent(t *testing.T) {
	d := WrapBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	s, err := d.Slice(1, 5)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	sv, err := s.GetInt(0)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	dv, err := d.GetInt(1)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if sv != dv {
		t.Fatalf("s.GetInt(0) = %d, d.GetInt(1) = %d", sv, dv)
	}
}

func TestBytes_GetInt_BigEndian(t *testing.T) {
	b := WrapBytes([]byte{0x01, 0x02, 0x03, 0x04})
	v, err := b.GetInt(0)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if v != 0x01020304 {
		t.Fatalf("GetInt(0) = %#x, want 0x01020304", v)
	}
}

func TestBytes_GetLong_BigEndian(t *testing.T) {
	b := WrapBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	v, err := b.GetLong(0)
	if err != nil {
		t.Fatalf("GetLong: %v", err)
	}
	if v != 0x0102030405060708 {
		t.Fatalf("GetLong(0) = %#x, want 0x0102030405060708", v)
	}
}

func TestBytes_MatchesPrefix(t *testing.T) {
	d := WrapBytes([]byte("hello world"))
	if !d.MatchesPrefix(WrapBytes([]byte("hello"))) {
		t.Fatal("expected prefix match")
	}
	if d.MatchesPrefix(WrapBytes([]byte("world"))) {
		t.Fatal("expected prefix mismatch")
	}
	if !EmptyBytes.MatchesPrefix(EmptyBytes) {
		t.Fatal("empty-on-empty prefix should match")
	}
	if EmptyBytes.MatchesPrefix(d) {
		t.Fatal("empty data cannot have a longer prefix")
	}
}

func TestBytes_Contains(t *testing.T) {
	d := WrapBytes([]byte("hello world"))
	if !d.Contains(6, WrapBytes([]byte("world"))) {
		t.Fatal("expected needle to be found at offset 6")
	}
	if d.Contains(7, WrapBytes([]byte("world"))) {
		t.Fatal("needle should not fit past the end of data")
	}
}

func TestBytes_AsUtf8String(t *testing.T) {
	d := WrapBytes([]byte("caf\xc3\xa9"))
	if got, want := d.AsUtf8String(), "café"; got != want {
		t.Fatalf("AsUtf8String() = %q, want %q", got, want)
	}
}
