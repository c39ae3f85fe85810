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

func TestMakeSplitTag_RoundTrip(t *testing.T) {
	cases := []struct {
		field int32
		wt    WireType
	}{
		{1, WireVarint},
		{2, WireLengthDelimited},
		{15, WireFixed64},
		{16, WireFixed32},
		{536870911, WireVarint}, // max field number
	}
	for _, c := range cases {
		tag := MakeTag(c.field, c.wt)
		gotField, gotWT := SplitTag(tag)
		if gotField != c.field || gotWT != c.wt {
			t.Fatalf("MakeTag(%d,%d) round trip = (%d,%d)", c.field, c.wt, gotField, gotWT)
		}
	}
}

func TestSkipField_Varint(t *testing.T) {
	b := Allocate(10)
	if err := b.WriteVarint(1234); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteByte(0xAA); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	if err := SkipField(b, WireVarint); err != nil {
		t.Fatal(err)
	}
	v, err := b.ReadByte()
	if err != nil || v != 0xAA {
		t.Fatalf("expected to land on the trailing marker byte, got (%v, %v)", v, err)
	}
}

func TestSkipField_LengthDelimited(t *testing.T) {
	b := Allocate(10)
	if err := b.WriteVarint(3); err != nil {
		t.Fatal(err)
	}
	if _, err := b.WriteBytes([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := b.WriteByte(0xAA); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	if err := SkipField(b, WireLengthDelimited); err != nil {
		t.Fatal(err)
	}
	v, err := b.ReadByte()
	if err != nil || v != 0xAA {
		t.Fatalf("expected to land on the trailing marker byte, got (%v, %v)", v, err)
	}
}

func TestSkipField_LengthDelimitedOverrunIsWireFormatError(t *testing.T) {
	b := Allocate(10)
	if err := b.WriteVarint(100); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	err := SkipField(b, WireLengthDelimited)
	if err == nil {
		t.Fatal("expected WireFormatError")
	}
	if _, ok := err.(*WireFormatError); !ok {
		t.Fatalf("err = %T, want *WireFormatError", err)
	}
}
