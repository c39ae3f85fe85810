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
	"encoding/hex"
	"testing"
)

func TestEncodedLength_MatchesByteLength(t *testing.T) {
	cases := []string{"", "Dude", "héllo", "✅", "日本語"}
	for _, s := range cases {
		if got, want := EncodedLength(s), int64(len(s)); got != want {
			t.Fatalf("EncodedLength(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestEncodeUTF8_WritesExactBytes(t *testing.T) {
	b := Allocate(16)
	if err := EncodeUTF8("✅", b); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	got := make([]byte, b.Remaining())
	if _, err := b.ReadBytes(got); err != nil {
		t.Fatal(err)
	}
	if want := "e29c85"; hex.EncodeToString(got) != want {
		t.Fatalf("encoded bytes = %x, want %s", got, want)
	}
	if int64(len(got)) != EncodedLength("✅") {
		t.Fatalf("wrote %d bytes, EncodedLength says %d", len(got), EncodedLength("✅"))
	}
}

func TestDecodeUTF8_RoundTripsThroughBytes(t *testing.T) {
	b := Allocate(32)
	if err := EncodeUTF8("protoforge", b); err != nil {
		t.Fatal(err)
	}
	b.Flip()
	s, err := DecodeUTF8(b, b.Remaining())
	if err != nil {
		t.Fatal(err)
	}
	if s != "protoforge" {
		t.Fatalf("DecodeUTF8() = %q, want %q", s, "protoforge")
	}
}
