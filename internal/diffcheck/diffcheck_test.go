// Copyright 2025 Google LLC
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

package diffcheck

import (
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func TestEqual_IdenticalBytes(t *testing.T) {
	var buf []byte
	buf = protowire.AppendTag(buf, 1, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 42)
	buf = protowire.AppendTag(buf, 2, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte("hello"))

	equal, err := Equal(buf, buf)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Errorf("expected identical bytes to be equal")
	}
}

func TestEqual_FieldOrderIndependent(t *testing.T) {
	var a []byte
	a = protowire.AppendTag(a, 1, protowire.VarintType)
	a = protowire.AppendVarint(a, 42)
	a = protowire.AppendTag(a, 2, protowire.BytesType)
	a = protowire.AppendBytes(a, []byte("hello"))

	var b []byte
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("hello"))
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)

	equal, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Errorf("expected reordered but equivalent fields to be equal")
	}
}

func TestEqual_DifferentValue(t *testing.T) {
	var a []byte
	a = protowire.AppendTag(a, 1, protowire.VarintType)
	a = protowire.AppendVarint(a, 42)

	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 43)

	equal, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if equal {
		t.Errorf("expected different values to compare unequal")
	}
}

func TestEqual_DifferentFieldCount(t *testing.T) {
	var a []byte
	a = protowire.AppendTag(a, 1, protowire.VarintType)
	a = protowire.AppendVarint(a, 42)

	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, 42)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, 7)

	equal, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if equal {
		t.Errorf("expected different field counts to compare unequal")
	}
}

func TestEqual_RepeatedFieldMultiset(t *testing.T) {
	// Two encodings of the same repeated varint field with entries in a
	// different order are still wire-equivalent under this package's
	// notion of equality, since decodeFields has no schema to tell it the
	// field is ordered-significant; Equal only promises the multiset
	// matches.
	var a []byte
	a = protowire.AppendTag(a, 3, protowire.VarintType)
	a = protowire.AppendVarint(a, 1)
	a = protowire.AppendTag(a, 3, protowire.VarintType)
	a = protowire.AppendVarint(a, 2)

	var b []byte
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 2)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	equal, err := Equal(a, b)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !equal {
		t.Errorf("expected same multiset of repeated values to be equal")
	}
}

func TestEqual_TruncatedInput(t *testing.T) {
	_, err := Equal([]byte{0x08}, []byte{0x08})
	if err == nil {
		t.Errorf("expected truncated varint tag to produce an error")
	}
}
