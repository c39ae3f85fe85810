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

// Package diffcheck provides a descriptor-free differential check between
// two protobuf wire encodings, for generated tests that want a second
// opinion beyond comparing decoded Model values (spec.md §4.4.4's
// testAgainstProtoC, §8 property 9; generated tests call Equal when
// config's Testing.AgainstReferenceEncoder is set). It walks
// both encodings field-by-field using google.golang.org/protobuf's
// low-level protowire reader, the same package the reference
// implementation's own generated marshalers are built on, rather than a
// generated *.pb.go twin of every message this compiler emits.
package diffcheck

import (
	"bytes"
	"fmt"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"
)

// rawField is one decoded (field number, wire type, raw value bytes)
// triple. For length-delimited fields the raw value excludes the length
// prefix; for varint/fixed32/fixed64 it is the fixed-width or
// minimally-encoded value itself.
type rawField struct {
	number protowire.Number
	typ    protowire.Type
	value  []byte
}

// decodeFields walks data generically, without a message descriptor,
// recording every field it encounters. Unlike this compiler's own
// generated Parsers, it does not know which fields are repeated or
// packed; a packed-repeated payload and a plain length-delimited field
// are indistinguishable without schema knowledge, which is fine here
// since Equal only needs the raw bytes to line up.
func decodeFields(data []byte) ([]rawField, error) {
	var out []rawField
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("diffcheck: invalid tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		var value []byte
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("diffcheck: invalid varint: %w", protowire.ParseError(n))
			}
			value = protowire.AppendVarint(nil, v)
			data = data[n:]
		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(data)
			if n < 0 {
				return nil, fmt.Errorf("diffcheck: invalid fixed32: %w", protowire.ParseError(n))
			}
			value = protowire.AppendFixed32(nil, v)
			data = data[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(data)
			if n < 0 {
				return nil, fmt.Errorf("diffcheck: invalid fixed64: %w", protowire.ParseError(n))
			}
			value = protowire.AppendFixed64(nil, v)
			data = data[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("diffcheck: invalid length-delimited field: %w", protowire.ParseError(n))
			}
			value = append([]byte(nil), v...)
			data = data[n:]
		default:
			return nil, fmt.Errorf("diffcheck: unsupported wire type %v for field %d", typ, num)
		}
		out = append(out, rawField{number: num, typ: typ, value: value})
	}
	return out, nil
}

// Equal reports whether a and b carry the same multiset of (field number,
// wire type, value) triples, regardless of field order — the notion of
// "semantic equivalence" spec.md §8 property 9 and §9's Open Question
// settle on in place of requiring byte-identical output.
func Equal(a, b []byte) (bool, error) {
	fa, err := decodeFields(a)
	if err != nil {
		return false, err
	}
	fb, err := decodeFields(b)
	if err != nil {
		return false, err
	}
	if len(fa) != len(fb) {
		return false, nil
	}
	sortFields(fa)
	sortFields(fb)
	for i := range fa {
		if fa[i].number != fb[i].number || fa[i].typ != fb[i].typ || !bytes.Equal(fa[i].value, fb[i].value) {
			return false, nil
		}
	}
	return true, nil
}

func sortFields(fs []rawField) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].number != fs[j].number {
			return fs[i].number < fs[j].number
		}
		if fs[i].typ != fs[j].typ {
			return fs[i].typ < fs[j].typ
		}
		return bytes.Compare(fs[i].value, fs[j].value) < 0
	})
}
