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

package schema

import (
	"strings"

	"github.com/wireforge/protoforge/internal/parser"
)

// scalarTypes maps the proto3 keyword spellings the parser leaves on a
// FieldNode.TypeName to their Typez. A TypeName not found here is a
// message or enum reference, resolved against messageIDs/enumIDs as
// files are processed (see resolveMessageFieldTypes).
var scalarTypes = map[string]Typez{
	"double":   DOUBLE_TYPE,
	"float":    FLOAT_TYPE,
	"int32":    INT32_TYPE,
	"int64":    INT64_TYPE,
	"uint32":   UINT32_TYPE,
	"uint64":   UINT64_TYPE,
	"sint32":   SINT32_TYPE,
	"sint64":   SINT64_TYPE,
	"fixed32":  FIXED32_TYPE,
	"fixed64":  FIXED64_TYPE,
	"sfixed32": SFIXED32_TYPE,
	"sfixed64": SFIXED64_TYPE,
	"bool":     BOOL_TYPE,
	"string":   STRING_TYPE,
	"bytes":    BYTES_TYPE,
}

// Build walks the parse trees of a compile's .proto files and constructs
// the immutable Message/Enum/Field graph described in spec.md §3, applying
// oneof grouping and wrapper-optional recognition (§4.2) as it goes, and
// qualifies every message/enum type reference against the types declared
// across all of trees (resolveMessageFieldTypes). It does not report a
// reference that matches no declared type (internal/lookup does) or
// enforce invariants (see Validate); those run as later, independent
// passes over the returned Model, following the
// teacher's practice of keeping construction, cross-referencing, and
// validation as separate stages (internal/api/test.go, xref.go,
// validate.go).
func Build(trees []*parser.ParseTree) (*Model, error) {
	var files []*File
	// messageIDs and enumIDs record every fully qualified ID declared
	// across all files, so a field's bare or partially-qualified
	// TypeName can be resolved, and disambiguated as message-vs-enum,
	// before the Model is assembled. Built in a first pass so forward
	// references (a field naming a message declared later in the same
	// file, or in a file processed later) still resolve.
	messageIDs := map[string]bool{}
	enumIDs := map[string]bool{}
	var pending []*File

	for _, tree := range trees {
		f := &File{
			Path:                tree.Path,
			Package:             tree.Package,
			JavaPackageOverride: tree.JavaPackage,
			DirBucket:           dirBucket(tree.Path),
			Imports:             tree.Imports,
		}
		for _, mn := range tree.Messages {
			f.Messages = append(f.Messages, buildMessage(mn, tree.Package, nil, messageIDs, enumIDs))
		}
		for _, en := range tree.Enums {
			f.Enums = append(f.Enums, buildEnum(en, tree.Package, nil, enumIDs))
		}
		pending = append(pending, f)
		files = append(files, f)
	}

	typeIndex := typeIndexOf(messageIDs, enumIDs)
	for _, f := range pending {
		for _, m := range f.Messages {
			resolveMessageFieldTypes(m, typeIndex, enumIDs)
		}
	}

	model := NewModel(files)
	LabelRecursiveFields(model)
	return model, nil
}

func dirBucket(path string) string {
	idx := strings.LastIndexByte(path, '/')
	dir := path
	if idx >= 0 {
		dir = path[:idx]
	}
	idx = strings.LastIndexByte(dir, '/')
	last := dir
	if idx >= 0 {
		last = dir[idx+1:]
	}
	return strings.ToLower(last)
}

// typeIndexOf returns a combined membership check used only for
// qualifying a bare reference to a fully qualified ID; buildMessage and
// buildEnum populate messageIDs and enumIDs directly so that reference
// resolution can tell message and enum targets apart afterward.
func typeIndexOf(messageIDs, enumIDs map[string]bool) map[string]bool {
	combined := map[string]bool{}
	for id := range messageIDs {
		combined[id] = true
	}
	for id := range enumIDs {
		combined[id] = true
	}
	return combined
}

func buildMessage(mn *parser.MessageNode, pkg string, parent *Message, messageIDs, enumIDs map[string]bool) *Message {
	id := qualify(pkg, parent, mn.Name)
	m := &Message{
		ID:            id,
		Name:          mn.Name,
		Documentation: mn.Doc,
		Deprecated:    mn.Deprecated,
		Parent:        parent,
		Package:       pkg,
		Reserved:      convertReserved(mn.Reserved),
	}
	messageIDs[id] = true

	for _, oo := range mn.OneOfs {
		group := &OneOf{
			ID:            id + "." + oo.Name,
			Name:          oo.Name,
			Documentation: oo.Doc,
			Parent:        m,
		}
		for _, fn := range oo.Fields {
			field := buildField(fn, FieldOneOfMember, m, messageIDs)
			field.OneOf = group
			group.Fields = append(group.Fields, field)
			m.Fields = append(m.Fields, field)
		}
		m.OneOfs = append(m.OneOfs, group)
	}
	for _, fn := range mn.Fields {
		m.Fields = append(m.Fields, buildField(fn, FieldSingle, m, messageIDs))
	}
	for _, nested := range mn.Messages {
		m.Messages = append(m.Messages, buildMessage(nested, pkg, m, messageIDs, enumIDs))
	}
	for _, en := range mn.Enums {
		m.Enums = append(m.Enums, buildEnum(en, pkg, m, enumIDs))
	}
	return m
}

func convertReserved(ranges []parser.ReservedRange) []ReservedRange {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]ReservedRange, len(ranges))
	for i, r := range ranges {
		out[i] = ReservedRange{From: r.From, To: r.To}
	}
	return out
}

func buildEnum(en *parser.EnumNode, pkg string, parent *Message, enumIDs map[string]bool) *Enum {
	id := qualify(pkg, parent, en.Name)
	e := &Enum{
		ID:            id,
		Name:          en.Name,
		Documentation: en.Doc,
		Deprecated:    en.Deprecated,
		Parent:        parent,
		Package:       pkg,
	}
	enumIDs[id] = true
	for _, vn := range en.Values {
		v := &EnumValue{
			ID:            id + "." + vn.Name,
			Name:          vn.Name,
			Number:        vn.Number,
			Documentation: vn.Doc,
			Deprecated:    vn.Deprecated,
			Parent:        e,
		}
		e.Values = append(e.Values, v)
	}
	return e
}

func buildField(fn *parser.FieldNode, kind FieldKind, owner *Message, messageIDs map[string]bool) *Field {
	field := &Field{
		ID:            fn.Name,
		Name:          fn.Name,
		Documentation: fn.Doc,
		Number:        fn.Number,
		Kind:          kind,
		Repeated:      fn.Repeated,
		Optional:      fn.Optional,
		Deprecated:    fn.Deprecated,
	}
	if fn.MapKeyType != "" {
		// map<K, V> is parsed but never representable as a real field
		// type: synthesize the same <FieldName>Entry message protoc
		// itself generates for a map field, mark it IsMap, and hang the
		// field off it as an ordinary repeated MESSAGE reference. This
		// puts the entry through validateMessage's normal recursion (it
		// is appended to owner.Messages like any nested message), so
		// schema.Validate's existing IsMap check (spec.md §7
		// UnsupportedMap) rejects it without a field-level special case.
		entry := buildMapEntry(fn, owner, messageIDs)
		owner.Messages = append(owner.Messages, entry)
		field.Typez = MESSAGE_TYPE
		field.TypezID = entry.ID
		field.Repeated = true
		return field
	}
	if scalar, ok := scalarTypes[fn.TypeName]; ok {
		field.Typez = scalar
		return field
	}
	// Enum vs. message is disambiguated in resolveMessageFieldTypes, once
	// every type in the compile is known; until then the reference is
	// tentatively tagged MESSAGE_TYPE with its raw (possibly unqualified)
	// name preserved as TypezID.
	field.Typez = MESSAGE_TYPE
	field.TypezID = fn.TypeName
	return field
}

// mapEntryName follows protoc's own <FieldName>Entry convention for a
// map field's synthesized entry message.
func mapEntryName(fieldName string) string {
	if fieldName == "" {
		return "Entry"
	}
	camel := strings.ToUpper(fieldName[:1]) + fieldName[1:]
	return camel + "Entry"
}

// buildMapEntry synthesizes the two-field (key, value) message a
// `map<K, V>` field implies, registering it in messageIDs the same way
// buildMessage registers every other message so a later qualifyReference
// pass can resolve a message/enum value type.
func buildMapEntry(fn *parser.FieldNode, owner *Message, messageIDs map[string]bool) *Message {
	name := mapEntryName(fn.Name)
	id := owner.ID + "." + name
	entry := &Message{
		ID:      id,
		Name:    name,
		Parent:  owner,
		Package: owner.Package,
		IsMap:   true,
		Fields: []*Field{
			mapEntryField("key", 1, fn.MapKeyType),
			mapEntryField("value", 2, fn.MapValueType),
		},
	}
	messageIDs[id] = true
	return entry
}

func mapEntryField(name string, number int32, typeName string) *Field {
	field := &Field{ID: name, Name: name, Number: number, Kind: FieldSingle}
	if scalar, ok := scalarTypes[typeName]; ok {
		field.Typez = scalar
		return field
	}
	field.Typez = MESSAGE_TYPE
	field.TypezID = typeName
	return field
}

// resolveMessageFieldTypes fixes up a MESSAGE_TYPE field's TypezID to a
// fully qualified name, reclassifies it as ENUM_TYPE where the target
// turns out to be an enum, and applies wrapper-optional recognition. It
// runs after every message and enum in the compile has been registered in
// typeIndex so type references can be qualified against the right scope.
func resolveMessageFieldTypes(m *Message, typeIndex, enumIDs map[string]bool) {
	for _, field := range m.Fields {
		if field.Typez != MESSAGE_TYPE {
			continue
		}
		field.TypezID = qualifyReference(m, field.TypezID, typeIndex)
		if enumIDs[field.TypezID] {
			field.Typez = ENUM_TYPE
			continue
		}
		resolveWrapperOptional(field)
	}
	for _, nested := range m.Messages {
		resolveMessageFieldTypes(nested, typeIndex, enumIDs)
	}
}

// qualifyReference resolves a field's raw type reference to a fully
// qualified ID by walking outward from the declaring message's scope to
// its package, the way proto3 scoping rules require: an unqualified name
// first matches a sibling in the same message, then an ancestor's
// siblings, then the package root.
func qualifyReference(scope *Message, raw string, typeIndex map[string]bool) string {
	if strings.HasPrefix(raw, ".") {
		return raw
	}
	for s := scope; s != nil; s = s.Parent {
		candidate := s.ID + "." + raw
		if typeIndex[candidate] {
			return candidate
		}
	}
	return "." + strings.TrimPrefix(scope.Package, ".") + "." + raw
}

func qualify(pkg string, parent *Message, name string) string {
	if parent != nil {
		return parent.ID + "." + name
	}
	return "." + pkg + "." + name
}
