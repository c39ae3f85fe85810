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

package emit

import (
	"fmt"
	"strings"

	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// EmittedFile is one Go source file an Emitter produced: its resolved Go
// import path, the bare file name, and its rendered text.
type EmittedFile struct {
	ImportPath string
	FileName   string
	Source     string
}

// EmitModel renders the Model Emitter's output for m: the immutable
// value type, its OneOf discriminant types, a nested Builder, and the
// structural Equals/HashCode pair every Model needs for the Test
// Emitter's round-trip assertions to compare against. Grounded on the
// teacher's internal/golang struct-rendering pass (internal/golang/golang.go),
// adapted from a protoc-plugin-style single emission into this
// per-message, per-artifact-kind file layout.
func EmitModel(st *lookup.SymbolTable, model *schema.Model, m *schema.Message) (*EmittedFile, error) {
	plan := BuildMessagePlan(st, model, lookup.KindModel, m)

	var body strings.Builder
	writeOneOfKindTypes(&body, plan)
	writeStructDecl(&body, plan)
	writeDefaultVar(&body, plan)
	writeConstructor(&body, plan)
	writeAccessors(&body, plan)
	writeEquals(&body, plan)
	writeHashCode(&body, plan)
	writeBuilder(&body, plan)
	writeCodecRefs(&body, plan, st, m)

	imports := withWireImport(plan.Imports)
	skeleton := newSkeleton(plan.Doc, plan.PackageName, imports, body.String())
	source, err := renderFile("file.go.mustache", skeleton)
	if err != nil {
		return nil, fmt.Errorf("emit model %s: %w", m.ID, err)
	}
	return &EmittedFile{
		ImportPath: GoImportPath(st.PackageForMessage(lookup.KindModel, m)),
		FileName:   strings.ToLower(plan.GoName) + ".go",
		Source:     source,
	}, nil
}

func writeOneOfKindTypes(body *strings.Builder, plan *MessagePlan) {
	for _, oo := range plan.OneOfs {
		fmt.Fprintf(body, "// %s enumerates %s's mutually exclusive branches.\n", oo.GoTypeName, GoFieldName(oo.OneOf.Name))
		fmt.Fprintf(body, "type %s int32\n\n", oo.GoTypeName)
		fmt.Fprintf(body, "const (\n\t%s %s = iota\n", oo.UnsetName, oo.GoTypeName)
		for _, branch := range oo.Branches {
			fmt.Fprintf(body, "\t%s_%s\n", oo.GoTypeName, branch.GoName)
		}
		body.WriteString(")\n\n")
	}
}

func writeStructDecl(body *strings.Builder, plan *MessagePlan) {
	if plan.Doc != "" {
		fmt.Fprintf(body, "%s\ntype %s struct {\n", plan.Doc, plan.GoName)
	} else {
		fmt.Fprintf(body, "type %s struct {\n", plan.GoName)
	}
	writtenKind := map[*schema.OneOf]bool{}
	for _, f := range plan.Fields {
		if f.IsOneOf && !writtenKind[f.Field.OneOf] {
			writtenKind[f.Field.OneOf] = true
			oop := oneOfPlanFor(plan, f.Field.OneOf)
			fmt.Fprintf(body, "\t%sKind %s\n", GoFieldName(f.Field.OneOf.Name), oop.GoTypeName)
		}
		doc := ReflowDoc("\t//", f.Field.Documentation)
		if doc != "" {
			fmt.Fprintf(body, "%s\n", doc)
		}
		fmt.Fprintf(body, "\t%s %s\n", f.GoName, f.GoType)
	}
	body.WriteString("}\n\n")
}

func oneOfPlanFor(plan *MessagePlan, oo *schema.OneOf) *OneOfPlan {
	for _, oop := range plan.OneOfs {
		if oop.OneOf == oo {
			return oop
		}
	}
	return nil
}

func writeDefaultVar(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// Default%s is the proto3 zero value for %s: every field at its\n", plan.GoName, plan.GoName)
	fmt.Fprintf(body, "// default, every OneOf unset.\n")
	fmt.Fprintf(body, "var Default%s = %s{}\n\n", plan.GoName, plan.GoName)
}

func writeConstructor(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// New%s returns a %s with every field at its proto3 default.\n", plan.GoName, plan.GoName)
	fmt.Fprintf(body, "func New%s() *%s {\n\tv := Default%s\n\treturn &v\n}\n\n", plan.GoName, plan.GoName, plan.GoName)
}

// writeAccessors renders spec.md's presence-aware convenience accessors:
// Has<X> for MESSAGE and Optional fields, <X>OrElse for a caller-supplied
// fallback, and one branch predicate per OneOf member.
func writeAccessors(body *strings.Builder, plan *MessagePlan) {
	for _, f := range plan.PlainFields {
		if f.IsMessage {
			fmt.Fprintf(body, "func (m *%s) Has%s() bool { return m.%s != nil }\n\n", plan.GoName, f.GoName, f.GoName)
			fmt.Fprintf(body, "func (m *%s) %sOrElse(fallback %s) %s {\n\tif m.%s != nil {\n\t\treturn m.%s\n\t}\n\treturn fallback\n}\n\n",
				plan.GoName, f.GoName, f.GoType, f.GoType, f.GoName, f.GoName)
			fmt.Fprintf(body, "func (m *%s) %sOrThrow() %s {\n\tif m.%s == nil {\n\t\tpanic(\"%s.%s: field not present\")\n\t}\n\treturn m.%s\n}\n\n",
				plan.GoName, f.GoName, f.GoType, f.GoName, plan.GoName, f.GoName, f.GoName)
			fmt.Fprintf(body, "func (m *%s) If%s(consumer func(%s)) {\n\tif m.%s != nil {\n\t\tconsumer(m.%s)\n\t}\n}\n\n",
				plan.GoName, f.GoName, f.GoType, f.GoName, f.GoName)
			continue
		}
		if f.IsOptional {
			baseType := strings.TrimPrefix(f.GoType, "*")
			fmt.Fprintf(body, "func (m *%s) Has%s() bool { return m.%s != nil }\n\n", plan.GoName, f.GoName, f.GoName)
			fmt.Fprintf(body, "func (m *%s) %sOrElse(fallback %s) %s {\n\tif m.%s != nil {\n\t\treturn *m.%s\n\t}\n\treturn fallback\n}\n\n",
				plan.GoName, f.GoName, baseType, baseType, f.GoName, f.GoName)
		}
	}
	for _, oo := range plan.OneOfs {
		fieldName := GoFieldName(oo.OneOf.Name)
		for _, branch := range oo.Branches {
			fmt.Fprintf(body, "func (m *%s) Is%s() bool { return m.%sKind == %s_%s }\n\n",
				plan.GoName, branch.GoName, fieldName, oo.GoTypeName, branch.GoName)
			fmt.Fprintf(body, "// Get%s returns this branch's value if %s is the live OneOf member, the zero value otherwise.\n", branch.GoName, branch.GoName)
			fmt.Fprintf(body, "func (m *%s) Get%s() %s {\n\tif m.%sKind != %s_%s {\n\t\tvar zero %s\n\t\treturn zero\n\t}\n\treturn m.%s\n}\n\n",
				plan.GoName, branch.GoName, branch.GoType, fieldName, oo.GoTypeName, branch.GoName, branch.GoType, branch.GoName)
			fmt.Fprintf(body, "func (m *%s) %sOrElse(fallback %s) %s {\n\tif m.%sKind != %s_%s {\n\t\treturn fallback\n\t}\n\treturn m.%s\n}\n\n",
				plan.GoName, branch.GoName, branch.GoType, branch.GoType, fieldName, oo.GoTypeName, branch.GoName, branch.GoName)
			fmt.Fprintf(body, "func (m *%s) %sOrThrow() %s {\n\tif m.%sKind != %s_%s {\n\t\tpanic(\"%s.%s: OneOf branch %s not live\")\n\t}\n\treturn m.%s\n}\n\n",
				plan.GoName, branch.GoName, branch.GoType, fieldName, oo.GoTypeName, branch.GoName, plan.GoName, branch.GoName, branch.GoName, branch.GoName)
		}
	}
}

func writeEquals(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// Equals reports whether m and other carry the same field values.\n")
	fmt.Fprintf(body, "func (m *%s) Equals(other *%s) bool {\n", plan.GoName, plan.GoName)
	body.WriteString("\tif m == other {\n\t\treturn true\n\t}\n\tif m == nil || other == nil {\n\t\treturn false\n\t}\n")
	writtenKind := map[*schema.OneOf]bool{}
	for _, f := range plan.Fields {
		if f.IsOneOf && !writtenKind[f.Field.OneOf] {
			writtenKind[f.Field.OneOf] = true
			fieldName := GoFieldName(f.Field.OneOf.Name)
			fmt.Fprintf(body, "\tif m.%sKind != other.%sKind {\n\t\treturn false\n\t}\n", fieldName, fieldName)
		}
		writeFieldEquals(body, f, "m."+f.GoName, "other."+f.GoName)
	}
	body.WriteString("\treturn true\n}\n\n")
}

// writeFieldEquals emits one comparison for a field. Repeated fields need
// a multi-statement elementwise compare, not a single boolean expression,
// so this writes statements directly rather than returning text another
// caller wraps in "if !(...)". FLOAT and DOUBLE values compare by bit
// pattern, the same way wire.HashFloat32/HashFloat64 hash them.
func writeFieldEquals(body *strings.Builder, f *FieldPlan, a, b string) {
	bits := ""
	switch categoryOf(f.Field.Typez) {
	case catFloat32:
		bits = "wire.Float32ToBits"
	case catFloat64:
		bits = "wire.Float64ToBits"
	}
	switch {
	case f.IsRepeated && f.IsMessage:
		fmt.Fprintf(body, "\tif len(%s) != len(%s) {\n\t\treturn false\n\t}\n", a, b)
		fmt.Fprintf(body, "\tfor i := range %s {\n\t\tif !%s[i].Equals(%s[i]) {\n\t\t\treturn false\n\t\t}\n\t}\n", a, a, b)
	case f.IsRepeated && categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif !wire.EqualBytesSlice(%s, %s) {\n\t\treturn false\n\t}\n", a, b)
	case f.IsRepeated && bits != "":
		fmt.Fprintf(body, "\tif len(%s) != len(%s) {\n\t\treturn false\n\t}\n", a, b)
		fmt.Fprintf(body, "\tfor i := range %s {\n\t\tif %s(%s[i]) != %s(%s[i]) {\n\t\t\treturn false\n\t\t}\n\t}\n", a, bits, a, bits, b)
	case f.IsRepeated:
		fmt.Fprintf(body, "\tif !wire.EqualSlice(%s, %s) {\n\t\treturn false\n\t}\n", a, b)
	case f.IsMessage:
		fmt.Fprintf(body, "\tif !%s.Equals(%s) {\n\t\treturn false\n\t}\n", a, b)
	case f.IsOptional && categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif !wire.EqualOptionalBytes(%s, %s) {\n\t\treturn false\n\t}\n", a, b)
	case f.IsOptional && bits != "":
		fmt.Fprintf(body, "\tif (%s == nil) != (%s == nil) || %s != nil && %s(*%s) != %s(*%s) {\n\t\treturn false\n\t}\n", a, b, a, bits, a, bits, b)
	case f.IsOptional:
		fmt.Fprintf(body, "\tif !wire.EqualOptional(%s, %s) {\n\t\treturn false\n\t}\n", a, b)
	case categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif !wire.EqualOptionalBytes(&%s, &%s) {\n\t\treturn false\n\t}\n", a, b)
	case bits != "":
		fmt.Fprintf(body, "\tif %s(%s) != %s(%s) {\n\t\treturn false\n\t}\n", bits, a, bits, b)
	default:
		fmt.Fprintf(body, "\tif %s != %s {\n\t\treturn false\n\t}\n", a, b)
	}
}

func writeHashCode(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// HashCode computes a structural hash of m using the same\n")
	fmt.Fprintf(body, "// avalanche-mixed polynomial accumulation every Model shares\n")
	fmt.Fprintf(body, "// (see the wire package), so two Equals values always hash equal.\n")
	fmt.Fprintf(body, "func (m *%s) HashCode() int64 {\n\tif m == nil {\n\t\treturn 0\n\t}\n\tvar h int64 = 1\n", plan.GoName)
	for _, f := range plan.Fields {
		writeFieldHash(body, f, "m."+f.GoName)
	}
	body.WriteString("\treturn int64(wire.AvalancheMix(uint64(h)))\n}\n\n")
}

// writeFieldHash emits the statement(s) that mix one field's contribution
// into the running accumulator h.
func writeFieldHash(body *strings.Builder, f *FieldPlan, ref string) {
	switch {
	case f.IsRepeated:
		fmt.Fprintf(body, "\t{\n\t\tvar eh int64 = 1\n\t\tfor _, v := range %s {\n\t\t\teh = wire.MixScalar(eh, %s)\n\t\t}\n\t\th = wire.MixScalar(h, eh)\n\t}\n", ref, elementHashExpr(f, "v"))
	case f.IsMessage:
		fmt.Fprintf(body, "\th = wire.MixScalar(h, %s.HashCode())\n", ref)
	case f.IsOptional && categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif %s != nil {\n\t\th = wire.MixScalar(h, wire.HashBytes(*%s))\n\t} else {\n\t\th = wire.MixScalar(h, 0)\n\t}\n", ref, ref)
	case f.IsOptional:
		fmt.Fprintf(body, "\tif %s != nil {\n\t\th = wire.MixScalar(h, %s)\n\t} else {\n\t\th = wire.MixScalar(h, 0)\n\t}\n", ref, scalarHashExpr(f, "*"+ref))
	default:
		fmt.Fprintf(body, "\th = wire.MixScalar(h, %s)\n", scalarHashExpr(f, ref))
	}
}

// elementHashExpr is scalarHashExpr's repeated-field counterpart: ref
// names the loop variable rather than the field itself.
func elementHashExpr(f *FieldPlan, ref string) string {
	if f.IsMessage {
		return ref + ".HashCode()"
	}
	if f.IsEnum {
		return "int64(" + ref + ")"
	}
	return scalarHashExprCategory(categoryOf(f.Field.Typez), ref)
}

// scalarHashExpr computes a non-repeated, non-message field's hash
// contribution expression given its wire category.
func scalarHashExpr(f *FieldPlan, ref string) string {
	if f.IsEnum {
		return "int64(" + ref + ")"
	}
	return scalarHashExprCategory(categoryOf(f.Field.Typez), ref)
}

func scalarHashExprCategory(cat wireCategory, ref string) string {
	switch cat {
	case catFloat32:
		return "wire.HashFloat32(" + ref + ")"
	case catFloat64:
		return "wire.HashFloat64(" + ref + ")"
	case catBool:
		return "wire.HashBool(" + ref + ")"
	case catString:
		return "wire.HashString(" + ref + ")"
	case catBytes:
		return "wire.HashBytes(" + ref + ")"
	default:
		return "int64(" + ref + ")"
	}
}

// writeBuilder renders a nested Builder following the teacher's
// fluent-setter convention for generated client request types
// (internal/golang/golang.go's builder template), adapted to set every
// exported Model field and a CopyBuilder() that seeds a Builder from an
// existing value for incremental edits.
func writeBuilder(body *strings.Builder, plan *MessagePlan) {
	builderName := plan.GoName + "Builder"
	fmt.Fprintf(body, "// %s incrementally constructs a %s.\n", builderName, plan.GoName)
	fmt.Fprintf(body, "type %s struct {\n\tv %s\n}\n\n", builderName, plan.GoName)
	fmt.Fprintf(body, "// New%s starts a fresh builder at the proto3 zero value.\n", builderName)
	fmt.Fprintf(body, "func New%s() *%s {\n\treturn &%s{v: Default%s}\n}\n\n", builderName, builderName, builderName, plan.GoName)
	fmt.Fprintf(body, "// CopyBuilder seeds a %s from m's current field values.\n", builderName)
	fmt.Fprintf(body, "func (m *%s) CopyBuilder() *%s {\n\tv := *m\n\treturn &%s{v: v}\n}\n\n", plan.GoName, builderName, builderName)

	writtenKind := map[*schema.OneOf]bool{}
	for _, f := range plan.PlainFields {
		fmt.Fprintf(body, "func (b *%s) Set%s(v %s) *%s {\n\tb.v.%s = v\n\treturn b\n}\n\n",
			builderName, f.GoName, f.GoType, builderName, f.GoName)
	}
	for _, oo := range plan.OneOfs {
		fieldName := GoFieldName(oo.OneOf.Name)
		for _, branch := range oo.Branches {
			if !writtenKind[branch.Field.OneOf] {
				writtenKind[branch.Field.OneOf] = true
			}
			fmt.Fprintf(body, "func (b *%s) Set%s(v %s) *%s {\n\tb.v.%sKind = %s_%s\n\tb.v.%s = v\n\treturn b\n}\n\n",
				builderName, branch.GoName, branch.GoType, builderName, fieldName, oo.GoTypeName, branch.GoName, branch.GoName)
		}
	}
	fmt.Fprintf(body, "// Build returns the constructed %s.\n", plan.GoName)
	fmt.Fprintf(body, "func (b *%s) Build() *%s {\n\tv := b.v\n\treturn &v\n}\n\n", builderName, plan.GoName)
}

// writeCodecRefs emits spec.md §4.4.1's static references to %s's PROTOBUF
// codec by fully qualified name: the Parser/Writer pair the Parser and
// Writer Emitters generate for this same message. These are named, not
// held as a live *lookup.Class or import, because the Parser and Writer
// packages both import this Model package; referencing their types back
// from here would cycle. (There is no JSON codec counterpart: this
// compiler's Test Emitter round-trips only the PROTOBUF wire format, so
// a JSON codec reference has nothing generated to name — see DESIGN.md.)
func writeCodecRefs(body *strings.Builder, plan *MessagePlan, st *lookup.SymbolTable, m *schema.Message) {
	fmt.Fprintf(body, "// ProtobufCodec names %s's generated protobuf wire-format codec\n", plan.GoName)
	fmt.Fprintf(body, "// (its Parser and Writer artifacts) by fully qualified name.\n")
	fmt.Fprintf(body, "var ProtobufCodec = struct {\n\tParser string\n\tWriter string\n}{\n\tParser: %q,\n\tWriter: %q,\n}\n\n",
		st.FullyQualifiedMessageClassname(lookup.KindParser, m),
		st.FullyQualifiedMessageClassname(lookup.KindWriter, m))
}
