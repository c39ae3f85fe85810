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

// EmitParser renders the Parser Emitter's output for m: a type that reads
// the standard protobuf wire format (spec.md §4.4.2) off a
// wire.ReadableSequentialData cursor and assembles the result through the
// Model's Builder. Grounded on the teacher's generated-client decode path
// (internal/golang/golang.go's request/response unmarshal), adapted from
// protobuf-wire-on-the-wire decoding (this compiler's own concern — the
// teacher always hands decoding off to google.golang.org/protobuf for its
// generated Go clients) to hand-rolled tag dispatch against this module's
// runtime (wire package).
func EmitParser(st *lookup.SymbolTable, model *schema.Model, m *schema.Message) (*EmittedFile, error) {
	plan := BuildMessagePlan(st, model, lookup.KindParser, m)

	var body strings.Builder
	writeParserDoc(&body, plan)
	fmt.Fprintf(&body, "type %s struct{}\n\n", plan.ArtifactName)
	writeParseMethod(&body, plan)
	writeParseFromMethod(&body, plan)

	imports := withWireImport(plan.Imports)
	skeleton := newSkeleton("", plan.PackageName, imports, body.String())
	source, err := renderFile("file.go.mustache", skeleton)
	if err != nil {
		return nil, fmt.Errorf("emit parser %s: %w", m.ID, err)
	}
	return &EmittedFile{
		ImportPath: GoImportPath(st.PackageForMessage(lookup.KindParser, m)),
		FileName:   strings.ToLower(plan.ArtifactName) + ".go",
		Source:     source,
	}, nil
}

// modelRefPrefix returns the package qualifier (e.g. "payments.") that
// must prefix a call to one of the Model package's exported
// package-level functions (New<Name>Builder, etc) from a non-Model
// artifact file; empty when the plan's own package already is the
// Model package.
func modelRefPrefix(plan *MessagePlan) string {
	return strings.TrimSuffix(plan.ModelRef, plan.GoName)
}

func writeParserDoc(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// %s decodes the standard protobuf wire format into a %s.\n", plan.ArtifactName, plan.ModelRef)
}

func writeParseMethod(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// Parse decodes data in full into a %s.\n", plan.ModelRef)
	fmt.Fprintf(body, "func (p %s) Parse(data wire.Bytes) (*%s, error) {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tr := wire.WrapForReading(data.Bytes())\n")
	body.WriteString("\treturn p.ParseFrom(r, r.Capacity())\n}\n\n")
}

func writeParseFromMethod(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// ParseFrom decodes length bytes from r, starting at r's current\n")
	fmt.Fprintf(body, "// position, into a %s. Unknown fields are skipped per their wire type.\n", plan.ModelRef)
	fmt.Fprintf(body, "func (p %s) ParseFrom(r wire.ReadableSequentialData, length int64) (*%s, error) {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tend := r.Position() + length\n")
	body.WriteString("\toldLimit := r.Limit()\n")
	body.WriteString("\tif err := r.SetLimit(end); err != nil {\n\t\treturn nil, err\n\t}\n")
	body.WriteString("\tdefer r.SetLimit(oldLimit)\n\n")
	fmt.Fprintf(body, "\tb := %sNew%sBuilder()\n", modelRefPrefix(plan), plan.GoName)

	for _, f := range plan.Fields {
		if f.IsRepeated {
			fmt.Fprintf(body, "\tvar rep%s %s\n", f.GoName, f.GoType)
		}
	}
	body.WriteString("\n\tfor r.Position() < end {\n")
	body.WriteString("\t\ttag, err := r.ReadVarint()\n\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
	body.WriteString("\t\tfieldNumber, wt := wire.SplitTag(tag)\n")
	body.WriteString("\t\tswitch fieldNumber {\n")
	for _, f := range plan.Fields {
		fmt.Fprintf(body, "\t\tcase %d:\n", f.Number)
		writeFieldDecodeCase(body, f)
	}
	body.WriteString("\t\tdefault:\n\t\t\tif err := wire.SkipField(r, wt); err != nil {\n\t\t\t\treturn nil, err\n\t\t\t}\n")
	body.WriteString("\t\t}\n\t}\n\n")

	for _, f := range plan.Fields {
		if f.IsRepeated {
			fmt.Fprintf(body, "\tb.Set%s(rep%s)\n", f.GoName, f.GoName)
		}
	}
	body.WriteString("\treturn b.Build(), nil\n}\n\n")
}

// writeFieldDecodeCase emits the body of one field-number switch case:
// read the value(s) per the field's wire category, then either append to
// its accumulator (repeated) or set it directly on the builder.
func writeFieldDecodeCase(body *strings.Builder, f *FieldPlan) {
	cat := categoryOf(f.Field.Typez)
	switch {
	case f.IsRepeated && (f.IsMessage || cat == catString || cat == catBytes):
		writeSingleDecode(body, f, cat, "\t\t\t", fmt.Sprintf("rep%s = append(rep%s, %%s)", f.GoName, f.GoName))
	case f.IsRepeated:
		// Packable scalar/enum: proto3 writers emit these packed by
		// default, but a conforming reader accepts the legacy unpacked
		// form too (one element per tag occurrence), so dispatch on the
		// wire type actually observed.
		fmt.Fprintf(body, "\t\t\tif wt == wire.WireLengthDelimited {\n")
		fmt.Fprintf(body, "\t\t\t\tn, err := r.ReadVarint()\n\t\t\t\tif err != nil {\n\t\t\t\t\treturn nil, err\n\t\t\t\t}\n")
		fmt.Fprintf(body, "\t\t\t\tpackedEnd := r.Position() + int64(n)\n")
		fmt.Fprintf(body, "\t\t\t\tfor r.Position() < packedEnd {\n")
		writeSingleDecode(body, f, cat, "\t\t\t\t\t", fmt.Sprintf("rep%s = append(rep%s, %%s)", f.GoName, f.GoName))
		fmt.Fprintf(body, "\t\t\t\t}\n\t\t\t} else {\n")
		writeSingleDecode(body, f, cat, "\t\t\t\t", fmt.Sprintf("rep%s = append(rep%s, %%s)", f.GoName, f.GoName))
		fmt.Fprintf(body, "\t\t\t}\n")
	case f.IsOptional:
		writeSingleDecode(body, f, cat, "\t\t\t", fmt.Sprintf("vv%s := %%s\n\t\t\tb.Set%s(&vv%s)", f.GoName, f.GoName, f.GoName))
	default:
		writeSingleDecode(body, f, cat, "\t\t\t", fmt.Sprintf("b.Set%s(%%s)", f.GoName))
	}
}

// writeSingleDecode emits the statements that read one element of f's
// wire category off r, then applies assignTemplate (a fmt-style template
// with one %s hole for the decoded Go expression) to consume it.
func writeSingleDecode(body *strings.Builder, f *FieldPlan, cat wireCategory, indent, assignTemplate string) {
	if f.IsMessage {
		fmt.Fprintf(body, "%sn, err := r.ReadVarint()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%snested, err := (%s{}).ParseFrom(r, int64(n))\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, f.ParserRef, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "nested")
		return
	}
	switch cat {
	case catVarint, catEnum:
		fmt.Fprintf(body, "%sv, err := r.ReadVarint()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, varintCastExpr(f, "v"))
	case catZigZag:
		fn, cast := zigZagFunc(f)
		fmt.Fprintf(body, "%sv, err := r.%s()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, fn, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, cast)
	case catFixed32:
		fmt.Fprintf(body, "%sv, err := r.ReadFixed32()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, fixed32CastExpr(f, "v"))
	case catFixed64:
		fmt.Fprintf(body, "%sv, err := r.ReadFixed64()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, fixed64CastExpr(f, "v"))
	case catFloat32:
		fmt.Fprintf(body, "%sv, err := r.ReadFloat()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "v")
	case catFloat64:
		fmt.Fprintf(body, "%sv, err := r.ReadDouble()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "v")
	case catBool:
		fmt.Fprintf(body, "%sv, err := r.ReadVarint()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "v != 0")
	case catString:
		fmt.Fprintf(body, "%sn, err := r.ReadVarint()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%ss, err := r.ReadUTF8(int64(n))\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "s")
	case catBytes:
		fmt.Fprintf(body, "%sn, err := r.ReadVarint()\n%sif err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%sbuf := make([]byte, n)\n%sif _, err := r.ReadBytes(buf); err != nil {\n%s\treturn nil, err\n%s}\n", indent, indent, indent, indent)
		fmt.Fprintf(body, "%s"+assignTemplate+"\n", indent, "buf")
	}
}

func varintCastExpr(f *FieldPlan, ref string) string {
	if f.IsEnum {
		return fmt.Sprintf("%s(int32(%s))", f.EnumGoType, ref)
	}
	switch GoScalarType(f.Field.Typez) {
	case "int32":
		return "int32(" + ref + ")"
	case "uint32":
		return "uint32(" + ref + ")"
	case "int64":
		return "int64(" + ref + ")"
	default:
		return ref
	}
}

func zigZagFunc(f *FieldPlan) (fn, cast string) {
	if f.Field.Typez == schema.SINT32_TYPE {
		return "ReadZigZag32", "v"
	}
	return "ReadZigZag64", "v"
}

func fixed32CastExpr(f *FieldPlan, ref string) string {
	if GoScalarType(f.Field.Typez) == "int32" {
		return "int32(" + ref + ")"
	}
	return ref
}

func fixed64CastExpr(f *FieldPlan, ref string) string {
	if GoScalarType(f.Field.Typez) == "int64" {
		return "int64(" + ref + ")"
	}
	return ref
}
