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
	"sort"
	"strings"

	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/schema"
)

// fieldsByNumber returns a copy of fields sorted by field number, used by
// the Writer Emitter to serialize in the ascending field-number order
// spec.md §4.4.3 requires regardless of declaration order in the source.
func fieldsByNumber(fields []*FieldPlan) []*FieldPlan {
	out := append([]*FieldPlan(nil), fields...)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// EmitWriter renders the Writer Emitter's output for m: a type that
// serializes a Model value back into the standard protobuf wire format
// (spec.md §4.4.3), eliding default-valued singular scalar fields, packing
// repeated scalars, and writing every OneOf branch and explicit-presence
// optional unconditionally once set. Grounded the same way as
// internal/emit/parser.go: the teacher hands request marshaling off to
// google.golang.org/protobuf, so this Emitter's actual field-by-field
// write logic is this compiler's own concern, built in the teacher's
// generated-code style (one small type per concern, doc comment per
// exported method) against this module's own wire runtime.
func EmitWriter(st *lookup.SymbolTable, model *schema.Model, m *schema.Message) (*EmittedFile, error) {
	plan := BuildMessagePlan(st, model, lookup.KindWriter, m)

	var body strings.Builder
	fmt.Fprintf(&body, "// %s encodes a %s to the standard protobuf wire format.\n", plan.ArtifactName, plan.ModelRef)
	fmt.Fprintf(&body, "type %s struct{}\n\n", plan.ArtifactName)
	writeMeasureMethod(&body, plan)
	writeWriteMethod(&body, plan)
	writeWriteToBytesMethod(&body, plan)

	imports := withWireImport(plan.Imports)
	skeleton := newSkeleton("", plan.PackageName, imports, body.String())
	source, err := renderFile("file.go.mustache", skeleton)
	if err != nil {
		return nil, fmt.Errorf("emit writer %s: %w", m.ID, err)
	}
	return &EmittedFile{
		ImportPath: GoImportPath(st.PackageForMessage(lookup.KindWriter, m)),
		FileName:   strings.ToLower(plan.ArtifactName) + ".go",
		Source:     source,
	}, nil
}

func writeMeasureMethod(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// Measure returns the number of bytes Write would emit for value, without\n")
	fmt.Fprintf(body, "// writing anything; callers use it to size a buffer up front.\n")
	fmt.Fprintf(body, "func (w %s) Measure(value *%s) int64 {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tif value == nil {\n\t\treturn 0\n\t}\n\tvar n int64\n")
	for _, f := range plan.Fields {
		writeFieldMeasure(body, plan, f)
	}
	body.WriteString("\treturn n\n}\n\n")
}

// oneOfGuard returns the Go boolean expression testing whether f's OneOf
// group currently has f as its live branch, qualified for plan's own
// package. Empty when f is not a OneOf member.
func oneOfGuard(plan *MessagePlan, f *FieldPlan) string {
	if !f.IsOneOf {
		return ""
	}
	var oop *OneOfPlan
	for _, candidate := range plan.OneOfs {
		if candidate.OneOf == f.Field.OneOf {
			oop = candidate
			break
		}
	}
	if oop == nil {
		return ""
	}
	fieldName := GoFieldName(f.Field.OneOf.Name)
	return fmt.Sprintf("value.%sKind == %s%s_%s", fieldName, modelRefPrefix(plan), oop.GoTypeName, f.GoName)
}

func writeFieldMeasure(body *strings.Builder, plan *MessagePlan, f *FieldPlan) {
	ref := "value." + f.GoName
	tagVar := fmt.Sprintf("wire.MakeTag(%d, %s)", f.Number, wireTypeToken(f))
	if guard := oneOfGuard(plan, f); guard != "" {
		fmt.Fprintf(body, "\tif %s {\n", guard)
		if f.IsMessage {
			fmt.Fprintf(body, "\t\tmsgN := (%s{}).Measure(%s)\n", f.WriterRef, ref)
			fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(msgN)) + msgN\n", tagVar)
		} else if f.IsOptional {
			innerRef := "(*" + ref + ")"
			if categoryOf(f.Field.Typez) == catString {
				fmt.Fprintf(body, "\t\telemN := wire.EncodedLength(%s)\n", innerRef)
				fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
			} else if categoryOf(f.Field.Typez) == catBytes {
				fmt.Fprintf(body, "\t\telemN := int64(len(%s))\n", innerRef)
				fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
			} else {
				fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + %s\n", tagVar, elemSizeExpr(f, innerRef))
			}
		} else if categoryOf(f.Field.Typez) == catString {
			fmt.Fprintf(body, "\t\telemN := wire.EncodedLength(%s)\n", ref)
			fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		} else if categoryOf(f.Field.Typez) == catBytes {
			fmt.Fprintf(body, "\t\telemN := int64(len(%s))\n", ref)
			fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		} else {
			fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + %s\n", tagVar, elemSizeExpr(f, ref))
		}
		body.WriteString("\t}\n")
		return
	}
	switch {
	case f.IsRepeated && (f.IsMessage || categoryOf(f.Field.Typez) == catString || categoryOf(f.Field.Typez) == catBytes):
		fmt.Fprintf(body, "\tfor _, elem := range %s {\n", ref)
		fmt.Fprintf(body, "\t\t%s\n", elemLenStmt(f, "elem", "elemN"))
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		body.WriteString("\t}\n")
	case f.IsRepeated:
		fmt.Fprintf(body, "\tif len(%s) > 0 {\n", ref)
		body.WriteString("\t\tvar payload int64\n")
		fmt.Fprintf(body, "\t\tfor _, elem := range %s {\n", ref)
		fmt.Fprintf(body, "\t\t\tpayload += %s\n", elemSizeExpr(f, "elem"))
		body.WriteString("\t\t}\n")
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(payload)) + payload\n", tagVar)
		body.WriteString("\t}\n")
	case f.IsMessage:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		fmt.Fprintf(body, "\t\tmsgN := (%s{}).Measure(%s)\n", f.WriterRef, ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(msgN)) + msgN\n", tagVar)
		body.WriteString("\t}\n")
	case f.IsOptional && categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		fmt.Fprintf(body, "\t\telemN := int64(len(*%s))\n", ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		body.WriteString("\t}\n")
	case f.IsOptional && categoryOf(f.Field.Typez) == catString:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		fmt.Fprintf(body, "\t\telemN := wire.EncodedLength(*%s)\n", ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		body.WriteString("\t}\n")
	case f.IsOptional:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + %s\n", tagVar, elemSizeExpr(f, "(*"+ref+")"))
		body.WriteString("\t}\n")
	case categoryOf(f.Field.Typez) == catString:
		fmt.Fprintf(body, "\tif %s != %s {\n", ref, f.ZeroLit)
		fmt.Fprintf(body, "\t\telemN := wire.EncodedLength(%s)\n", ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		body.WriteString("\t}\n")
	case categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif len(%s) != 0 {\n", ref)
		fmt.Fprintf(body, "\t\telemN := int64(len(%s))\n", ref)
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + wire.SizeVarint(uint64(elemN)) + elemN\n", tagVar)
		body.WriteString("\t}\n")
	default:
		fmt.Fprintf(body, "\tif %s != %s {\n", ref, zeroComparable(f))
		fmt.Fprintf(body, "\t\tn += wire.SizeVarint(%s) + %s\n", tagVar, elemSizeExpr(f, ref))
		body.WriteString("\t}\n")
	}
}

// zeroComparable returns the expression f's value must differ from to be
// written: the enum/scalar zero literal, cast to the enum's own type when
// needed so the comparison type-checks.
func zeroComparable(f *FieldPlan) string {
	if f.IsEnum {
		return f.EnumGoType + "(0)"
	}
	return f.ZeroLit
}

// elemLenStmt emits the statement(s) computing nVar, the encoded byte
// length of one string/bytes/message repeated element.
func elemLenStmt(f *FieldPlan, elemRef, nVar string) string {
	if f.IsMessage {
		return fmt.Sprintf("%s := (%s{}).Measure(%s)", nVar, f.WriterRef, elemRef)
	}
	if categoryOf(f.Field.Typez) == catString {
		return fmt.Sprintf("%s := wire.EncodedLength(%s)", nVar, elemRef)
	}
	return fmt.Sprintf("%s := int64(len(%s))", nVar, elemRef)
}

// elemSizeExpr returns a Go expression computing the wire size of one
// scalar/enum value (excluding its tag) for a packed-repeated payload, an
// optional pointer's pointee, or a non-default singular scalar.
func elemSizeExpr(f *FieldPlan, ref string) string {
	switch categoryOf(f.Field.Typez) {
	case catZigZag:
		if f.Field.Typez == schema.SINT32_TYPE {
			return fmt.Sprintf("wire.SizeVarint(uint64(wire.EncodeZigZag32(%s)))", ref)
		}
		return fmt.Sprintf("wire.SizeVarint(wire.EncodeZigZag64(%s))", ref)
	case catFixed32, catFloat32:
		return "4"
	case catFixed64, catFloat64:
		return "8"
	case catBool:
		return "1"
	case catEnum:
		return fmt.Sprintf("wire.SizeVarint(uint64(int32(%s)))", ref)
	default: // catVarint
		return fmt.Sprintf("wire.SizeVarint(uint64(%s))", ref)
	}
}

func wireTypeToken(f *FieldPlan) string {
	cat := categoryOf(f.Field.Typez)
	if f.IsMessage || cat == catString || cat == catBytes {
		return "wire.WireLengthDelimited"
	}
	if f.IsRepeated {
		// Packed repeated scalars/enums are always length-delimited; a
		// non-repeated field of the same category uses its own wire type.
		return "wire.WireLengthDelimited"
	}
	switch cat {
	case catFixed32, catFloat32:
		return "wire.WireFixed32"
	case catFixed64, catFloat64:
		return "wire.WireFixed64"
	default:
		return "wire.WireVarint"
	}
}

func writeWriteMethod(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// Write encodes value to dst in ascending field-number order, skipping\n")
	fmt.Fprintf(body, "// every singular scalar field still at its proto3 default.\n")
	fmt.Fprintf(body, "func (w %s) Write(value *%s, dst wire.WritableSequentialData) error {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tif value == nil {\n\t\treturn nil\n\t}\n")
	for _, f := range fieldsByNumber(plan.Fields) {
		writeFieldWrite(body, plan, f)
	}
	body.WriteString("\treturn nil\n}\n\n")
}

func writeFieldWrite(body *strings.Builder, plan *MessagePlan, f *FieldPlan) {
	ref := "value." + f.GoName
	tagVar := fmt.Sprintf("wire.MakeTag(%d, %s)", f.Number, wireTypeToken(f))
	if guard := oneOfGuard(plan, f); guard != "" {
		fmt.Fprintf(body, "\tif %s {\n", guard)
		if f.IsMessage {
			writeLenPrefixedPayload(body, f, ref, tagVar, "\t\t")
		} else if f.IsOptional {
			innerRef := "(*" + ref + ")"
			if categoryOf(f.Field.Typez) == catBytes || categoryOf(f.Field.Typez) == catString {
				writeLenPrefixedPayload(body, f, innerRef, tagVar, "\t\t")
			} else {
				fmt.Fprintf(body, "\t\tif err := dst.WriteVarint(%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tagVar)
				writeScalarValue(body, f, innerRef, "\t\t")
			}
		} else if categoryOf(f.Field.Typez) == catString || categoryOf(f.Field.Typez) == catBytes {
			writeLenPrefixedPayload(body, f, ref, tagVar, "\t\t")
		} else {
			fmt.Fprintf(body, "\t\tif err := dst.WriteVarint(%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tagVar)
			writeScalarValue(body, f, ref, "\t\t")
		}
		body.WriteString("\t}\n")
		return
	}
	switch {
	case f.IsRepeated && (f.IsMessage || categoryOf(f.Field.Typez) == catString || categoryOf(f.Field.Typez) == catBytes):
		fmt.Fprintf(body, "\tfor _, elem := range %s {\n", ref)
		writeLenPrefixedPayload(body, f, "elem", tagVar, "\t\t")
		body.WriteString("\t}\n")
	case f.IsRepeated:
		fmt.Fprintf(body, "\tif len(%s) > 0 {\n", ref)
		body.WriteString("\t\tvar payload int64\n")
		fmt.Fprintf(body, "\t\tfor _, elem := range %s {\n", ref)
		fmt.Fprintf(body, "\t\t\tpayload += %s\n", elemSizeExpr(f, "elem"))
		body.WriteString("\t\t}\n")
		fmt.Fprintf(body, "\t\tif err := dst.WriteVarint(%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tagVar)
		body.WriteString("\t\tif err := dst.WriteVarint(uint64(payload)); err != nil {\n\t\t\treturn err\n\t\t}\n")
		fmt.Fprintf(body, "\t\tfor _, elem := range %s {\n", ref)
		writeScalarValue(body, f, "elem", "\t\t\t")
		body.WriteString("\t\t}\n\t}\n")
	case f.IsMessage:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		writeLenPrefixedPayload(body, f, ref, tagVar, "\t\t")
		body.WriteString("\t}\n")
	case f.IsOptional:
		fmt.Fprintf(body, "\tif %s != nil {\n", ref)
		if categoryOf(f.Field.Typez) == catBytes || categoryOf(f.Field.Typez) == catString {
			writeLenPrefixedPayload(body, f, "(*"+ref+")", tagVar, "\t\t")
		} else {
			fmt.Fprintf(body, "\t\tif err := dst.WriteVarint(%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tagVar)
			writeScalarValue(body, f, "(*"+ref+")", "\t\t")
		}
		body.WriteString("\t}\n")
	case categoryOf(f.Field.Typez) == catString || categoryOf(f.Field.Typez) == catBytes:
		fmt.Fprintf(body, "\tif len(%s) != 0 {\n", ref)
		writeLenPrefixedPayload(body, f, ref, tagVar, "\t\t")
		body.WriteString("\t}\n")
	default:
		fmt.Fprintf(body, "\tif %s != %s {\n", ref, zeroComparable(f))
		fmt.Fprintf(body, "\t\tif err := dst.WriteVarint(%s); err != nil {\n\t\t\treturn err\n\t\t}\n", tagVar)
		writeScalarValue(body, f, ref, "\t\t")
		body.WriteString("\t}\n")
	}
}

// writeLenPrefixedPayload emits the tag, a varint length prefix, and the
// payload itself for one MESSAGE, STRING, or BYTES value.
func writeLenPrefixedPayload(body *strings.Builder, f *FieldPlan, ref, tagVar, indent string) {
	fmt.Fprintf(body, "%sif err := dst.WriteVarint(%s); err != nil {\n%s\treturn err\n%s}\n", indent, tagVar, indent, indent)
	if f.IsMessage {
		fmt.Fprintf(body, "%smsgN := (%s{}).Measure(%s)\n", indent, f.WriterRef, ref)
		fmt.Fprintf(body, "%sif err := dst.WriteVarint(uint64(msgN)); err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
		fmt.Fprintf(body, "%sif err := (%s{}).Write(%s, dst); err != nil {\n%s\treturn err\n%s}\n", indent, f.WriterRef, ref, indent, indent)
		return
	}
	if categoryOf(f.Field.Typez) == catString {
		fmt.Fprintf(body, "%sif err := dst.WriteVarint(uint64(wire.EncodedLength(%s))); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
		fmt.Fprintf(body, "%sif err := dst.WriteUTF8(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
		return
	}
	fmt.Fprintf(body, "%sif err := dst.WriteVarint(uint64(len(%s))); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	fmt.Fprintf(body, "%sif _, err := dst.WriteBytes(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
}

// writeScalarValue emits the statement writing one scalar/enum value
// (excluding its tag) to dst.
func writeScalarValue(body *strings.Builder, f *FieldPlan, ref, indent string) {
	switch categoryOf(f.Field.Typez) {
	case catZigZag:
		if f.Field.Typez == schema.SINT32_TYPE {
			fmt.Fprintf(body, "%sif err := dst.WriteZigZag32(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
		} else {
			fmt.Fprintf(body, "%sif err := dst.WriteZigZag64(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
		}
	case catFixed32:
		fmt.Fprintf(body, "%sif err := dst.WriteFixed32(uint32(%s)); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	case catFixed64:
		fmt.Fprintf(body, "%sif err := dst.WriteFixed64(uint64(%s)); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	case catFloat32:
		fmt.Fprintf(body, "%sif err := dst.WriteFloat(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	case catFloat64:
		fmt.Fprintf(body, "%sif err := dst.WriteDouble(%s); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	case catBool:
		fmt.Fprintf(body, "%svb := uint64(0)\n%sif %s {\n%s\tvb = 1\n%s}\n", indent, indent, ref, indent, indent)
		fmt.Fprintf(body, "%sif err := dst.WriteVarint(vb); err != nil {\n%s\treturn err\n%s}\n", indent, indent, indent)
	case catEnum:
		fmt.Fprintf(body, "%sif err := dst.WriteVarint(uint64(int32(%s))); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	default: // catVarint
		fmt.Fprintf(body, "%sif err := dst.WriteVarint(uint64(%s)); err != nil {\n%s\treturn err\n%s}\n", indent, ref, indent, indent)
	}
}

func writeWriteToBytesMethod(body *strings.Builder, plan *MessagePlan) {
	fmt.Fprintf(body, "// WriteToBytes encodes value into a freshly allocated wire.Bytes.\n")
	fmt.Fprintf(body, "func (w %s) WriteToBytes(value *%s) (wire.Bytes, error) {\n", plan.ArtifactName, plan.ModelRef)
	body.WriteString("\tbuf := wire.Allocate(w.Measure(value))\n")
	body.WriteString("\tif err := w.Write(value, buf); err != nil {\n\t\treturn wire.EmptyBytes, err\n\t}\n")
	body.WriteString("\tbuf.Flip()\n\treturn buf.Bytes(), nil\n}\n\n")
}
