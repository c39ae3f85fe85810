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
	"strings"
	"testing"

	"github.com/wireforge/protoforge/internal/config"
	"github.com/wireforge/protoforge/internal/lookup"
	"github.com/wireforge/protoforge/internal/parser"
	"github.com/wireforge/protoforge/internal/schema"
)

var testNamespaces = lookup.Namespaces{
	Model:  "example.model",
	Parser: "example.parser",
	Writer: "example.writer",
	Test:   "example.test",
}

func buildPlan(t *testing.T, src string) (*lookup.SymbolTable, *schema.Model, *schema.Message) {
	t.Helper()
	tree, err := parser.Parse("payments/invoice.proto", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := schema.Build([]*parser.ParseTree{tree})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := schema.Validate(model); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	st, err := lookup.Build(model, testNamespaces)
	if err != nil {
		t.Fatalf("lookup.Build: %v", err)
	}
	invoice := model.MessageByID[".payments.v1.Invoice"]
	if invoice == nil {
		t.Fatal("Invoice not found")
	}
	return st, model, invoice
}

const invoiceProto = `
syntax = "proto3";
package payments.v1;

message Invoice {
  int32 id = 1;
  string customer_name = 2;
  repeated LineItem items = 3;
  optional string note = 4;
  Status status = 5;

  message LineItem {
    string sku = 1;
    int32 quantity = 2;
  }

  enum Status {
    UNKNOWN = 0;
    OPEN = 1;
    PAID = 2;
  }
}
`

func TestEmitModel(t *testing.T) {
	st, model, invoice := buildPlan(t, invoiceProto)
	ef, err := EmitModel(st, model, invoice)
	if err != nil {
		t.Fatalf("EmitModel: %v", err)
	}
	if ef.FileName != "invoice.go" {
		t.Errorf("FileName = %q, want invoice.go", ef.FileName)
	}
	if !strings.Contains(ef.ImportPath, "example/model/payments") {
		t.Errorf("ImportPath = %q, want it under example/model/payments", ef.ImportPath)
	}
	for _, want := range []string{"type Invoice struct", "func (m *Invoice) Equals(", "func (m *Invoice) HashCode("} {
		if !strings.Contains(ef.Source, want) {
			t.Errorf("model source missing %q:\n%s", want, ef.Source)
		}
	}
}

func TestEmitParser(t *testing.T) {
	st, model, invoice := buildPlan(t, invoiceProto)
	ef, err := EmitParser(st, model, invoice)
	if err != nil {
		t.Fatalf("EmitParser: %v", err)
	}
	if !strings.Contains(ef.Source, "InvoiceParser") {
		t.Errorf("parser source missing type name:\n%s", ef.Source)
	}
}

func TestEmitWriter(t *testing.T) {
	st, model, invoice := buildPlan(t, invoiceProto)
	ef, err := EmitWriter(st, model, invoice)
	if err != nil {
		t.Fatalf("EmitWriter: %v", err)
	}
	if !strings.Contains(ef.Source, "InvoiceWriter") {
		t.Errorf("writer source missing type name:\n%s", ef.Source)
	}
}

func TestEmitTest(t *testing.T) {
	st, model, invoice := buildPlan(t, invoiceProto)
	cfg := &config.Config{Testing: config.TestingConfig{AgainstReferenceEncoder: true}}
	ef, err := EmitTest(st, model, invoice, cfg)
	if err != nil {
		t.Fatalf("EmitTest: %v", err)
	}
	for _, want := range []string{"CreateTestArguments", "AssertRoundTrip", "diffcheck.Equal"} {
		if !strings.Contains(ef.Source, want) {
			t.Errorf("test source missing %q:\n%s", want, ef.Source)
		}
	}
}

func TestEmitEnum(t *testing.T) {
	st, model, invoice := buildPlan(t, invoiceProto)
	_ = model
	var statusEnum *schema.Enum
	for _, e := range invoice.Enums {
		if e.Name == "Status" {
			statusEnum = e
		}
	}
	if statusEnum == nil {
		t.Fatal("Status enum not found")
	}
	ef, err := EmitEnum(st, statusEnum)
	if err != nil {
		t.Fatalf("EmitEnum: %v", err)
	}
	for _, want := range []string{"type Status int32", "StatusValues()", `"OPEN"`} {
		if !strings.Contains(ef.Source, want) {
			t.Errorf("enum source missing %q:\n%s", want, ef.Source)
		}
	}
}

func TestEmitModel_OneOf(t *testing.T) {
	st, model, shape := buildPlanFor(t, `
syntax = "proto3";
package shapes.v1;
message Shape {
  oneof kind {
    int32 circle_radius = 1;
    string square_label = 2;
  }
}
`, ".shapes.v1.Shape")
	ef, err := EmitModel(st, model, shape)
	if err != nil {
		t.Fatalf("EmitModel: %v", err)
	}
	for _, want := range []string{"Shape_KindKind", "CircleRadius", "SquareLabel"} {
		if !strings.Contains(ef.Source, want) {
			t.Errorf("oneof model source missing %q:\n%s", want, ef.Source)
		}
	}
}

func buildPlanFor(t *testing.T, src, id string) (*lookup.SymbolTable, *schema.Model, *schema.Message) {
	t.Helper()
	tree, err := parser.Parse("shapes/shape.proto", src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := schema.Build([]*parser.ParseTree{tree})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	st, err := lookup.Build(model, testNamespaces)
	if err != nil {
		t.Fatalf("lookup.Build: %v", err)
	}
	m := model.MessageByID[id]
	if m == nil {
		t.Fatalf("%s not found", id)
	}
	return st, model, m
}
