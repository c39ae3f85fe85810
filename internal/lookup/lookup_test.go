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

package lookup

import (
	"errors"
	"testing"

	"github.com/wireforge/protoforge/internal/parser"
	"github.com/wireforge/protoforge/internal/schema"
)

func buildModel(t *testing.T, path, src string) *schema.Model {
	t.Helper()
	tree, err := parser.Parse(path, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := schema.Build([]*parser.ParseTree{tree})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return model
}

var namespaces = Namespaces{
	Model:  "example.model",
	Parser: "example.parser",
	Writer: "example.writer",
	Test:   "example.test",
}

func TestBuild_PackageAndClassNames(t *testing.T) {
	model := buildModel(t, "payments/invoice.proto", `
syntax = "proto3";
package payments.v1;
message Invoice {
  int32 id = 1;
  message LineItem { string sku = 1; }
  LineItem first_item = 2;
}
`)
	st, err := Build(model, namespaces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	invoice := model.MessageByID[".payments.v1.Invoice"]
	if invoice == nil {
		t.Fatal("Invoice not found in model")
	}
	if got := st.getModelPackage("payments"); got != "example.model.payments" {
		t.Errorf("getModelPackage = %q", got)
	}
	if got := st.UnqualifiedClassForMessage(KindModel, invoice); got != "Invoice" {
		t.Errorf("UnqualifiedClassForMessage = %q", got)
	}
	if got := st.UnqualifiedClassForMessage(KindParser, invoice); got != "InvoiceParser" {
		t.Errorf("UnqualifiedClassForMessage(parser) = %q", got)
	}

	lineItem := model.MessageByID[".payments.v1.Invoice.LineItem"]
	if lineItem == nil {
		t.Fatal("LineItem not found in model")
	}
	if got := st.UnqualifiedClassForMessage(KindModel, lineItem); got != "Invoice_LineItem" {
		t.Errorf("nested UnqualifiedClassForMessage = %q", got)
	}
	if got := st.FullyQualifiedMessageClassname(KindModel, invoice); got != "example.model.payments.Invoice" {
		t.Errorf("FullyQualifiedMessageClassname = %q", got)
	}
}

func TestBuild_UnresolvedReference(t *testing.T) {
	model := buildModel(t, "payments/invoice.proto", `
syntax = "proto3";
package payments.v1;
message Invoice {
  Nonexistent ref = 1;
}
`)
	_, err := Build(model, namespaces)
	if err == nil {
		t.Fatal("expected UnresolvedReference")
	}
	var unresolved *UnresolvedReference
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %v, want *UnresolvedReference", err)
	}
}

func TestImportSet_SortedAndExcludesOwnPackage(t *testing.T) {
	invoiceTree, err := parser.Parse("payments/invoice.proto", `
syntax = "proto3";
package payments.v1;
message Invoice {
  .common.v1.Address billing = 1;
  .common.v1.Address shipping = 2;
  LineItem item = 3;
}
message LineItem {
  string sku = 1;
}
`)
	if err != nil {
		t.Fatalf("Parse invoice: %v", err)
	}
	addressTree, err := parser.Parse("common/address.proto", `
syntax = "proto3";
package common.v1;
message Address {
  string line1 = 1;
}
`)
	if err != nil {
		t.Fatalf("Parse address: %v", err)
	}
	model, err := schema.Build([]*parser.ParseTree{invoiceTree, addressTree})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	st, err := Build(model, namespaces)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	invoice := model.MessageByID[".payments.v1.Invoice"]
	imports, err := st.ImportSet(KindModel, invoice)
	if err != nil {
		t.Fatalf("ImportSet: %v", err)
	}
	if len(imports) != 1 || imports[0] != "example.model.common" {
		t.Errorf("ImportSet = %v, want [example.model.common] (own package's LineItem excluded)", imports)
	}
}
