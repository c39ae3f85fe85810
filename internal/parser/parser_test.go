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

package parser

import (
	"errors"
	"testing"
)

const sample = `
syntax = "proto3";

package payments.v1;

option java_package = "com.example.payments";

// Invoice describes a single billed amount.
message Invoice {
  int32 id = 1;
  string customer = 2 [deprecated = true];

  .google.protobuf.StringValue memo = 3;

  oneof status {
    bool paid = 4;
    string error_message = 5;
  }

  message LineItem {
    string sku = 1;
    int32 quantity = 2;
  }

  repeated LineItem items = 6;

  map<string, int32> metadata = 7;

  reserved 8, 9 to 11;
}

enum Currency {
  CURRENCY_UNSPECIFIED = 0;
  USD = 1;
  EUR = 2;
}
`

func TestParse_Sample(t *testing.T) {
	tree, err := Parse("invoice.proto", sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Syntax != "proto3" {
		t.Errorf("Syntax = %q, want proto3", tree.Syntax)
	}
	if tree.Package != "payments.v1" {
		t.Errorf("Package = %q, want payments.v1", tree.Package)
	}
	if tree.JavaPackage != "com.example.payments" {
		t.Errorf("JavaPackage = %q, want com.example.payments", tree.JavaPackage)
	}
	if len(tree.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(tree.Messages))
	}

	msg := tree.Messages[0]
	if msg.Doc != "Invoice describes a single billed amount." {
		t.Errorf("Doc = %q", msg.Doc)
	}
	if len(msg.Fields) != 5 {
		t.Fatalf("len(Fields) = %d, want 5 (id, customer, memo, items, metadata)", len(msg.Fields))
	}
	if msg.Fields[1].Deprecated != true {
		t.Errorf("customer field Deprecated = false, want true")
	}
	if msg.Fields[2].TypeName != ".google.protobuf.StringValue" {
		t.Errorf("memo TypeName = %q", msg.Fields[2].TypeName)
	}
	if len(msg.OneOfs) != 1 || len(msg.OneOfs[0].Fields) != 2 {
		t.Fatalf("OneOfs = %+v", msg.OneOfs)
	}
	if len(msg.Messages) != 1 || msg.Messages[0].Name != "LineItem" {
		t.Fatalf("nested Messages = %+v", msg.Messages)
	}
	metadata := msg.Fields[4]
	if metadata.MapKeyType != "string" || metadata.MapValueType != "int32" || !metadata.Repeated {
		t.Errorf("metadata field = %+v", metadata)
	}
	if len(msg.Reserved) != 2 {
		t.Fatalf("Reserved = %+v", msg.Reserved)
	}
	if msg.Reserved[1] != (ReservedRange{From: 9, To: 11}) {
		t.Errorf("Reserved[1] = %+v", msg.Reserved[1])
	}

	if len(tree.Enums) != 1 || len(tree.Enums[0].Values) != 3 {
		t.Fatalf("Enums = %+v", tree.Enums)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse("bad.proto", `message Foo { int32 a = }`)
	if err == nil {
		t.Fatal("expected a ParseError")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parseErr.Path != "bad.proto" {
		t.Errorf("Path = %q", parseErr.Path)
	}
}

func TestParse_UnterminatedMessage(t *testing.T) {
	_, err := Parse("bad.proto", `message Foo { int32 a = 1;`)
	if err == nil {
		t.Fatal("expected a ParseError for missing closing brace")
	}
}
