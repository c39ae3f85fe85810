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
	"errors"
	"testing"

	"github.com/wireforge/protoforge/internal/parser"
)

func mustBuild(t *testing.T, path, src string) *Model {
	t.Helper()
	tree, err := parser.Parse(path, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, err := Build([]*parser.ParseTree{tree})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return model
}

func TestBuild_OneOfGrouping(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Shape {
  oneof kind {
    int32 circle_radius = 1;
    string square_label = 2;
  }
}
`)
	msg := model.MessageByID[".t.v1.Shape"]
	if msg == nil {
		t.Fatal("Shape not found")
	}
	if len(msg.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2", len(msg.Fields))
	}
	if len(msg.OneOfs) != 1 || len(msg.OneOfs[0].Fields) != 2 {
		t.Fatalf("OneOfs = %+v", msg.OneOfs)
	}
	for _, f := range msg.Fields {
		if f.Kind != FieldOneOfMember || f.OneOf != msg.OneOfs[0] {
			t.Errorf("field %s not wired to its OneOf", f.Name)
		}
	}
}

func TestBuild_WrapperOptionalRecognition(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Profile {
  .google.protobuf.StringValue nickname = 1;
}
`)
	msg := model.MessageByID[".t.v1.Profile"]
	field := msg.Fields[0]
	if field.Typez != STRING_TYPE || !field.Optional || field.TypezID != "" {
		t.Errorf("nickname field = %+v", field)
	}
}

func TestBuild_EnumFieldReclassified(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
enum Status { STATUS_UNSPECIFIED = 0; ACTIVE = 1; }
message Account {
  Status status = 1;
}
`)
	msg := model.MessageByID[".t.v1.Account"]
	field := msg.Fields[0]
	if field.Typez != ENUM_TYPE || field.TypezID != ".t.v1.Status" {
		t.Errorf("status field = %+v", field)
	}
}

func TestBuild_RecursiveFieldLabeled(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message TreeNode {
  int32 value = 1;
  repeated TreeNode children = 2;
}
`)
	msg := model.MessageByID[".t.v1.TreeNode"]
	childrenField := msg.Fields[1]
	if !childrenField.Recursive {
		t.Errorf("children field should be labeled Recursive")
	}
}

func TestValidate_DuplicateFieldNumber(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Bad {
  int32 a = 1;
  oneof choice {
    string b = 1;
  }
}
`)
	err := Validate(model)
	var dup *DuplicateFieldNumberError
	if !errors.As(err, &dup) {
		t.Fatalf("Validate error = %v, want *DuplicateFieldNumberError", err)
	}
}

func TestValidate_MissingEnumZero(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
enum Status { ACTIVE = 1; }
`)
	err := Validate(model)
	var missing *MissingZeroValueError
	if !errors.As(err, &missing) {
		t.Fatalf("Validate error = %v, want *MissingZeroValueError", err)
	}
}

func TestBuild_MapFieldSynthesizesRejectedEntry(t *testing.T) {
	// The parser recognizes a map field by flagging it Repeated with
	// MapKeyType/MapValueType set; the schema builder synthesizes the
	// same <FieldName>Entry message protoc itself would generate and
	// marks it IsMap, so Validate's ordinary nested-message walk rejects
	// it per spec.md §7's UnsupportedMap without a field-level special
	// case.
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Bad {
  map<string, int32> metadata = 1;
}
`)
	msg := model.MessageByID[".t.v1.Bad"]
	if len(msg.Fields) != 1 || msg.Fields[0].Typez != MESSAGE_TYPE || !msg.Fields[0].Repeated {
		t.Fatalf("metadata field = %+v", msg.Fields)
	}
	entry := model.MessageByID[msg.Fields[0].TypezID]
	if entry == nil || !entry.IsMap {
		t.Fatalf("synthesized map entry = %+v", entry)
	}

	err := Validate(model)
	var unsupported *UnsupportedMapError
	if !errors.As(err, &unsupported) {
		t.Fatalf("Validate error = %v, want *UnsupportedMapError", err)
	}
}

func TestFindDependencies_FollowsFieldsAndParents(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Outer {
  message Inner {
    Address addr = 1;
  }
  Inner inner = 1;
}
message Address {
  string line1 = 1;
}
`)
	inner := model.MessageByID[".t.v1.Outer.Inner"]
	deps, err := FindDependencies(model, []string{inner.ID})
	if err != nil {
		t.Fatalf("FindDependencies: %v", err)
	}
	for _, want := range []string{".t.v1.Outer.Inner", ".t.v1.Address", ".t.v1.Outer"} {
		if !deps[want] {
			t.Errorf("deps missing %s; got %v", want, deps)
		}
	}
}
