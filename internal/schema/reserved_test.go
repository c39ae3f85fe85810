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

import "testing"

func TestBuild_ReservedRangesCarried(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Invoice {
  reserved 2, 15 to 9999;
  string id = 1;
}
`)
	msg := model.MessageByID[".t.v1.Invoice"]
	if msg == nil {
		t.Fatal("Invoice not found")
	}
	want := []ReservedRange{{From: 2, To: 2}, {From: 15, To: 9999}}
	if len(msg.Reserved) != len(want) {
		t.Fatalf("Reserved = %+v, want %+v", msg.Reserved, want)
	}
	for i := range want {
		if msg.Reserved[i] != want[i] {
			t.Errorf("Reserved[%d] = %+v, want %+v", i, msg.Reserved[i], want[i])
		}
	}
}

func TestCheckReservedNumbers_Flags(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Invoice {
  reserved 2;
  string id = 1;
  int32 legacy_code = 2;
}
`)
	warnings := CheckReservedNumbers(model)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want 1 entry", warnings)
	}
	w := warnings[0]
	if w.MessageID != ".t.v1.Invoice" || w.Field != "legacy_code" || w.Number != 2 {
		t.Errorf("warning = %+v, want Invoice.legacy_code at 2", w)
	}
}

func TestCheckReservedNumbers_NoReservedNoWarnings(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Invoice {
  string id = 1;
}
`)
	if warnings := CheckReservedNumbers(model); len(warnings) != 0 {
		t.Errorf("warnings = %+v, want none", warnings)
	}
}

func TestCheckReservedNumbers_NestedMessage(t *testing.T) {
	model := mustBuild(t, "t.proto", `
syntax = "proto3";
package t.v1;
message Outer {
  message Inner {
    reserved 5;
    int32 removed_field = 5;
  }
  Inner inner = 1;
}
`)
	warnings := CheckReservedNumbers(model)
	if len(warnings) != 1 {
		t.Fatalf("warnings = %+v, want 1 entry", warnings)
	}
	if warnings[0].MessageID != ".t.v1.Outer.Inner" {
		t.Errorf("MessageID = %q, want nested Inner", warnings[0].MessageID)
	}
}
