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

package wire

import "testing"

func TestAvalancheMix_Deterministic(t *testing.T) {
	a := AvalancheMix(1)
	b := AvalancheMix(1)
	if a != b {
		t.Fatalf("AvalancheMix(1) not deterministic: %d vs %d", a, b)
	}
}

func TestAvalancheMix_DiffersForDifferentInputs(t *testing.T) {
	if AvalancheMix(1) == AvalancheMix(2) {
		t.Fatalf("AvalancheMix should differ across distinct inputs (in this instance)")
	}
}

func TestMixScalar_MatchesPolynomial31(t *testing.T) {
	result := int64(1)
	result = MixScalar(result, 7)
	result = MixScalar(result, 9)
	want := int64(1*31+7)*31 + 9
	if result != want {
		t.Fatalf("MixScalar chain = %d, want %d", result, want)
	}
}
