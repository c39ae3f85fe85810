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

// Ptr returns a pointer to a copy of v. Generated test sample data uses
// this to build the explicit-presence values of an `optional` scalar or
// wrapper-optional field from a literal, since Go forbids taking the
// address of a literal directly.
func Ptr[T any](v T) *T {
	return &v
}
