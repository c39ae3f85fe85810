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

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindProtoFiles(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "payments", "invoice.proto"), "")
	mustWrite(t, filepath.Join(root, "payments", "README.md"), "")
	mustWrite(t, filepath.Join(root, "shared", "common.proto"), "")

	got, err := findProtoFiles(root)
	if err != nil {
		t.Fatalf("findProtoFiles: %v", err)
	}
	want := []string{
		filepath.Join("payments", "invoice.proto"),
		filepath.Join("shared", "common.proto"),
	}
	if len(got) != len(want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}
