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

// Command protoforge compiles proto3 schema files into a Go wire-format
// runtime binding: a Model, Parser, Writer, and Test file per message,
// plus an enum file per declared enum. It is the thin CLI shell around
// the internal/parser -> internal/schema -> internal/lookup ->
// internal/emit pipeline, following the teacher's practice
// (cmd/main.go) of keeping the command surface itself free of business
// logic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "protoforge",
		Short: "Compile proto3 schemas into Go wire-format bindings",
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newVendorWKTCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
