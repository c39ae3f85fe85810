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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wireforge/protoforge/internal/config"
)

func newVendorWKTCmd() *cobra.Command {
	var (
		configPath string
		dest       string
	)
	cmd := &cobra.Command{
		Use:   "vendor-wkt",
		Short: "Fetch and extract protobuf's well-known-type .proto sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("protoforge: loading config: %w", err)
			}
			if dest == "" {
				return fmt.Errorf("protoforge: --dest is required")
			}
			if err := config.VendorWellKnownTypes(cfg, dest); err != nil {
				return fmt.Errorf("protoforge: vendoring well-known types: %w", err)
			}
			slog.Info("protoforge: vendored well-known types", "dest", dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a directory-local protoforge.toml overriding the root one")
	cmd.Flags().StringVar(&dest, "dest", "", "directory the well-known-type .proto sources are extracted into")
	return cmd
}
