// Copyright 2024 Google LLC
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

package config

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/walle/targz"
)

// defaultWellKnownTypesArchive is used when protoforge.toml does not set
// vendor.archive-url: a pinned release of the well-known .proto sources
// (Any, Duration, Timestamp, the wrapper types) this compiler's wrapper-
// optional recognition (internal/schema/wrappers.go) depends on being
// present on disk to parse against.
const defaultWellKnownTypesArchive = "https://github.com/protocolbuffers/protobuf/archive/refs/tags/v29.3.tar.gz"

// VendorWellKnownTypes downloads the configured (or default) well-known
// types archive, verifies its SHA-256 against cfg.Vendor.SHA256 when set,
// and extracts it under destDir. Grounded on the teacher's
// UpdateRootConfig/getSha256 pinned-tarball-plus-checksum pattern
// (internal/config/config.go), repurposed from syncing
// googleapis/googleapis to vendoring protobuf's well-known types; uses
// github.com/walle/targz for extraction instead of the teacher's manual
// archive/tar handling, since the teacher's own retrieval pack carries
// that dependency for exactly this kind of "fetch a tarball, unpack it"
// task.
func VendorWellKnownTypes(cfg *Config, destDir string) error {
	url := cfg.Vendor.ArchiveURL
	if url == "" {
		url = defaultWellKnownTypesArchive
	}

	tmp, err := os.CreateTemp("", "protoforge-wkt-*.tar.gz")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	sum, err := downloadAndHash(url, tmp)
	if err != nil {
		return fmt.Errorf("fetching well-known types archive %s: %w", url, err)
	}
	if cfg.Vendor.SHA256 != "" && sum != cfg.Vendor.SHA256 {
		return fmt.Errorf("sha256 mismatch for %s: want %s, got %s", url, cfg.Vendor.SHA256, sum)
	}

	if err := os.MkdirAll(destDir, 0o777); err != nil {
		return err
	}
	return targz.Extract(tmp.Name(), destDir)
}

// downloadAndHash streams resp's body into dst while hashing it, so the
// archive is written and checksummed in a single pass.
func downloadAndHash(url string, dst *os.File) (string, error) {
	response, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	if response.StatusCode >= 300 {
		return "", fmt.Errorf("http error in download: %s", response.Status)
	}

	hasher := sha256.New()
	if _, err := io.Copy(io.MultiWriter(dst, hasher), response.Body); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
