/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package format

import (
	"sort"
	"sync"

	"dirpx.dev/bbdb/bbcore/errors"
)

const (
	// OldestVersion is the lowest file format version with a registered
	// grammar.
	OldestVersion = 2

	// LatestVersion is the highest file format version with a registered
	// grammar, and the canonical version for newly written files that
	// carry the extended record layout.
	LatestVersion = 9

	// extendedSince is the first version whose record layout carries the
	// affix, uuid, creation and timestamp slots.
	extendedSince = 7
)

var (
	registryOnce sync.Once
	registry     map[int]*Grammar
)

// buildRegistry constructs the immutable version registry. Versions below
// extendedSince use the compact record layout; versions at or above it use
// the extended layout.
func buildRegistry() {
	registry = make(map[int]*Grammar, LatestVersion-OldestVersion+1)
	for v := OldestVersion; v <= LatestVersion; v++ {
		registry[v] = &Grammar{
			version:  v,
			extended: v >= extendedSince,
		}
	}
}

// GrammarFor returns the grammar registered for version. Unknown versions,
// including versions below OldestVersion and above LatestVersion, fall
// back to the oldest grammar so that files written by unfamiliar
// producers still get a best-effort parse.
func GrammarFor(version int) *Grammar {
	registryOnce.Do(buildRegistry)
	if g, ok := registry[version]; ok {
		return g
	}
	return registry[OldestVersion]
}

// StrictGrammarFor returns the grammar registered for version, or an
// *errors.UnsupportedVersionError when no grammar is registered for it.
func StrictGrammarFor(version int) (*Grammar, error) {
	registryOnce.Do(buildRegistry)
	if g, ok := registry[version]; ok {
		return g, nil
	}
	return nil, &errors.UnsupportedVersionError{Version: version}
}

// OldestGrammar returns the grammar for OldestVersion.
func OldestGrammar() *Grammar {
	return GrammarFor(OldestVersion)
}

// LatestGrammar returns the grammar for LatestVersion.
func LatestGrammar() *Grammar {
	return GrammarFor(LatestVersion)
}

// SupportedVersions returns all registered versions in ascending order.
func SupportedVersions() []int {
	registryOnce.Do(buildRegistry)
	versions := make([]int, 0, len(registry))
	for v := range registry {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions
}
