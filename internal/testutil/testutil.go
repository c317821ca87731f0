// Package testutil provides test helpers shared by browsestate packages.
//
// It must not import any browsestate package: the core packages use it from
// their own tests. Catalog fixtures live in catalog/catalogtest.
//   - assert.go: slice and error assertions
//   - fs_helpers.go: confined file writes for config fixtures
package testutil
