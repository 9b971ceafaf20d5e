// util/cache_test.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestCacheStoreRetrieve(t *testing.T) {
	type record struct {
		Name   string
		Values []float64
		Tags   map[string]int
	}

	path := filepath.Join(t.TempDir(), "sub", "obj.msgpack.zst")

	in := record{
		Name:   "KSEA",
		Values: []float64{47.449, -122.309, 433},
		Tags:   map[string]int{"runways": 3},
	}
	if err := CacheStoreObject(path, in); err != nil {
		t.Fatalf("store: %v", err)
	}

	var out record
	if err := CacheRetrieveObject(path, &out); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: stored %+v, got %+v", in, out)
	}
}

func TestCacheRetrieveMissing(t *testing.T) {
	var out int
	if err := CacheRetrieveObject(filepath.Join(t.TempDir(), "nope"), &out); err == nil {
		t.Errorf("expected error for missing cache file")
	}
}
