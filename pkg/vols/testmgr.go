// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package vols

import (
	"fmt"
	"os"
	fp "path/filepath"
)

// TestManager is a Manager backed by directories under a temp root, for use
// in tests of code consuming the facade. Fault injection via the Err maps;
// formats and mounts are recorded for inspection.
type TestManager struct {
	Root       string
	MountErrs  map[string]error
	FormatErrs map[string]error
	Formatted  []string
	mounted    map[string]bool
}

var _ Manager = (*TestManager)(nil)

// NewTestManager creates volumes as subdirs of root, initially unmounted.
func NewTestManager(root string, names ...string) *TestManager {
	tm := &TestManager{
		Root:       root,
		MountErrs:  make(map[string]error),
		FormatErrs: make(map[string]error),
		mounted:    make(map[string]bool),
	}
	for _, n := range names {
		if err := os.MkdirAll(fp.Join(root, n), 0755); err != nil {
			panic(err)
		}
		tm.mounted[n] = false
	}
	return tm
}

func (tm *TestManager) Mount(vol string) error {
	if _, ok := tm.mounted[vol]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownVolume, vol)
	}
	if err := tm.MountErrs[vol]; err != nil {
		return err
	}
	tm.mounted[vol] = true
	return nil
}

func (tm *TestManager) Unmount(vol string) error {
	if _, ok := tm.mounted[vol]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownVolume, vol)
	}
	tm.mounted[vol] = false
	return nil
}

// Format records the request and empties the volume dir, so tests can
// verify both that a format happened and that content is gone.
func (tm *TestManager) Format(vol string) error {
	if _, ok := tm.mounted[vol]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownVolume, vol)
	}
	if err := tm.FormatErrs[vol]; err != nil {
		return err
	}
	dir := fp.Join(tm.Root, vol)
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tm.Formatted = append(tm.Formatted, vol)
	return nil
}

func (tm *TestManager) Translate(locator string) (string, error) {
	vol, path, err := SplitLocator(locator)
	if err != nil {
		return "", err
	}
	if _, ok := tm.mounted[vol]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownVolume, vol)
	}
	return fp.Join(tm.Root, vol, path), nil
}

func (tm *TestManager) IsMounted(vol string) bool { return tm.mounted[vol] }

// WriteFile places content at a locator without going through Mount, for
// test setup.
func (tm *TestManager) WriteFile(locator string, content []byte) error {
	vol, path, err := SplitLocator(locator)
	if err != nil {
		return err
	}
	full := fp.Join(tm.Root, vol, path)
	if err = os.MkdirAll(fp.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0644)
}

// ReadFile reads content at a locator without going through Mount.
func (tm *TestManager) ReadFile(locator string) ([]byte, error) {
	vol, path, err := SplitLocator(locator)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(fp.Join(tm.Root, vol, path))
}
