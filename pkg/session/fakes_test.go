// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"os"
	fp "path/filepath"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

type fakeInstaller struct {
	locator string
	calls   int
	result  Outcome
}

func (fi *fakeInstaller) Install(locator string) Outcome {
	fi.locator = locator
	fi.calls++
	return fi.result
}

type fakeUI struct {
	progress []string
	prompts  int
}

func (fu *fakeUI) NotifyProgress(state string) { fu.progress = append(fu.progress, state) }
func (fu *fakeUI) RunInteractivePrompt()       { fu.prompts++ }

// devStore backs a record store with an ordinary file full of zeros.
func devStore(t *testing.T) *bcb.Store {
	t.Helper()
	p := fp.Join(t.TempDir(), "misc")
	if err := os.WriteFile(p, make([]byte, bcb.RecordLen), 0644); err != nil {
		t.Fatal(err)
	}
	return &bcb.Store{Device: p}
}

// newTestSession wires a session against a file-backed store and a
// TestManager holding the standard volumes. Reboots are recorded, not issued.
func newTestSession(t *testing.T) (*Session, *vols.TestManager, *fakeInstaller, *fakeUI, *[]bool) {
	t.Helper()
	tm := vols.NewTestManager(t.TempDir(),
		strs.CacheVolName(), strs.DataVolName(), strs.SdcardVolName())
	fi := &fakeInstaller{}
	fu := &fakeUI{}
	var reboots []bool
	s := &Session{
		ID:        "test",
		Store:     devStore(t),
		Vols:      tm,
		Installer: fi,
		UI:        fu,
		Reboot:    func(success bool) { reboots = append(reboots, success) },
	}
	return s, tm, fi, fu, &reboots
}
