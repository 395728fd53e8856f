// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"context"
	"os"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// Nothing to do routes through the prompt, finalizes again, and reboots
// unsuccessfully.
func TestLoopNoOpPrompts(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s, tm, _, fu, reboots := newTestSession(t)

	if err := s.Run(context.Background(), []string{"recovery"}); err != nil {
		t.Fatal(err)
	}
	if fu.prompts != 1 {
		t.Errorf("prompt entered %d times", fu.prompts)
	}
	if len(*reboots) != 1 || (*reboots)[0] {
		t.Errorf("reboots %v", *reboots)
	}
	// finalized: record clear, no command file
	if rec := s.Store.Read(); rec.Command != "" {
		t.Errorf("record not cleared: %+v", rec)
	}
	if _, err := tm.ReadFile(strs.CommandFile()); !os.IsNotExist(err) {
		t.Errorf("command file present: %v", err)
	}
}

// A successful wipe skips the prompt and reboots successfully.
func TestLoopSuccessSkipsPrompt(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s, tm, _, fu, reboots := newTestSession(t)
	tm.WriteFile(strs.CommandFile(), []byte("--wipe_cache\n"))

	if err := s.Run(context.Background(), []string{"recovery"}); err != nil {
		t.Fatal(err)
	}
	if fu.prompts != 0 {
		t.Errorf("prompt entered %d times", fu.prompts)
	}
	if len(*reboots) != 1 || !(*reboots)[0] {
		t.Errorf("reboots %v", *reboots)
	}
	if len(tm.Formatted) != 1 || tm.Formatted[0] != strs.CacheVolName() {
		t.Errorf("formats %v", tm.Formatted)
	}
}

// A failed install shows the error state before handing off to the prompt.
func TestLoopErrorNotifies(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s, _, fi, fu, _ := newTestSession(t)
	fi.result = InstallError

	if err := s.Run(context.Background(),
		[]string{"recovery", "--update_package=SDCARD:update.zip"}); err != nil {
		t.Fatal(err)
	}
	var sawErr bool
	for _, p := range fu.progress {
		if p == ProgressError {
			sawErr = true
		}
	}
	if !sawErr {
		t.Errorf("no error state shown: %v", fu.progress)
	}
	if fu.prompts != 1 {
		t.Errorf("prompt entered %d times", fu.prompts)
	}
}

// Transitions only exist between adjacent states.
func TestMachineTransitions(t *testing.T) {
	m := newMachine()
	ctx := context.Background()
	if m.Current() != StResolving {
		t.Fatalf("initial state %s", m.Current())
	}
	if err := m.Event(ctx, evReboot); err == nil {
		t.Error("reboot allowed from resolving")
	}
	for _, ev := range []string{evResolved, evExecuted, evPrompt, evFinalize, evReboot} {
		if err := m.Event(ctx, ev); err != nil {
			t.Fatalf("%s: %s", ev, err)
		}
	}
	if m.Current() != StRebooting {
		t.Errorf("final state %s", m.Current())
	}
}
