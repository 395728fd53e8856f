// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package bcb_test

import (
	"bytes"
	"os"
	fp "path/filepath"
	"strings"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
)

// devFile creates a file-backed stand-in for the raw block device, filled
// with the given byte.
func devFile(t *testing.T, fill byte) *bcb.Store {
	t.Helper()
	path := fp.Join(t.TempDir(), "misc")
	buf := bytes.Repeat([]byte{fill}, bcb.RecordLen)
	if err := os.WriteFile(path, buf, 0600); err != nil {
		t.Fatal(err)
	}
	return &bcb.Store{Device: path}
}

func TestReadMissingDevice(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s := &bcb.Store{Device: fp.Join(t.TempDir(), "nonexistent")}
	r := s.Read()
	if r.Command != "" || r.Status != "" || r.Recovery != "" {
		t.Errorf("want empty record, got %#v", r)
	}
}

func TestErasedFlashReadsEmpty(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	for _, fill := range []byte{0x00, 0xFF} {
		s := devFile(t, fill)
		r := s.Read()
		if r.Command != "" || r.Status != "" || r.Recovery != "" {
			t.Errorf("fill %#x: want empty record, got %#v", fill, r)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s := devFile(t, 0xFF)
	in := bcb.Record{
		Command:  "boot-recovery",
		Recovery: "recovery\n--wipe_data\n",
	}
	if err := s.Write(in); err != nil {
		t.Fatal(err)
	}
	out := s.Read()
	if out != in {
		t.Errorf("want %#v got %#v", in, out)
	}
}

func TestClear(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s := devFile(t, 0xFF)
	if err := s.Write(bcb.Record{Command: "boot-recovery", Recovery: "recovery\n"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if r := s.Read(); r != (bcb.Record{}) {
		t.Errorf("want empty record after Clear, got %#v", r)
	}
}

//oversized fields must truncate with a warning, not error or overflow
func TestTruncation(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s := devFile(t, 0x00)
	long := strings.Repeat("x", bcb.CommandLen+10)
	if err := s.Write(bcb.Record{Command: long}); err != nil {
		t.Fatal(err)
	}
	r := s.Read()
	if len(r.Command) != bcb.CommandLen-1 {
		t.Errorf("want %d bytes, got %d", bcb.CommandLen-1, len(r.Command))
	}
	if !strings.HasPrefix(long, r.Command) {
		t.Errorf("truncated field is not a prefix: %q", r.Command)
	}
	tlog.Freeze()
	if !strings.Contains(tlog.Buf.String(), "truncating") {
		t.Error("expected truncation warning in log")
	}
}

//the recovery field boundary: exactly at capacity minus terminator fits
func TestRecoveryFieldBoundary(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	s := devFile(t, 0x00)
	fits := "recovery\n" + strings.Repeat("a", bcb.RecoveryLen-1-len("recovery\n"))
	if err := s.Write(bcb.Record{Recovery: fits}); err != nil {
		t.Fatal(err)
	}
	if r := s.Read(); r.Recovery != fits {
		t.Errorf("content at capacity was altered: len %d vs %d", len(r.Recovery), len(fits))
	}
}
