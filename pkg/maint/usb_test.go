// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package maint

import (
	"os"
	fp "path/filepath"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
)

func TestUsbToggle(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	lun := fp.Join(t.TempDir(), "file")
	u := &UsbMassStorage{LunFile: lun, BackingDev: "/dev/block/mmcblk0p1"}

	if u.Enabled() {
		t.Fatal("enabled before toggle")
	}
	if err := u.Toggle(); err != nil {
		t.Fatal(err)
	}
	buf, err := os.ReadFile(lun)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "/dev/block/mmcblk0p1\n" {
		t.Errorf("lun content %q", buf)
	}
	if !u.Enabled() {
		t.Error("not marked enabled")
	}

	if err = u.Toggle(); err != nil {
		t.Fatal(err)
	}
	if buf, err = os.ReadFile(lun); err != nil {
		t.Fatal(err)
	}
	if string(buf) != "\n" {
		t.Errorf("lun content after disable %q", buf)
	}
	if u.Enabled() {
		t.Error("still marked enabled")
	}
}

func TestUsbEnableBadLun(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	u := &UsbMassStorage{LunFile: "/nonexistent/dir/file", BackingDev: "/dev/null"}
	if err := u.Enable(); err == nil {
		t.Error("want error for unwritable lun file")
	}
	if u.Enabled() {
		t.Error("marked enabled after failure")
	}
}
