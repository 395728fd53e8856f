// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package maint

import (
	"os"
	"os/exec"
	fp "path/filepath"
	"strings"
	"testing"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/testlog"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// useRealTar substitutes the system tar for the device binaries and restores
// them when the test ends. The busybox stand-in discards the leading applet
// name argument.
func useRealTar(t *testing.T) {
	t.Helper()
	tar, err := exec.LookPath("tar")
	if err != nil {
		t.Skip("no tar in path")
	}
	shim := fp.Join(t.TempDir(), "busybox")
	script := "#!/bin/sh\nshift\nexec " + tar + " \"$@\"\n"
	if err := os.WriteFile(shim, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	ob, ot := busyboxBin, tarBin
	busyboxBin, tarBin = shim, tar
	t.Cleanup(func() { busyboxBin, tarBin = ob, ot })
}

func TestBackupAndRestore(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	useRealTar(t)
	mt, tm := newTestMaint(t)
	if err := tm.WriteFile("SYSTEM:app/browser.apk", []byte("apk bytes")); err != nil {
		t.Fatal(err)
	}

	dest, err := mt.BackupVolume(strs.SystemVolName())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(dest, "_Sys.tar") {
		t.Errorf("archive name %q", dest)
	}
	if !strings.Contains(dest, strs.BackupDir()) {
		t.Errorf("archive outside backup dir: %q", dest)
	}
	if fi, err := os.Stat(dest); err != nil || fi.Size() == 0 {
		t.Fatalf("archive missing: %v", err)
	}

	// restore into a scratch root; tar strips the leading / from member
	// names, so the volume path reappears underneath it
	root := t.TempDir()
	or := restoreRoot
	restoreRoot = root
	defer func() { restoreRoot = or }()

	if err = mt.RestoreBackup(fp.Base(dest), false); err != nil {
		t.Fatal(err)
	}
	sysPath := fp.Join(tm.Root, strs.SystemVolName())
	extracted := fp.Join(root, strings.TrimPrefix(sysPath, "/"), "app", "browser.apk")
	buf, err := os.ReadFile(extracted)
	if err != nil {
		t.Fatalf("extracted file: %v", err)
	}
	if string(buf) != "apk bytes" {
		t.Errorf("content %q", buf)
	}
}

func TestRestoreWithFormat(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	useRealTar(t)
	mt, tm := newTestMaint(t)
	if err := tm.WriteFile("DATA:app-private/keys", []byte("k")); err != nil {
		t.Fatal(err)
	}
	dest, err := mt.BackupVolume(strs.DataVolName())
	if err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	or := restoreRoot
	restoreRoot = root
	defer func() { restoreRoot = or }()

	if err = mt.RestoreBackup(fp.Base(dest), true); err != nil {
		t.Fatal(err)
	}
	if len(tm.Formatted) != 1 || tm.Formatted[0] != strs.DataVolName() {
		t.Errorf("formats %v", tm.Formatted)
	}
}

func TestBackupUnknownVolume(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	mt, _ := newTestMaint(t)
	if _, err := mt.BackupVolume(strs.SdcardVolName()); err == nil {
		t.Error("want error backing up the sdcard to itself")
	}
}

func TestRestoreArchiveWithoutTags(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	mt, _ := newTestMaint(t)
	if err := mt.RestoreBackup("random.tar", false); err == nil {
		t.Error("want error for tagless archive")
	}
}

func TestRestoreMissingArchive(t *testing.T) {
	tlog := testlog.NewTestLog(t, true, false)
	defer tlog.Freeze()
	mt, _ := newTestMaint(t)
	if err := mt.RestoreBackup("Backup_19990101-000000_Sys.tar", false); err == nil {
		t.Error("want error for missing archive")
	}
}
