// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Recovery-mode control program for the Samsung Spica i5700. Boots instead of
// the main OS to install update packages, wipe volumes, and run maintenance
// from an interactive prompt, resuming interrupted work across reboots via
// the record shared with the boot firmware.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/exttool"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/maint"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/power"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/session"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

// installBin verifies and applies an update package; the engine only sees
// its exit status.
var installBin = "/sbin/recovery-install"

// toolInstaller delegates package installation to the external install
// engine.
type toolInstaller struct {
	vols vols.Manager
}

func (ti *toolInstaller) Install(locator string) session.Outcome {
	vol, _, err := vols.SplitLocator(locator)
	if err != nil {
		log.Logf("bad package locator %q: %s", locator, err)
		return session.InstallError
	}
	if err = ti.vols.Mount(vol); err != nil {
		log.Logf("mounting %s: %s", vol, err)
		return session.InstallError
	}
	path, err := ti.vols.Translate(locator)
	if err != nil {
		log.Logf("translating %q: %s", locator, err)
		return session.InstallError
	}
	tool := &exttool.Tool{Path: installBin, Args: []string{path}}
	if _, err = tool.Run(); err != nil {
		return session.InstallError
	}
	return session.InstallSuccess
}

func main() {
	log.SetPrefix("recovery")
	log.AddConsoleLog(flags.NA)
	if _, err := log.AddTempLog(strs.TmpLogPath()); err != nil {
		log.Logf("temp log: %s", err)
	}
	log.Msgln("Samsung Spica i5700 system recovery")

	table := vols.DefaultTable()
	power.AddPrebootDefaults(func(_ bool) { table.UnmountAll() })

	store := &bcb.Store{Device: strs.BCBDevice()}
	mt := &maint.Maint{
		Vols:     table,
		Progress: func(_ time.Duration) { fmt.Print(".") },
	}
	ui := &consoleUI{
		mt:  mt,
		usb: maint.NewUsbMassStorage(),
		in:  os.Stdin,
	}
	s := session.New(store, table, &toolInstaller{vols: table}, ui)
	ui.session = s

	if err := s.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("session: %s", err)
	}
	// Run rebooted unless the reboot was suppressed; exit quietly either way.
	os.Exit(0)
}
