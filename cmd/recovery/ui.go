// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package main

import (
	"bufio"
	"io"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/maint"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/session"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// consoleUI is a line-oriented stand-in for the device's menu UI. It fulfills
// the prompt contract: present maintenance choices, return when the operator
// asks to reboot.
type consoleUI struct {
	mt      *maint.Maint
	usb     *maint.UsbMassStorage
	session *session.Session
	in      io.Reader
}

func (c *consoleUI) NotifyProgress(state string) {
	log.Logf("progress: %s", state)
}

const menu = `
  reboot           - reboot system now
  apply            - apply ` + "SDCARD:update.zip" + `
  backup-system    - tar backup of /system to sdcard
  backup-data      - tar backup of /data to sdcard
  restore <tar>    - restore a backup archive
  restore+ <tar>   - format target, then restore
  wipe-dalvik      - wipe dalvik-cache
  fsck             - check/repair filesystems
  parted <size>    - repartition sdcard (256M 384M 512M 768M 1024M 0)
  mke2fs2          - format sdcard 2nd partition (ext2)
  usb              - toggle USB mass storage
  os               - list boot entries
  boot <entry>     - stage an entry's boot script
`

// RunInteractivePrompt loops over operator commands until "reboot".
func (c *consoleUI) RunInteractivePrompt() {
	log.Msg(menu)
	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		cmd, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)
		var err error
		switch cmd {
		case "":
			continue
		case "reboot":
			return
		case "apply":
			if c.session.Installer.Install(strs.SdcardPackage()) != session.InstallSuccess {
				log.Msgln("Install failed.")
			}
		case "backup-system":
			_, err = c.mt.BackupVolume(strs.SystemVolName())
		case "backup-data":
			_, err = c.mt.BackupVolume(strs.DataVolName())
		case "restore":
			err = c.mt.RestoreBackup(arg, false)
		case "restore+":
			err = c.mt.RestoreBackup(arg, true)
		case "wipe-dalvik":
			err = c.mt.WipeDalvikCache()
		case "fsck":
			err = c.mt.RepairFilesystems()
		case "parted":
			err = c.mt.PartitionSdcard(arg)
		case "mke2fs2":
			err = c.mt.FormatSecondPartition()
		case "usb":
			err = c.usb.Toggle()
		case "os":
			var entries []string
			if entries, err = c.mt.ListBootEntries(); err == nil {
				for _, e := range entries {
					log.Msgln("  " + e)
				}
			}
		case "boot":
			err = c.mt.StageBootScript(arg)
		default:
			log.Msgf("unknown command %q", cmd)
			log.Msg(menu)
		}
		if err != nil {
			log.Msgf("Error: %s", err)
		}
	}
	// EOF on input also means reboot
}
