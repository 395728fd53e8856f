// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package maint

import (
	"fmt"
	"os"
	fp "path/filepath"
	"strings"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/exttool"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// Archive name timestamp, e.g. Backup_20260829-153000_Sys.tar
const backupStamp = "20060102-150405"

// restoreRoot is where archives are unpacked; tests point it elsewhere.
var restoreRoot = "/"

// backupSuffix maps a volume name to the tag embedded in archive names.
// Restore recognizes these tags to pick its target volumes.
func backupSuffix(vol string) (string, error) {
	switch vol {
	case strs.SystemVolName():
		return "Sys", nil
	case strs.DataVolName():
		return "Data", nil
	}
	return "", fmt.Errorf("no backup support for volume %q", vol)
}

// BackupVolume archives a volume to a timestamped tar on the sdcard,
// returning the archive path. RFS journal files are excluded.
func (mt *Maint) BackupVolume(vol string) (string, error) {
	sfx, err := backupSuffix(vol)
	if err != nil {
		return "", err
	}
	if err = mt.Vols.Mount(vol); err != nil {
		return "", err
	}
	if err = mt.Vols.Mount(strs.SdcardVolName()); err != nil {
		return "", err
	}
	src, err := mt.Vols.Translate(vol + ":")
	if err != nil {
		return "", err
	}
	dir, err := mt.Vols.Translate(strs.SdcardVolName() + ":" + strs.BackupDir())
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(dir, 0777); err != nil {
		return "", err
	}
	name := "Backup_" + time.Now().Format(backupStamp) + "_" + sfx + ".tar"
	dest := fp.Join(dir, name)

	log.Msgf("Backing up %s to %s...", vol, name)
	tool := &exttool.Tool{
		Path:     busyboxBin,
		Args:     []string{"tar", "-c", "--exclude=*RFS_LOG.LO*", "-f", dest, src},
		Progress: mt.Progress,
	}
	if _, err = tool.Run(); err != nil {
		return "", fmt.Errorf("creating %s: %w", name, err)
	}
	log.Msgln("Backup complete.")
	return dest, nil
}

// restoreTargets derives the volumes an archive holds from its name tags.
func restoreTargets(name string) (targets []string) {
	if strings.Contains(name, "_Sys.") {
		targets = append(targets, strs.SystemVolName())
	}
	if strings.Contains(name, "_Data.") {
		targets = append(targets, strs.DataVolName())
	}
	return
}

// RestoreBackup unpacks a named archive from the sdcard's backup directory.
// With format set, each target volume is reformatted first.
func (mt *Maint) RestoreBackup(name string, format bool) error {
	targets := restoreTargets(name)
	if len(targets) == 0 {
		return fmt.Errorf("archive %q names no volume", name)
	}
	if err := mt.Vols.Mount(strs.SdcardVolName()); err != nil {
		return err
	}
	archive, err := mt.Vols.Translate(strs.SdcardVolName() + ":" + fp.Join(strs.BackupDir(), name))
	if err != nil {
		return err
	}
	if _, err = os.Stat(archive); err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	if format {
		for _, v := range targets {
			log.Msgf("Formatting %s...", v)
			if err = mt.Vols.Format(v); err != nil {
				return fmt.Errorf("formatting %s: %w", v, err)
			}
		}
	}
	for _, v := range targets {
		if err = mt.Vols.Mount(v); err != nil {
			return fmt.Errorf("mounting %s: %w", v, err)
		}
	}
	log.Msgln("Restoring..")
	tool := &exttool.Tool{
		Path:     tarBin,
		Args:     []string{"-x", "-f", archive},
		Dir:      restoreRoot,
		Progress: mt.Progress,
	}
	if _, err = tool.Run(); err != nil {
		return fmt.Errorf("extracting %s: %w", name, err)
	}
	log.Msgln("Restore complete.")
	return nil
}
