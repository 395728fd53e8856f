// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package maint implements the maintenance operations reachable from the
//interactive prompt: tar backup/restore, dalvik-cache wipe, filesystem
//repair, sdcard partitioning, USB mass storage, and the boot list. Everything
//here is driven by the prompt collaborator, never by the session engine.
package maint

import (
	"fmt"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/exttool"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

// External binaries. Vars so tests can substitute.
var (
	busyboxBin  = "/xbin/busybox"
	tarBin      = "/xbin/tar"
	rmBin       = "/xbin/rm"
	shBin       = "/sbin/sh"
	repairFsBin = "/sbin/repair_fs"
	sdpartedBin = "/xbin/sdparted"
	mke2fsBin   = "/xbin/mke2fs"

	secondPartDev = "/dev/block/mmcblk0p2"
)

// Maint bundles the volume facade with an optional liveness callback for
// long-running tools.
type Maint struct {
	Vols     vols.Manager
	Progress func(elapsed time.Duration)
}

// WipeDalvikCache removes the dalvik cache from the data volume.
func (mt *Maint) WipeDalvikCache() error {
	if err := mt.Vols.Mount(strs.DataVolName()); err != nil {
		return err
	}
	path, err := mt.Vols.Translate(strs.DataVolName() + ":dalvik-cache")
	if err != nil {
		return err
	}
	log.Msgf("Formatting %s:dalvik-cache..", strs.DataVolName())
	if !exttool.Simple(rmBin, "-r", path) {
		return fmt.Errorf("wiping dalvik-cache failed")
	}
	return nil
}

// RepairFilesystems unmounts the internal volumes and runs the repair
// helper script against their devices.
func (mt *Maint) RepairFilesystems() error {
	for _, v := range []string{strs.SystemVolName(), strs.DataVolName(), strs.CacheVolName()} {
		if err := mt.Vols.Unmount(v); err != nil {
			return fmt.Errorf("unmounting %s before repair: %w", v, err)
		}
	}
	log.Msgln("Checking filesystems..")
	if !exttool.Simple(shBin, "-c", repairFsBin) {
		return fmt.Errorf("filesystem repair failed")
	}
	return nil
}

// Sizes accepted for the sdcard's second partition. "0" deletes it.
var PartSizes = []string{"256M", "384M", "512M", "768M", "1024M", "0"}

// PartitionSdcard repartitions the sdcard, giving the second (ext2)
// partition the requested size. Destroys all sdcard content.
func (mt *Maint) PartitionSdcard(size string) error {
	valid := false
	for _, s := range PartSizes {
		if s == size {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unsupported partition size %q", size)
	}
	if err := mt.Vols.Unmount(strs.SdcardVolName()); err != nil {
		return err
	}
	log.Msgln("Formatting SDCARD..")
	tool := &exttool.Tool{
		Path:     sdpartedBin,
		Args:     []string{"-es", size, "-ss", "0", "-s"},
		Progress: mt.Progress,
	}
	if _, err := tool.Run(); err != nil {
		return fmt.Errorf("partitioning sdcard: %w", err)
	}
	return nil
}

// FormatSecondPartition makes a fresh ext2 filesystem on the sdcard's
// second partition.
func (mt *Maint) FormatSecondPartition() error {
	log.Msgln("Formatting 2nd partition (ext2)..")
	tool := &exttool.Tool{
		Path:     mke2fsBin,
		Args:     []string{secondPartDev},
		Progress: mt.Progress,
	}
	if _, err := tool.Run(); err != nil {
		return fmt.Errorf("formatting second partition: %w", err)
	}
	return nil
}
