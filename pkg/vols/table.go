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
	"os/exec"
	fp "path/filepath"
	"strings"
	"time"

	"github.com/u-root/u-root/pkg/mount"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/futil"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// Volume describes one named storage root.
type Volume struct {
	Name       string
	Device     string //absolute path, such as /dev/block/mmcblk0p3
	MountPoint string
	FsType     string
	MountOpts  string
	mounted    bool
}

// Table is the Linux Manager implementation.
type Table struct {
	vols map[string]*Volume
}

var _ Manager = (*Table)(nil)

// NewTable builds a Table from the given volumes.
func NewTable(volumes ...Volume) *Table {
	t := &Table{vols: make(map[string]*Volume)}
	for i := range volumes {
		v := volumes[i]
		t.vols[v.Name] = &v
	}
	return t
}

// DefaultTable returns the device's volume table.
func DefaultTable() *Table {
	return NewTable(
		Volume{Name: strs.SystemVolName(), Device: "/dev/block/mmcblk0p1", MountPoint: "/system", FsType: "ext4", MountOpts: "relatime"},
		Volume{Name: strs.DataVolName(), Device: "/dev/block/mmcblk0p2", MountPoint: "/data", FsType: "ext4", MountOpts: "relatime"},
		Volume{Name: strs.CacheVolName(), Device: "/dev/block/mmcblk0p3", MountPoint: "/cache", FsType: "ext4", MountOpts: "relatime"},
		Volume{Name: strs.SdcardVolName(), Device: "/dev/block/mmcblk1p1", MountPoint: "/sdcard", FsType: "vfat", MountOpts: ""},
	)
}

var ErrUnknownVolume = fmt.Errorf("unknown volume")

func (t *Table) get(vol string) (*Volume, error) {
	v, ok := t.vols[vol]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVolume, vol)
	}
	return v, nil
}

func (t *Table) Mount(vol string) error {
	v, err := t.get(vol)
	if err != nil {
		return err
	}
	if v.mounted {
		return nil
	}
	if err = os.MkdirAll(v.MountPoint, 0700); err != nil {
		log.Logln(err)
	}
	// Try u-root's Mount(). If this reports an error try the mount binary -
	// FUSE types are not mountable via the syscall.
	_, err = mount.Mount(v.Device, v.MountPoint, v.FsType, v.MountOpts, 0)
	if err == nil {
		log.Logf("mount %s on %s", v.Device, v.MountPoint)
		v.mounted = true
		return nil
	}
	log.Logf("u-root mount failed with %s, trying binary...", err)
	mnt := exec.Command("mount", v.Device, v.MountPoint, "-t", v.FsType)
	if v.MountOpts != "" {
		mnt.Args = append(mnt.Args, "-o", v.MountOpts)
	}
	if _, ok := log.Cmd(mnt); !ok {
		return fmt.Errorf("mounting %s on %s failed", v.Device, v.MountPoint)
	}
	v.mounted = true
	return nil
}

func (t *Table) Unmount(vol string) error {
	v, err := t.get(vol)
	if err != nil {
		return err
	}
	if !v.mounted {
		log.Logf("umount: %s not mounted", v.Name)
		return nil
	}
	if err = mount.Unmount(v.MountPoint, false, true); err != nil {
		log.Logf("umount %s: %s", v.Name, err)
		return err
	}
	log.Logf("umount %s", v.Name)
	v.mounted = false
	return nil
}

// Format reformats the volume's device. A mounted volume is unmounted
// first. Runs mkdosfs for vfat, mke2fs otherwise.
func (t *Table) Format(vol string) error {
	v, err := t.get(vol)
	if err != nil {
		return err
	}
	if v.mounted {
		if err = t.Unmount(vol); err != nil {
			return err
		}
	}
	if !futil.WaitFor(v.Device, 5*time.Second) {
		log.Logf("warning - device %s has not appeared", v.Device)
	}
	log.Logf("formatting %s (%s) as %s", v.Name, v.Device, v.FsType)
	var mkfs *exec.Cmd
	if v.FsType == "vfat" {
		mkfs = exec.Command("mkdosfs", "-n", strings.ToLower(v.Name), v.Device)
	} else {
		mkfs = exec.Command("mke2fs", "-L", strings.ToLower(v.Name), "-t", v.FsType, v.Device)
	}
	if _, ok := log.Cmd(mkfs); !ok {
		return fmt.Errorf("formatting %s failed", v.Name)
	}
	return nil
}

func (t *Table) Translate(locator string) (string, error) {
	vol, path, err := SplitLocator(locator)
	if err != nil {
		return "", err
	}
	v, err := t.get(vol)
	if err != nil {
		return "", err
	}
	return fp.Join(v.MountPoint, path), nil
}

func (t *Table) IsMounted(vol string) bool {
	v, err := t.get(vol)
	if err != nil {
		return false
	}
	return v.mounted
}

// UnmountAll unmounts every mounted volume, for use before reboot.
func (t *Table) UnmountAll() {
	log.Logf("Unmount all volumes")
	for name := range t.vols {
		if t.vols[name].mounted {
			_ = t.Unmount(name)
		}
	}
}
