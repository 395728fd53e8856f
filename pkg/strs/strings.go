// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Abstraction for strings that implementors will likely wish to change.
package strs

//Abstraction for strings that implementors will likely wish to change.
//Defaults match the Samsung i5700 (Spica) recovery image.
type Stringer interface {
	//Raw device holding the bootloader control block.
	BCBDevice() string
	//Locator of the command file written by the main system.
	CommandFile() string
	//Locator of the intent report consumed by the main system after reboot.
	IntentFile() string
	//Locator of the persistent log on the cache volume.
	LogFile() string
	//Path of the session's temporary log.
	TmpLogPath() string
	//Names of the well-known volumes.
	CacheVolName() string
	DataVolName() string
	SystemVolName() string
	SdcardVolName() string
	//Locator of the conventional update package on removable media.
	SdcardPackage() string
	//Directory on the sdcard used for tar backups.
	BackupDir() string
	//Locator of the boot-list file on removable media.
	BootListFile() string
	//Sysfs file controlling the USB mass-storage gadget backing store.
	UsbLunFile() string
	//Block device exported when USB mass storage is enabled.
	UsbBackingDev() string
}

var stringImpl Stringer

//Override defaults.
func SetStringer(b Stringer) {
	stringImpl = b
}

//Raw device holding the bootloader control block.
func BCBDevice() string {
	if stringImpl != nil {
		return stringImpl.BCBDevice()
	}
	return "/dev/block/misc"
}

//Locator of the command file written by the main system.
func CommandFile() string {
	if stringImpl != nil {
		return stringImpl.CommandFile()
	}
	return "CACHE:recovery/command"
}

//Locator of the intent report consumed by the main system after reboot.
func IntentFile() string {
	if stringImpl != nil {
		return stringImpl.IntentFile()
	}
	return "CACHE:recovery/intent"
}

//Locator of the persistent log on the cache volume.
func LogFile() string {
	if stringImpl != nil {
		return stringImpl.LogFile()
	}
	return "CACHE:recovery/log"
}

//Path of the session's temporary log.
func TmpLogPath() string {
	if stringImpl != nil {
		return stringImpl.TmpLogPath()
	}
	return "/tmp/recovery.log"
}

//Name of the cache volume.
func CacheVolName() string {
	if stringImpl != nil {
		return stringImpl.CacheVolName()
	}
	return "CACHE"
}

//Name of the user data volume.
func DataVolName() string {
	if stringImpl != nil {
		return stringImpl.DataVolName()
	}
	return "DATA"
}

//Name of the system volume.
func SystemVolName() string {
	if stringImpl != nil {
		return stringImpl.SystemVolName()
	}
	return "SYSTEM"
}

//Name of the removable media volume.
func SdcardVolName() string {
	if stringImpl != nil {
		return stringImpl.SdcardVolName()
	}
	return "SDCARD"
}

//Locator of the conventional update package on removable media.
func SdcardPackage() string {
	if stringImpl != nil {
		return stringImpl.SdcardPackage()
	}
	return "SDCARD:update.zip"
}

//Directory on the sdcard used for tar backups.
func BackupDir() string {
	if stringImpl != nil {
		return stringImpl.BackupDir()
	}
	return "samdroid"
}

//Locator of the boot-list file on removable media.
func BootListFile() string {
	if stringImpl != nil {
		return stringImpl.BootListFile()
	}
	return "SDCARD:.bootlst"
}

//Sysfs file controlling the USB mass-storage gadget backing store.
func UsbLunFile() string {
	if stringImpl != nil {
		return stringImpl.UsbLunFile()
	}
	return "/sys/devices/platform/s3c6410-usbgadget/gadget/lun0/file"
}

//Block device exported when USB mass storage is enabled.
func UsbBackingDev() string {
	if stringImpl != nil {
		return stringImpl.UsbBackingDev()
	}
	return "/dev/block/mmcblk0p1"
}
