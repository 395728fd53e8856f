// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package maint

import (
	"os"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// UsbMassStorage exposes a block device to the USB host via the gadget
// driver's lun file. One instance per session; the toggle is not
// process-global state.
type UsbMassStorage struct {
	LunFile    string
	BackingDev string
	enabled    bool
}

func NewUsbMassStorage() *UsbMassStorage {
	return &UsbMassStorage{
		LunFile:    strs.UsbLunFile(),
		BackingDev: strs.UsbBackingDev(),
	}
}

// Enable backs the gadget lun with the device, making it visible to the
// attached host.
func (u *UsbMassStorage) Enable() error {
	if err := os.WriteFile(u.LunFile, []byte(u.BackingDev+"\n"), 0644); err != nil {
		log.Logf("enabling usb storage: %s", err)
		return err
	}
	u.enabled = true
	log.Msgln("USB mass storage enabled.")
	return nil
}

// Disable detaches the backing device.
func (u *UsbMassStorage) Disable() error {
	if err := os.WriteFile(u.LunFile, []byte("\n"), 0644); err != nil {
		log.Logf("disabling usb storage: %s", err)
		return err
	}
	u.enabled = false
	log.Msgln("USB mass storage disabled.")
	return nil
}

func (u *UsbMassStorage) Enabled() bool { return u.enabled }

// Toggle flips the current state.
func (u *UsbMassStorage) Toggle() error {
	if u.enabled {
		return u.Disable()
	}
	return u.Enable()
}
