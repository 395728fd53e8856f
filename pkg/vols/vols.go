// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package vols mounts, unmounts and formats the named storage volumes
// (CACHE, DATA, SYSTEM, SDCARD) and translates volume-qualified locators like
// "CACHE:recovery/command" to physical paths. The session engine only sees
// the Manager interface; Table is the on-device implementation.
package vols

import (
	"errors"
	"fmt"
	"strings"
)

// Manager is the facade the engine consumes. Implementations must make Mount
// idempotent - mounting a mounted volume succeeds - since every operation
// re-derives its own needs after a reboot.
type Manager interface {
	Mount(vol string) error
	Unmount(vol string) error
	Format(vol string) error
	//Translate resolves a "VOL:path" locator to a physical path. The volume
	//must be mounted first.
	Translate(locator string) (string, error)
	IsMounted(vol string) bool
}

var ErrBadLocator = errors.New("locator is not of the form VOLUME:path")

// SplitLocator splits "VOL:some/path" into volume name and path-within-
// volume. "VOL:" with an empty path is legal and refers to the volume root.
func SplitLocator(locator string) (vol, path string, err error) {
	i := strings.IndexByte(locator, ':')
	if i < 1 {
		return "", "", fmt.Errorf("%w: %q", ErrBadLocator, locator)
	}
	return locator[:i], locator[i+1:], nil
}
