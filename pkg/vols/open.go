// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package vols

import (
	"os"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/futil"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

// OpenRead opens the file a locator points at, mounting its volume first if
// necessary.
func OpenRead(m Manager, locator string) (*os.File, error) {
	path, err := resolve(m, locator)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// OpenWrite opens the file a locator points at for writing, mounting its
// volume if necessary and creating parent dirs with generous permissions
// (the main system resets them on next boot). With appnd false any prior
// content is truncated.
func OpenWrite(m Manager, locator string, appnd bool) (*os.File, error) {
	path, err := resolve(m, locator)
	if err != nil {
		return nil, err
	}
	futil.MkdirForFile(path)
	flags := os.O_WRONLY | os.O_CREATE
	if appnd {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0666)
}

// Remove deletes the file a locator points at. A file that does not exist
// counts as success.
func Remove(m Manager, locator string) error {
	path, err := resolve(m, locator)
	if err != nil {
		return err
	}
	if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func resolve(m Manager, locator string) (string, error) {
	vol, _, err := SplitLocator(locator)
	if err != nil {
		return "", err
	}
	if err = m.Mount(vol); err != nil {
		log.Logf("Can't mount %s: %s", vol, err)
		return "", err
	}
	return m.Translate(locator)
}
