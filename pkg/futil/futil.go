// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package futil contains utility functions useful for dealing with files and
//dirs.
package futil

import (
	"io"
	"os"
	fp "path/filepath"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

//Waits for a path to appear, polling. Returns false if timeout elapses first.
//Block device nodes are not created instantaneously, so formatting a
//just-created partition needs this.
func WaitFor(path string, timeout time.Duration) (found bool) {
	deadline := time.Now().Add(timeout)
	for {
		_, err := os.Stat(path)
		if err == nil {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(100 * time.Millisecond)
	}
}

//Copy src to dest. extraFlags is or'd into the flags used to open dest -
//typically 0 or os.O_SYNC.
func CopyFile(src, dest string, extraFlags int) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|extraFlags, 0644)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, in)
	cerr := out.Close()
	if err == nil {
		err = cerr
	}
	return err
}

//Creates the dir hierarchy containing the given file path. Uses generous
//permissions; the main system resets them on next boot.
func MkdirForFile(path string) {
	dir := fp.Dir(path)
	if err := os.MkdirAll(dir, 0777); err != nil {
		log.Logf("creating %s: %s", dir, err)
	}
}
