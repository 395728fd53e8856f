// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package maint

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

// InternalEntry selects booting from internal memory rather than a
// directory named in the boot list.
const InternalEntry = "internal"

// MaxBootEntries bounds the boot list.
const MaxBootEntries = 20

// nextBootScript is read by the boot wrapper on the following boot.
const nextBootScript = "next_step.rc"

// ListBootEntries reads the boot list from the sdcard: one directory name
// per line, each directory holding an init script. The internal entry is
// always first.
func (mt *Maint) ListBootEntries() ([]string, error) {
	f, err := vols.OpenRead(mt.Vols, strs.BootListFile())
	if err != nil {
		return nil, fmt.Errorf("boot list: %w", err)
	}
	defer f.Close()
	entries := []string{InternalEntry}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		e := strings.TrimSpace(sc.Text())
		if e == "" {
			continue
		}
		if len(entries) == MaxBootEntries {
			log.Logf("warning: boot list truncated at %d entries", MaxBootEntries)
			break
		}
		entries = append(entries, e)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("boot list: %w", err)
	}
	return entries, nil
}

// StageBootScript copies the chosen entry's init script to the next-boot
// location on the sdcard.
func (mt *Maint) StageBootScript(entry string) error {
	src := strs.SdcardVolName() + ":" + entry + "/init.rc"
	if entry == InternalEntry {
		src = strs.SdcardVolName() + ":internal_init.rc"
	}
	in, err := vols.OpenRead(mt.Vols, src)
	if err != nil {
		return fmt.Errorf("boot script: %w", err)
	}
	defer in.Close()
	out, err := vols.OpenWrite(mt.Vols, strs.SdcardVolName()+":"+nextBootScript, false)
	if err != nil {
		return fmt.Errorf("staging boot script: %w", err)
	}
	defer out.Close()
	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("staging boot script: %w", err)
	}
	log.Msgf("Will boot %s next.", entry)
	return nil
}
