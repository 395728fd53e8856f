// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package bcb reads and writes the bootloader control block, the fixed-layout
// record shared with the boot firmware. The record is the only state that
// survives a mid-operation reboot: the main system or the bootloader writes
// it to request a recovery action, recovery rewrites it while an operation is
// in flight, and the session finalizer zeroes it to declare "no operation
// pending" so the bootloader boots the main system normally.
package bcb

import (
	"bytes"
	"io"
	"os"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

// Field capacities, fixed by the layout shared with the bootloader. Content
// is NUL terminated within its field, so usable length is one less.
const (
	CommandLen  = 32
	StatusLen   = 32
	RecoveryLen = 1024

	// RecordLen is the whole-record size on the raw device.
	RecordLen = CommandLen + StatusLen + RecoveryLen
)

// Record is the decoded control block.
//
// Command is written by the main system ("boot-recovery") and read by the
// bootloader. Status is informational only; the bootloader writes it after a
// firmware update and nothing here ever sets it. Recovery carries the
// recovery command line: the literal first line "recovery" followed by one
// argument per line.
type Record struct {
	Command  string
	Status   string
	Recovery string
}

// Store accesses the record on a raw device. Reads and writes are always
// whole-record.
type Store struct {
	Device string
}

// Read returns the decoded record. It never fails the caller: on any error
// (missing device, short read) the failure is logged and an empty record is
// returned, which degrades safely to "no command pending".
func (s *Store) Read() (r Record) {
	f, err := os.Open(s.Device)
	if err != nil {
		log.Logf("bcb: open %s: %s", s.Device, err)
		return
	}
	defer f.Close()
	buf := make([]byte, RecordLen)
	if _, err = io.ReadFull(f, buf); err != nil {
		log.Logf("bcb: read %s: %s", s.Device, err)
		return
	}
	r.Command = decodeField(buf[:CommandLen])
	r.Status = decodeField(buf[CommandLen : CommandLen+StatusLen])
	r.Recovery = decodeField(buf[CommandLen+StatusLen:])
	return
}

// Write persists the record, whole-record. Oversized fields are truncated
// with a logged warning, never an error. A write failure is returned so the
// caller can log it; per the recovery contract it must not be treated as
// fatal - the next boot re-derives intent from the command file instead.
func (s *Store) Write(r Record) error {
	buf := make([]byte, RecordLen)
	encodeField(buf[:CommandLen], "command", r.Command)
	encodeField(buf[CommandLen:CommandLen+StatusLen], "status", r.Status)
	encodeField(buf[CommandLen+StatusLen:], "recovery", r.Recovery)
	f, err := os.OpenFile(s.Device, os.O_WRONLY, 0)
	if err != nil {
		log.Logf("bcb: open %s for write: %s", s.Device, err)
		return err
	}
	_, err = f.WriteAt(buf, 0)
	if err == nil {
		err = f.Sync()
	}
	cerr := f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		log.Logf("bcb: write %s: %s", s.Device, err)
	}
	return err
}

// Clear overwrites the record with an all-empty one - the statement "no
// operation pending".
func (s *Store) Clear() error {
	return s.Write(Record{})
}

// A field whose first byte is 0x00 or 0xFF is absent/uninitialized - flash
// erases to 0xFF - and must decode as empty, never as literal content.
func decodeField(b []byte) string {
	if len(b) == 0 || b[0] == 0x00 || b[0] == 0xFF {
		return ""
	}
	if i := bytes.IndexByte(b, 0x00); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func encodeField(dst []byte, name, val string) {
	max := len(dst) - 1 //room for NUL
	if len(val) > max {
		log.Logf("bcb: truncating %s field from %d to %d bytes", name, len(val), max)
		val = val[:max]
	}
	copy(dst, val)
}
