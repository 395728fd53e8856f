// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"os"

	"github.com/ulikunitz/xz"
	"golang.org/x/sys/unix"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

// MaxPersistLog bounds the persistent log; above this it is compressed to a
// sidecar and restarted.
const MaxPersistLog = 1 << 18

// Finish clears pending-operation state and archives logs. Idempotent - each
// step is best-effort and calling twice is observably the same as once, apart
// from any temp-log bytes appended between the calls.
//
// Called once before entering the interactive prompt, so a power cycle while
// the prompt waits is still safe, and once at normal exit.
func (s *Session) Finish(intent string) {
	if intent != "" {
		s.writeIntent(intent)
	}
	s.appendLogs()
	if err := s.Store.Clear(); err != nil {
		log.Logf("clearing control record: %s", err)
	}
	if err := vols.Remove(s.Vols, strs.CommandFile()); err != nil {
		log.Logf("removing command file: %s", err)
	}
	unix.Sync()
}

func (s *Session) writeIntent(intent string) {
	f, err := vols.OpenWrite(s.Vols, strs.IntentFile(), false)
	if err != nil {
		log.Logf("writing intent: %s", err)
		return
	}
	defer f.Close()
	if _, err = f.WriteString(intent); err != nil {
		log.Logf("writing intent: %s", err)
	}
}

// appendLogs copies temp-log bytes produced since the last successful append
// to the persistent log. The offset advances only on success, so a failed
// append is retried from the same place on the next call. It is per-process:
// a fresh process restarts at zero and may re-copy at most one process's
// worth of temp log after a crash.
func (s *Session) appendLogs() {
	f, err := vols.OpenWrite(s.Vols, strs.LogFile(), true)
	if err != nil {
		log.Logf("opening persistent log: %s", err)
		return
	}
	if fi, serr := f.Stat(); serr == nil && fi.Size() > MaxPersistLog {
		path := f.Name()
		f.Close()
		if rerr := s.rotateLog(path); rerr != nil {
			log.Logf("rotating persistent log: %s", rerr)
		}
		if f, err = vols.OpenWrite(s.Vols, strs.LogFile(), true); err != nil {
			log.Logf("reopening persistent log: %s", err)
			return
		}
	}
	defer f.Close()
	off, err := log.CopySince(f, s.logOffset)
	if err != nil {
		log.Logf("copying temp log: %s", err)
	}
	s.logOffset = off
}

// rotateLog compresses the oversized persistent log to a .1.xz sidecar and
// truncates the original.
func (s *Session) rotateLog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rf, err := vols.OpenWrite(s.Vols, strs.LogFile()+".1.xz", false)
	if err != nil {
		return err
	}
	defer rf.Close()
	xw, err := xz.NewWriter(rf)
	if err != nil {
		return err
	}
	if _, err = xw.Write(data); err != nil {
		return err
	}
	if err = xw.Close(); err != nil {
		return err
	}
	log.Logf("rotated %d-byte persistent log", len(data))
	return os.Truncate(path, 0)
}
