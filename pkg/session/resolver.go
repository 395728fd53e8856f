// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package session implements the recovery session engine: command resolution,
//install orchestration, idempotent finalization, and the control loop tying
//them together. Collaborators it only consumes (the installer, the
//interactive prompt) are interfaces.
package session

import (
	"bufio"
	"io"
	"strings"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

const (
	// MaxArgs bounds the number of arguments accepted from the control
	// record or the command file. Extra lines are dropped with a warning.
	MaxArgs = 100
	// MaxArgLen bounds the length of a single argument line. Longer lines
	// are truncated, not rejected.
	MaxArgLen = 4096
)

// First line of a usable recovery field, and the command value the boot
// firmware checks for.
const (
	recoveryHdr = "recovery"
	bootCommand = "boot-recovery"
)

// Resolve merges the three command sources by precedence into one argument
// list: explicit args beyond argv[0] win outright, then the control record's
// recovery field, then the command file on cache. Resolution is total - with
// no source the result is just the placeholder.
//
// Regardless of which source fired, the resolved arguments are committed back
// to the control record before returning. A reboot at any later point re-enters
// with the same command via the record.
func Resolve(argv []string, store *bcb.Store, m vols.Manager) []string {
	placeholder := recoveryHdr
	if len(argv) > 0 {
		placeholder = argv[0]
	}
	cmd := []string{placeholder}

	rec := store.Read()
	if rec.Command != "" {
		log.Logf("boot command: %s", rec.Command)
	}
	if rec.Status != "" {
		log.Logf("boot status: %s", rec.Status)
	}
	if len(argv) > 1 {
		cmd = append(cmd, argv[1:]...)
		log.Logf("command from invocation args")
	} else if ra := recordArgs(rec); len(ra) > 0 {
		cmd = append(cmd, ra...)
		log.Logf("command from control record")
	} else if fromFile := commandFileArgs(m); len(fromFile) > 0 {
		cmd = append(cmd, fromFile...)
		log.Logf("command from %s", strs.CommandFile())
	}

	// Commit before doing any work, so an interrupted session resumes
	// rather than silently booting the main system.
	rec.Command = bootCommand
	rec.Recovery = recoveryHdr + "\n"
	for _, a := range cmd[1:] {
		rec.Recovery += a + "\n"
	}
	if err := store.Write(rec); err != nil {
		// Not escalated - the command file, if any, still covers a reboot.
		log.Logf("committing control record: %s", err)
	}
	return cmd
}

// recordArgs extracts arguments from the recovery field. A header with no
// argument lines yields none, so the command file still gets consulted.
func recordArgs(rec bcb.Record) []string {
	lines := strings.Split(rec.Recovery, "\n")
	if len(lines) == 0 || lines[0] != recoveryHdr {
		if rec.Recovery != "" {
			log.Logf("bad boot message %q", rec.Recovery)
		}
		return nil
	}
	var args []string
	for _, l := range lines[1:] {
		if l == "" {
			continue
		}
		args = append(args, l)
	}
	return bound(args)
}

// commandFileArgs reads the command file line-oriented, mounting its volume
// as needed. Any failure degrades to "no arguments".
func commandFileArgs(m vols.Manager) []string {
	f, err := vols.OpenRead(m, strs.CommandFile())
	if err != nil {
		log.Logf("no command file: %s", err)
		return nil
	}
	defer f.Close()
	return readBoundedLines(f)
}

// readBoundedLines reads up to MaxArgs newline-terminated lines, truncating
// each at MaxArgLen. Oversize lines and excess lines warn but never fail.
func readBoundedLines(r io.Reader) (args []string) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			if len(line) > MaxArgLen {
				log.Logf("warning: truncating %d-byte argument line", len(line))
				line = line[:MaxArgLen]
			}
			if len(args) == MaxArgs {
				log.Logf("warning: ignoring arguments beyond %d", MaxArgs)
				return
			}
			args = append(args, line)
		}
		if err != nil {
			return
		}
	}
}

// bound applies MaxArgs/MaxArgLen to an already-split argument list.
func bound(in []string) []string {
	if len(in) > MaxArgs {
		log.Logf("warning: ignoring arguments beyond %d", MaxArgs)
		in = in[:MaxArgs]
	}
	out := make([]string, 0, len(in))
	for _, a := range in {
		if len(a) > MaxArgLen {
			log.Logf("warning: truncating %d-byte argument", len(a))
			a = a[:MaxArgLen]
		}
		out = append(out, a)
	}
	return out
}
