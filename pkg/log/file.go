// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"fmt"
	"io"
	"os"
	fp "path/filepath"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

type fileLog struct {
	f    *os.File
	path string
	next StackableLogger
}

var _ StackableLogger = (*fileLog)(nil)

var EPrefix = fmt.Errorf("log prefix is unset")

// AddFileLog adds a fileLog to the stack. Existing events are inserted. Name
// is a combination of the prefix (GetPrefix) and the current time, via
// TimestampLayout. See also AddNamedFileLog.
func AddFileLog(dir string) (string, error) {
	prefix := GetPrefix()
	if prefix == "" {
		return "", EPrefix
	}
	err := os.Mkdir(dir, 0755)
	if err != nil && !os.IsExist(err) {
		return "", err
	}
	name := prefix + time.Now().Format(TimestampLayout) + ".log"
	path := fp.Join(dir, name)
	return AddNamedFileLog(path)
}

// AddNamedFileLog adds a fileLog to the stack like AddFileLog, but uses the
// specified name rather than coming up with one. Truncates an existing file.
func AddNamedFileLog(fname string) (string, error) {
	f, err := os.Create(fname)
	if err != nil {
		return "", err
	}
	return addFileSink(f, fname)
}

// AddTempLog attaches the session's temporary log file as a sink, opening in
// append mode. A recovery process restarted after a crash appends to the same
// file, so content survives until the finalizer has archived it.
func AddTempLog(fname string) (string, error) {
	f, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return "", err
	}
	return addFileSink(f, fname)
}

func addFileSink(f *os.File, fname string) (string, error) {
	fl := &fileLog{f: f, path: fname}
	err := AddLogger(fl, true)
	if err == nil {
		err = SetAttr("Filename", fname)
	}
	if err != nil {
		f.Close()
		return "", err
	}
	return fname, nil
}

func (fl *fileLog) AddEntry(e LogEntry) {
	if (e.Flags&flags.NotFile) == 0 && fl.f != nil {
		fmt.Fprintln(fl.f, e.String())
	}
	if fl.next != nil {
		fl.next.AddEntry(e)
	}
}

func (fl *fileLog) ForwardTo(sl StackableLogger) {
	if fl.next == nil || sl == nil {
		fl.next = sl
	} else {
		panic("next already set")
	}
}

const FileLogIdent = "fileLog"

func (*fileLog) Ident() string            { return FileLogIdent }
func (fl *fileLog) Next() StackableLogger { return fl.next }

func (fl *fileLog) Finalize() {
	if fl.f != nil {
		fl.f.Close()
		fl.f = nil
	}
	if fl.next != nil {
		fl.next.Finalize()
	}
}

var ENoFileLog = fmt.Errorf("no file log in stack")

// CopySince copies file-log content beginning at offset into w, returning the
// offset of the end of the copied region. Used by the session finalizer to
// append only log output produced since its last successful call. If no file
// sink is attached, returns the offset unchanged with ENoFileLog.
func CopySince(w io.Writer, offset int64) (int64, error) {
	logStackMtx.Lock()
	l := FindInStack(FileLogIdent)
	var path string
	if l != nil {
		path = l.(*fileLog).path
	}
	logStackMtx.Unlock()
	if path == "" {
		return offset, ENoFileLog
	}
	src, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer src.Close()
	if _, err = src.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	n, err := io.Copy(w, src)
	if err != nil {
		// retry starts over from the same offset; any bytes that did land
		// may appear twice in the destination
		return offset, err
	}
	return offset + n, nil
}
