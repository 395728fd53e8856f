// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log_test

import (
	"bytes"
	"os"
	fp "path/filepath"
	"testing"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

func TestFileLog(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack() //cleanup when test is done
	T, err := time.Parse("2006", "1999")
	if err != nil {
		t.Fatal(err)
	}
	e := log.LogEntry{
		Time:  T,
		Msg:   "interesting event",
		Flags: flags.EndUser,
	}
	stack := log.Stack()
	stack.AddEntry(e)
	//add another event, this time one that should not make it into the file
	e.Time = T.Add(time.Minute)
	e.Msg = "sensitive event"
	e.Flags = flags.EndUser | flags.NotFile
	stack.AddEntry(e)
	entries := log.StoredEntries()
	if len(entries) != 2 {
		t.Error("wrong entries", entries)
	}

	tmp := t.TempDir()
	log.SetPrefix("gotest")
	_, err = log.AddFileLog(tmp)
	if err != nil {
		t.Fatal(err)
	}
	log.Finalize()
	fn, success := log.GetAttr("Filename")
	if !success {
		t.Error("no Filename attr")
	}
	want := "-- 19990101_0000 -- interesting event\n"
	buf, err := os.ReadFile(fn.(string))
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != want {
		t.Errorf("file:\nwant %q\ngot  %q", want, string(buf))
	}
}

//func CopySince(w io.Writer, offset int64) (int64, error)
func TestCopySince(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack()
	tmp := fp.Join(t.TempDir(), "recovery.log")
	if _, err := log.AddTempLog(tmp); err != nil {
		t.Fatal(err)
	}
	log.Log("first")

	var dest bytes.Buffer
	off, err := log.CopySince(&dest, 0)
	if err != nil {
		t.Fatal(err)
	}
	if off == 0 {
		t.Error("offset did not advance")
	}
	if !bytes.Contains(dest.Bytes(), []byte("first")) {
		t.Errorf("missing content: %q", dest.String())
	}

	//nothing new: offset must not advance, nothing appended
	mark := dest.Len()
	off2, err := log.CopySince(&dest, off)
	if err != nil {
		t.Fatal(err)
	}
	if off2 != off || dest.Len() != mark {
		t.Errorf("second copy reappended: off %d->%d len %d->%d", off, off2, mark, dest.Len())
	}

	//new content after the offset is picked up
	log.Log("second")
	off3, err := log.CopySince(&dest, off2)
	if err != nil {
		t.Fatal(err)
	}
	if off3 <= off2 {
		t.Error("offset did not advance for new content")
	}
	tail := dest.Bytes()[mark:]
	if !bytes.Contains(tail, []byte("second")) || bytes.Contains(tail, []byte("first")) {
		t.Errorf("bad tail %q", string(tail))
	}
}

//append mode: a restarted process must not clobber the previous temp log
func TestTempLogAppends(t *testing.T) {
	log.DefaultLogStack()
	defer log.DefaultLogStack()
	tmp := fp.Join(t.TempDir(), "recovery.log")
	if err := os.WriteFile(tmp, []byte("earlier process\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := log.AddTempLog(tmp); err != nil {
		t.Fatal(err)
	}
	log.Log("this process")
	log.Finalize()
	buf, err := os.ReadFile(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf, []byte("earlier process")) || !bytes.Contains(buf, []byte("this process")) {
		t.Errorf("bad temp log content %q", string(buf))
	}
}
