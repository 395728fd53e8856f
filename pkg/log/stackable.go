// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

import (
	"fmt"
	"sync"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log/flags"
)

// A type of logger which can be chained/stacked, each adding different
// functionality. Events can go to the console, to a file, or just into
// memory - and this is transparent to the caller.
//
// Normal logging goes through non-member functions in this package - Logf,
// Msgf, Fatalf, etc. Callers do not need to know the details here.
type StackableLogger interface {
	//Add an entry to the log. Must call the same method on the next log in
	// the stack (if not nil).
	AddEntry(e LogEntry)

	// Chains one logger to another. It is an error to call this method on a
	// logger to which another has already been chained.
	ForwardTo(StackableLogger)

	// Returns a string identifying the type of logger, used to ensure there
	// are no duplicates in the stack.
	Ident() string

	// Returns next StackableLogger or nil.
	Next() StackableLogger

	// Finalizes any outstanding entries and releases resources (close file,
	// etc). Must call the same method on the next log in the stack (if not
	// nil).
	Finalize()
}

// Top logger on the stack. Any function accessing logStack or walking it via
// Next() MUST honor logStackMtx.
var logStack StackableLogger = &memLog{}

// Mutex protecting logStack. Must be locked while changing the stack or
// adding entries.
var logStackMtx sync.Mutex

type stackErr struct {
	Id string
}

func (se *stackErr) Error() string {
	return fmt.Sprintf("Duplicate logger %s in stack", se.Id)
}

// Flushes data, closes files, etc.
func Finalize() {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	logStack.Finalize()
}

// Restores the log stack to initial state. Calls Finalize on existing
// logger(s), then replaces the existing stack with a memLog.
func DefaultLogStack() { NewLogStack(&memLog{}) }

//Calls Finalize on existing logger(s), then sets newLog as the topmost logger.
func NewLogStack(newLog StackableLogger) {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	if logStack != nil {
		logStack.Finalize()
	}
	logStack = newLog
	ClearAttrs()
}

// Returns the topmost logger. Exposed so tests in other packages can insert
// entries with known timestamps.
func Stack() StackableLogger {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	return logStack
}

// Add a logger to the stack. Anything that requires initialization must
// already be initialized. If addPrevious is true, events already stored in a
// memLog are replayed into this logger.
//
// Callers should prefer the AddXLog() functions - AddFileLog(),
// AddConsoleLog(), etc. The only possible error is if the new logger is the
// same type as an existing one.
func AddLogger(sl StackableLogger, addPrevious bool) error {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	if addPrevious {
		addPreviousEvents(sl, logStack)
	}
	sl.ForwardTo(logStack)
	err := ForwardFrom(sl, logStack)
	if err == nil {
		logStack = sl
	}
	return err
}

// Verifies that the new logger is not a duplicate of another in the stack.
// Called by AddLogger. Recursive.
func ForwardFrom(newLogger, sl StackableLogger) error {
	if newLogger.Ident() == sl.Ident() {
		return &stackErr{Id: sl.Ident()}
	}
	next := sl.Next()
	if next != nil {
		return ForwardFrom(newLogger, next)
	}
	return nil
}

// LogEntry is the record type for StackableLogger.
type LogEntry struct {
	Time  time.Time `json:"t"`
	Msg   string
	Args  []interface{} `json:",omitempty"`
	Flags flags.Flag    `json:",omitempty"`
}

// Backend of Logf(), Msgf(), Fatalf(), etc. Translates args to a LogEntry and
// inserts it into the topmost log.
func FlaggedLogf(opts flags.Flag, f string, va ...interface{}) {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	logStack.AddEntry(LogEntry{
		Time:  time.Now(),
		Flags: opts,
		Msg:   f,
		Args:  va,
	})
}

func (le *LogEntry) String() string {
	var div string
	switch {
	case le.Flags&flags.EndUser != 0:
		div = "-- "
	case le.Flags&flags.Fatal != 0:
		div = "!! "
	case le.Flags == 0:
		div = "*- "
	default:
		div = "?? "
	}
	f := div + le.Time.Format(TimestampLayout) + " " + div + le.Msg
	return fmt.Sprintf(f, le.Args...)
}

// Looks for a memLog in the stack and inserts all its entries into the new
// log, before the new log is attached to the stack.
func addPreviousEvents(newlog, current StackableLogger) {
	_, isMem := newlog.(*memLog)
	if isMem {
		//should only be one memLog, so we'd be copying to ourselves
		return
	}
	ml := FindInStack(MemLogIdent)
	if ml != nil {
		mem, ok := ml.(*memLog)
		if ok {
			for _, e := range mem.Entries() {
				newlog.AddEntry(e)
			}
		}
	}
}

// Return true if a log in the stack matches given id
func InStack(id string) bool {
	return FindInStack(id) != nil
}

// Return StackableLogger matching id, or nil
func FindInStack(id string) StackableLogger {
	l := logStack
	for l != nil {
		if l.Ident() == id {
			return l
		}
		l = l.Next()
	}
	return nil
}
