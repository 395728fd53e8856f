// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package log

// memLog retains events in memory so they can be replayed into sinks attached
// later (file, console). It is the default bottom of every log stack.
type memLog struct {
	entries []LogEntry
	next    StackableLogger
}

var _ StackableLogger = (*memLog)(nil)

const MemLogIdent = "memLog"

func (ml *memLog) AddEntry(e LogEntry) {
	ml.entries = append(ml.entries, e)
	if ml.next != nil {
		ml.next.AddEntry(e)
	}
}

func (ml *memLog) ForwardTo(sl StackableLogger) {
	if ml.next == nil || sl == nil {
		ml.next = sl
	} else {
		panic("next already set")
	}
}

func (*memLog) Ident() string            { return MemLogIdent }
func (ml *memLog) Next() StackableLogger { return ml.next }

func (ml *memLog) Finalize() {
	if ml.next != nil {
		ml.next.Finalize()
	}
}

// Entries returns a copy of the retained events.
func (ml *memLog) Entries() []LogEntry {
	out := make([]LogEntry, len(ml.entries))
	copy(out, ml.entries)
	return out
}

// StoredEntries returns the events retained by the memLog in the stack, or
// nil if there is none.
func StoredEntries() []LogEntry {
	logStackMtx.Lock()
	defer logStackMtx.Unlock()
	l := FindInStack(MemLogIdent)
	if l == nil {
		return nil
	}
	return l.(*memLog).Entries()
}
