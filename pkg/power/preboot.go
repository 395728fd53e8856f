// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package power

import (
	"fmt"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"

	"golang.org/x/sys/unix"
)

type TaskFun func(success bool)
type Task struct {
	Name string
	Func TaskFun
}
type TaskList struct{ tasks []*Task }

type TaskFilter func(t *Task) bool

//return subset of given list where filter matches (only positives)
func (tl *TaskList) Filter(filter TaskFilter) TaskList {
	var out TaskList
	for _, entry := range tl.tasks {
		if filter(entry) {
			out.tasks = append(out.tasks, entry)
		}
	}
	return out
}

//return subset of given list where filter does not match (remove positives)
func (tl *TaskList) FilterOut(filter TaskFilter) TaskList {
	//simply invert the filter
	return tl.Filter(func(t *Task) bool { return !filter(t) })
}

func (tl *TaskList) Perform(success bool) {
	//go through list, last first. Remove tasks as they are done.
	for {
		l := len(tl.tasks)
		if l == 0 {
			return
		}
		tl.tasks[l-1].Func(success)
		tl.tasks = tl.tasks[:l-1]
	}
}

func (tl *TaskList) Clear() { tl.tasks = nil }

func (tl *TaskList) Add(t *Task) {
	tl.tasks = append(tl.tasks, t)
}
func (tl *TaskList) AddFirst(t *Task) {
	tl.tasks = append([]*Task{t}, tl.tasks...)
}

//Adds to the list functions to finish the log, unmount filesystems, and sync
//disks. These functions are always inserted at the beginning of the list.
//To avoid an import cycle, the unmount function must be passed in.
func AddPrebootDefaults(unmountFunc func(bool)) {
	// These must be the _last_ things run, so we add them at the beginning of
	// the list. Added in reverse order.
	RemovePrebootDefaults()
	Preboots.AddFirst(&Task{Name: "log.Finalize", Func: func(_ bool) { log.Finalize() }})
	Preboots.AddFirst(&Task{Name: "umount", Func: func(success bool) {
		if unmountFunc != nil {
			unmountFunc(success)
		}
	}})
	Preboots.AddFirst(&Task{Name: "sync", Func: func(_ bool) {
		fmt.Println("Flushing disk cache...")
		ss := time.Now()
		unix.Sync()
		fmt.Printf("sync: %s\n", time.Since(ss))
	}})
}

func RemovePrebootDefaults() {
	Preboots = Preboots.FilterOut(func(t *Task) bool {
		switch t.Name {
		case "umount":
			return true
		case "sync":
			return true
		case "log.Finalize":
			return true
		}
		return false
	})
}

var Preboots TaskList
