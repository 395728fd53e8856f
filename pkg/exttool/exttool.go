// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

//Package exttool runs external binaries on behalf of maintenance operations.
//Short commands go through Simple(), which is interceptable in tests.
//Long-running tools use Tool, which polls for liveness and reports progress
//once per tick while the process runs.
package exttool

import (
	"bytes"
	"fmt"
	"os/exec"
	"time"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

// Tool describes one long-running external command.
type Tool struct {
	Path string
	Args []string
	Dir  string
	//called once per tick while the process is alive, with elapsed time
	Progress func(elapsed time.Duration)
	//poll interval; 1s if unset
	Tick time.Duration
}

// Result of a finished tool run.
type Result struct {
	Output   string
	ExitCode int
}

// Run starts the tool and blocks until it exits, invoking Progress per tick.
// A non-zero exit status is an error; the Result is returned either way so
// callers can log output.
func (t *Tool) Run() (res *Result, err error) {
	tick := t.Tick
	if tick == 0 {
		tick = time.Second
	}
	cmd := exec.Command(t.Path, t.Args...)
	cmd.Dir = t.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	log.Logf("run %v...", cmd.Args)
	start := time.Now()
	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", t.Path, err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case err = <-done:
			res = &Result{Output: buf.String()}
			if ee, ok := err.(*exec.ExitError); ok {
				res.ExitCode = ee.ExitCode()
			}
			if err != nil {
				log.Logf("%s exited after %s: %s\noutput:\n%s", t.Path,
					time.Since(start).Round(time.Millisecond), err, res.Output)
				return res, fmt.Errorf("%s: %w", t.Path, err)
			}
			log.Logf("%s done in %s", t.Path, time.Since(start).Round(time.Millisecond))
			return res, nil
		case <-ticker.C:
			if t.Progress != nil {
				t.Progress(time.Since(start))
			}
		}
	}
}

// Simple runs a short command through log.Cmd, so output is logged and test
// code can intercept the exec. Returns false on any failure.
func Simple(name string, args ...string) bool {
	_, ok := log.Cmd(exec.Command(name, args...))
	return ok
}
