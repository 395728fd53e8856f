// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

// Control loop states.
const (
	StResolving  = "resolving"
	StExecuting  = "executing"
	StFinalizing = "finalizing"
	StPrompting  = "prompting"
	StRebooting  = "rebooting"
)

const (
	evResolved = "resolved"
	evExecuted = "executed"
	evPrompt   = "prompt"
	evFinalize = "finalize"
	evReboot   = "reboot"
)

// newMachine builds the loop's state machine. Only finalizing and prompting
// can cycle; every other transition is one-way.
func newMachine() *fsm.FSM {
	return fsm.NewFSM(StResolving,
		fsm.Events{
			{Name: evResolved, Src: []string{StResolving}, Dst: StExecuting},
			{Name: evExecuted, Src: []string{StExecuting}, Dst: StFinalizing},
			{Name: evPrompt, Src: []string{StFinalizing}, Dst: StPrompting},
			{Name: evFinalize, Src: []string{StPrompting}, Dst: StFinalizing},
			{Name: evReboot, Src: []string{StFinalizing}, Dst: StRebooting},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				log.Logf("session state: %s", e.Dst)
			},
		})
}

// Run drives one session: resolve, execute, finalize, then reboot - or, on
// error, hand off to the interactive prompt and finalize again once it
// returns. Does not return if a reboot is issued.
func (s *Session) Run(ctx context.Context, argv []string) error {
	log.Logf("session %s starting", s.ID)
	m := newMachine()

	cmd := Resolve(argv, s.Store, s.Vols)
	if err := m.Event(ctx, evResolved); err != nil {
		return err
	}
	opts := ParseOptions(cmd[1:])

	out := s.Execute(opts)
	if err := m.Event(ctx, evExecuted); err != nil {
		return err
	}
	s.Finish(opts.SendIntent)

	if out == InstallError {
		if err := m.Event(ctx, evPrompt); err != nil {
			return err
		}
		s.UI.NotifyProgress(ProgressError)
		s.UI.RunInteractivePrompt()
		if err := m.Event(ctx, evFinalize); err != nil {
			return err
		}
		s.Finish(opts.SendIntent)
	}

	if err := m.Event(ctx, evReboot); err != nil {
		return err
	}
	log.Msgln("Rebooting...")
	s.Reboot(out == InstallSuccess)
	return nil
}
