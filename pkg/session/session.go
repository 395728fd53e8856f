// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"github.com/google/uuid"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/bcb"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/power"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/vols"
)

// Outcome of one session's work.
type Outcome int

const (
	InstallSuccess Outcome = iota
	InstallError
)

func (o Outcome) String() string {
	if o == InstallSuccess {
		return "success"
	}
	return "error"
}

// Installer verifies and applies an update package. Implemented elsewhere;
// the engine only consumes the outcome.
type Installer interface {
	Install(locator string) Outcome
}

// Progress states passed to UI.NotifyProgress.
const (
	ProgressInstalling = "installing"
	ProgressFormatting = "formatting"
	ProgressError      = "error"
)

// UI is the interactive collaborator: progress display plus the prompt the
// loop hands off to when there is nothing to do or something failed.
type UI interface {
	NotifyProgress(state string)
	RunInteractivePrompt()
}

// Session is one execution of the recovery program, from start to either
// reboot or interactive handoff. State that the original kept process-global
// (the log append offset) lives here instead.
type Session struct {
	ID        string
	Store     *bcb.Store
	Vols      vols.Manager
	Installer Installer
	UI        UI

	//reboot request; injectable for tests
	Reboot func(success bool)

	//bytes of the temp log already persisted; advances only on success
	logOffset int64
}

// New assembles a session around its collaborators.
func New(store *bcb.Store, m vols.Manager, inst Installer, ui UI) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Store:     store,
		Vols:      m,
		Installer: inst,
		UI:        ui,
		Reboot:    power.Reboot,
	}
}
