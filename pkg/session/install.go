// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
	"github.com/chibucks/i5700-leshak-recovery2/pkg/strs"
)

// Execute runs the one operation the options request. Exactly one branch
// fires: package install, wipes, or - with nothing requested - InstallError,
// which routes the loop to the interactive prompt.
func (s *Session) Execute(o *Options) Outcome {
	switch {
	case o.UpdatePackage != "":
		log.Msgf("Installing %s...", o.UpdatePackage)
		s.UI.NotifyProgress(ProgressInstalling)
		res := s.Installer.Install(o.UpdatePackage)
		log.Msgf("Install: %s", res)
		return res
	case o.WipeData || o.WipeCache:
		return s.wipe(o)
	}
	log.Logln("no command specified")
	return InstallError
}

// wipe erases the requested volumes, data before cache. The erases are
// independent: a failed data wipe does not stop the cache wipe, and the
// outcome is InstallError if either failed.
func (s *Session) wipe(o *Options) Outcome {
	out := InstallSuccess
	if o.WipeData {
		if err := s.erase(strs.DataVolName()); err != nil {
			out = InstallError
		}
	}
	if o.WipeCache {
		if err := s.erase(strs.CacheVolName()); err != nil {
			out = InstallError
		}
	}
	if out == InstallSuccess {
		log.Msgln("Wipe complete.")
	}
	return out
}

func (s *Session) erase(vol string) error {
	log.Msgf("Formatting %s...", vol)
	s.UI.NotifyProgress(ProgressFormatting)
	err := s.Vols.Format(vol)
	if err != nil {
		log.Logf("formatting %s: %s", vol, err)
	}
	return err
}
