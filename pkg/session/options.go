// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

package session

import (
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/chibucks/i5700-leshak-recovery2/pkg/log"
)

// Options are the flags decoded from a resolved command.
type Options struct {
	SendIntent    string //intent string to report back, written verbatim at finalize
	UpdatePackage string //volume-qualified package locator, empty if none
	WipeData      bool
	WipeCache     bool
}

// ParseOptions decodes args (the command minus its placeholder). Unknown
// options are logged and skipped, never fatal. Wiping data implies the cache
// is also stale, so --wipe_data sets both flags.
func ParseOptions(args []string) *Options {
	o := &Options{}
	fs := pflag.NewFlagSet("recovery", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.SendIntent, "send_intent", "", "intent to report at finalize")
	fs.StringVar(&o.UpdatePackage, "update_package", "", "package locator to install")
	fs.BoolVar(&o.WipeData, "wipe_data", false, "erase user data (and cache)")
	fs.BoolVar(&o.WipeCache, "wipe_cache", false, "erase cache")

	for _, a := range args {
		if !strings.HasPrefix(a, "--") {
			continue
		}
		name := strings.TrimPrefix(a, "--")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		if fs.Lookup(name) == nil {
			log.Logf("warning: ignoring unknown option %q", a)
		}
	}
	if err := fs.Parse(args); err != nil {
		log.Logf("warning: parsing options: %s", err)
	}
	if o.WipeData {
		o.WipeCache = true
	}
	return o
}
