// Copyright (C) 2026 the recovery2 Authors. All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// SPDX-License-Identifier: BSD-3-Clause
//

// Package flags holds log event flags. Broken out into its own package so
// that log sinks in other packages can filter events without importing log.
package flags

type Flag uint32

const (
	// NA - no flags; an ordinary technical log line.
	NA Flag = 0
	// EndUser marks short messages meant for display on the device screen.
	EndUser Flag = 1 << iota
	// Fatal marks the final event before the process terminates.
	Fatal
	// NotFile marks events that must not be written to file sinks.
	NotFile
)
