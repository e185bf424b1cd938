// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"bytes"
	"fmt"
)

var iosxrSpec = &vendorSpec{
	kind: IOSXR,
	initCommands: []string{
		"terminal length 0",
		"terminal width 0",
		"terminal exec prompt no-timestamp",
		"terminal monitor disable",
	},
	operationalPrompt: iosxrOperationalPrompt,
	configPrompt:      iosxrConfigPrompt,
	anyPrompt:         combinedPrompt(iosxrOperationalPrompt, iosxrConfigPrompt),
	enterConfigCmds:   []string{"configure terminal"},
	commitCmds:        []string{"commit", "end"},
	abortCmds:         []string{"abort", "end"},
	rollbackCmds: func(commitsBack int) []string {
		return []string{fmt.Sprintf("rollback configuration last %d", commitsBack)}
	},
	commitFailed: func(output []byte) bool {
		lower := bytes.ToLower(output)
		return bytes.Contains(lower, []byte("% error")) ||
			bytes.Contains(lower, []byte("failed")) ||
			bytes.Contains(lower, []byte("commit failed")) ||
			bytes.Contains(lower, []byte("% invalid"))
	},
	info: DeviceInfo{DeviceKind: IOSXR, Vendor: "Cisco", OS: "IOS XR"},
}
