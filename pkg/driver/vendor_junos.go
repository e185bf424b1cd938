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

var junosSpec = &vendorSpec{
	kind: Junos,
	initCommands: []string{
		"set cli screen-length 0",
		"set cli screen-width 0",
		"set cli complete-on-space off",
		"set cli idle-timeout 0",
	},
	operationalPrompt: junosOperationalPrompt,
	configPrompt:      junosConfigPrompt,
	anyPrompt:         combinedPrompt(junosOperationalPrompt, junosConfigPrompt),
	enterConfigCmds:   []string{"configure"},
	commitCmds:        []string{"commit", "exit"},
	abortCmds:         []string{"rollback", "exit"},
	rollbackCmds: func(commitsBack int) []string {
		return []string{"configure", fmt.Sprintf("rollback %d", commitsBack), "commit", "exit"}
	},
	commitFailed: func(output []byte) bool {
		lower := bytes.ToLower(output)
		return bytes.Contains(lower, []byte("error:")) ||
			bytes.Contains(lower, []byte("failed")) ||
			bytes.Contains(lower, []byte("commit failed"))
	},
	info: DeviceInfo{DeviceKind: Junos, Vendor: "Juniper", OS: "JUNOS"},
}
