// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import "regexp"

// vendorSpec is the capability record a vendor driver supplies to the base
// driver: init commands, both mode prompts, the commit-failure predicate,
// and the command lists for each multi-step operation. This plays the
// role inheritance from a base class would play in the source language;
// here it is plain data plus closures, keeping the state machine itself
// monomorphic over DeviceKind.
type vendorSpec struct {
	kind              DeviceKind
	initCommands      []string
	operationalPrompt *regexp.Regexp
	configPrompt      *regexp.Regexp
	anyPrompt         *regexp.Regexp
	enterConfigCmds   []string
	commitCmds        []string
	abortCmds         []string
	rollbackCmds      func(commitsBack int) []string
	commitFailed      func(output []byte) bool
	info              DeviceInfo
}

// newVendorSpec looks up the vendor specialization for kind, returning
// UnsupportedDeviceKindError if none is registered.
func newVendorSpec(kind DeviceKind) (*vendorSpec, error) {
	switch kind {
	case Junos:
		return junosSpec, nil
	case IOSXR:
		return iosxrSpec, nil
	default:
		return nil, &UnsupportedDeviceKindError{Kind: kind}
	}
}
