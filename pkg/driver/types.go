// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package driver implements the per-session device driver state machine:
// prompt recognition, output extraction, and the command/configure/commit/
// rollback sequencing protocol for JUNOS and IOS XR CLI sessions.
package driver

// DeviceKind identifies a vendor CLI family.
type DeviceKind string

const (
	Junos DeviceKind = "JUNOS"
	IOSXR DeviceKind = "IOSXR"
)

// DeviceInfo is the static identity of a device kind, returned by
// GetDeviceInfo.
type DeviceInfo struct {
	DeviceKind DeviceKind
	Vendor     string
	OS         string
}

// CommandCallback is invoked exactly once by ExecuteCommand, either
// synchronously (precondition failure) or from within HandleData.
type CommandCallback func(err error, response string)

// ConfigCallback is invoked exactly once by ConfigureAndCommit or
// RollbackConfiguration, either synchronously (precondition failure) or
// from within HandleData.
type ConfigCallback func(err error, sessionLog string)

// Transport is the duplex byte-stream seam the driver requires of its
// caller. Send reports false iff the chunk could not be queued; the
// transport is responsible for delivering inbound bytes to the driver's
// HandleData, in order, one chunk at a time, with no byte loss while the
// session is live.
type Transport interface {
	Send(b []byte) bool
}

// opKind distinguishes which single-slot callback, if any, is currently
// pending. The two callback fields are assigned only from StateReady, where
// clearOpLocked has left both nil, and clearOpLocked resets op and both
// fields together, so at most one callback is set at a time.
type opKind int

const (
	opNone opKind = iota
	opCommand
	opConfig
)
