// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package transport provides the duplex byte-stream collaborators the
// driver state machine needs: an SSH-backed implementation for production
// use and a capture-only double for tests.
package transport

// Transport is the seam the driver package depends on. It is declared
// again here (driver.Transport's Send method plus Close) so that this
// package has no import-time dependency on pkg/driver; callers wire the
// two together by passing a Transport value where driver.Transport is
// expected.
type Transport interface {
	// Send queues b for transmission, returning false iff it could not be
	// queued. There are no internal retries.
	Send(b []byte) bool

	// Close tears down the underlying connection. Calling Close more than
	// once is safe.
	Close() error
}

// DataHandler is the shape the driver's HandleData method has; a
// Transport implementation delivers inbound bytes to one of these, in
// order, one chunk at a time, with no byte loss while the session is
// live.
type DataHandler func(chunk []byte)

// DisconnectHandler is invoked out-of-band exactly once when the
// transport detects it can no longer deliver data (remote close, read
// error, process exit).
type DisconnectHandler func(cause error)
