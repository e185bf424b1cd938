// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package audit records a diagnostic trail of operations run against a
// device session. It is strictly a downstream observer: entries are
// written only after a driver operation's callback has already fired, so
// the driver itself remains free of persisted state.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Operation names an audited action.
type Operation string

const (
	OpCommand   Operation = "command"
	OpConfigure Operation = "configure"
	OpRollback  Operation = "rollback"
)

// Entry is one recorded operation outcome.
type Entry struct {
	CorrelationID string    `bson:"correlation_id"`
	Device        string    `bson:"device"`
	Operation     Operation `bson:"operation"`
	Success       bool      `bson:"success"`
	Detail        string    `bson:"detail"`
	Error         string    `bson:"error,omitempty"`
	Timestamp     time.Time `bson:"timestamp"`
}

// NewCorrelationID mints a fresh random identifier for one audit entry.
// It is independent of the X-Correlation-ID header the admin API attaches
// to its own responses.
func NewCorrelationID() string {
	return uuid.New().String()
}

// Sink persists Entry values. Record is called off the critical path of
// any in-flight driver operation; implementations may block.
type Sink interface {
	Record(e Entry) error
	Close() error
}

// Noop discards every entry. It backs Config.Audit.Enabled = false.
type Noop struct{}

func (Noop) Record(Entry) error { return nil }
func (Noop) Close() error       { return nil }
