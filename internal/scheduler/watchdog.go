// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package scheduler runs the idle-session watchdog the driver's base
// contract explicitly delegates to "the enclosing client": a single
// recurring cron job, not a per-device schedule table, since the driver
// has no concept of scheduled polling of its own.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	cron "gopkg.in/robfig/cron.v2"

	"github.com/circutor/netcli-driver/internal/registry"
	"github.com/circutor/netcli-driver/pkg/driver"
)

// Watchdog disconnects sessions that have sat outside StateReady /
// StateInitializing / StateDisconnected for longer than IdleTimeout -
// most often a session wedged mid-operation because the remote device
// stopped responding.
type Watchdog struct {
	mu      sync.Mutex
	cr      *cron.Cron
	entryID cron.EntryID
	started bool

	reg         *registry.Registry
	idleTimeout time.Duration
	log         *logrus.Entry

	stuckSince map[string]time.Time
}

// New builds a Watchdog over reg. It does not start the cron job; call
// Start with the sweep interval.
func New(reg *registry.Registry, idleTimeout time.Duration, log *logrus.Entry) *Watchdog {
	return &Watchdog{
		reg:         reg,
		idleTimeout: idleTimeout,
		log:         log.WithField("component", "watchdog"),
		stuckSince:  make(map[string]time.Time),
	}
}

// Start schedules the sweep to run every interval. Calling Start twice is
// a no-op, mirroring the teacher's schMgrOnce guard on StartScheduler.
func (w *Watchdog) Start(interval time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	w.cr = cron.New()
	spec := fmt.Sprintf("@every %s", interval)
	id, err := w.cr.AddFunc(spec, w.sweep)
	if err != nil {
		return err
	}
	w.entryID = id
	w.cr.Start()
	w.started = true
	w.log.WithField("interval", interval).Info("watchdog started")
	return nil
}

// Stop halts the cron job. Safe to call even if Start was never called.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.cr.Stop()
	w.started = false
	w.log.Info("watchdog stopped")
}

func (w *Watchdog) sweep() {
	for _, s := range w.reg.All() {
		state := s.State()
		if isRestingState(state) {
			w.clearStuck(s.Name())
			continue
		}

		since, tracked := w.markStuck(s.Name())
		if !tracked {
			continue
		}
		if time.Since(since) < w.idleTimeout {
			continue
		}

		w.log.WithField("device", s.Name()).WithField("state", state).
			Warn("session stuck past idle timeout, forcing disconnect")
		if err := s.Disconnect(); err != nil {
			w.log.WithField("device", s.Name()).WithError(err).Error("forced disconnect failed")
		}
		w.clearStuck(s.Name())
	}
}

func (w *Watchdog) markStuck(name string) (time.Time, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	since, ok := w.stuckSince[name]
	if !ok {
		w.stuckSince[name] = time.Now()
		return time.Time{}, false
	}
	return since, true
}

func (w *Watchdog) clearStuck(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.stuckSince, name)
}

func isRestingState(s driver.State) bool {
	switch s {
	case driver.StateReady, driver.StateInitializing, driver.StateDisconnected:
		return true
	default:
		return false
	}
}
