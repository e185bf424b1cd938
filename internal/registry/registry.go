// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package registry holds the set of live device sessions for a running
// netcli-driver service, the same role the teacher's internal/cache
// package plays for EdgeX's device/profile caches.
package registry

import (
	"sync"

	"github.com/circutor/netcli-driver/internal/client"
)

// Registry is a concurrency-safe name -> *client.Session map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*client.Session
}

// New returns an empty Registry. Unlike the teacher's package-level
// sync.Once-guarded cache, the registry is a value the caller owns and
// threads through explicitly (the watchdog and admin API both take a
// *Registry), which keeps tests free of shared global state.
func New() *Registry {
	return &Registry{sessions: make(map[string]*client.Session)}
}

// Add registers s under its own Name(), replacing any prior entry with
// the same name.
func (r *Registry) Add(s *client.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Name()] = s
}

// Remove drops the named session, if present. It does not disconnect it;
// callers that want a clean teardown should call Session.Disconnect
// first.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, name)
}

// ForName looks up a session by name.
func (r *Registry) ForName(name string) (*client.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[name]
	return s, ok
}

// All returns a snapshot of every registered session.
func (r *Registry) All() []*client.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*client.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	return out
}
