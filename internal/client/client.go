// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package client owns one device session: a driver.Driver bound to one
// Transport, presenting a blocking call surface over the driver's
// callback-based API so CLI and HTTP callers don't need to think about
// channels.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/circutor/netcli-driver/internal/audit"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/pkg/driver"
	"github.com/circutor/netcli-driver/pkg/transport"
)

// Transport is the subset of *transport.SSHTransport a Session needs:
// driver.Transport plus lifecycle management.
type Transport interface {
	driver.Transport
	Start(onData transport.DataHandler, onDisconnect transport.DisconnectHandler)
	Close() error
}

// DialFunc opens a Transport to host. The default, DialSSH, wraps
// transport.DialSSH; tests substitute a fake.
type DialFunc func(host string, cfg common.SSHInfo) (Transport, error)

// DialSSH is the production DialFunc.
func DialSSH(host string, cfg common.SSHInfo) (Transport, error) {
	return transport.DialSSH(transport.SSHConfig{
		Host:                  host,
		Port:                  cfg.Port,
		User:                  cfg.User,
		Password:              cfg.Password,
		KeyPath:               cfg.KeyPath,
		Timeout:               cfg.ConnectTimeout.Duration,
		InsecureIgnoreHostKey: !cfg.StrictHostKeyChecking,
	})
}

// Session is one named device session: a dialed Transport driving one
// pkg/driver.Driver. A Session is safe for concurrent use.
type Session struct {
	name       string
	deviceKind driver.DeviceKind
	host       string
	sshCfg     common.SSHInfo
	retries    int
	dial       DialFunc
	sink       audit.Sink
	log        *logrus.Entry

	mu           sync.Mutex
	transport    Transport
	drv          *driver.Driver
	lastActivity time.Time
}

// New constructs a Session that has not yet dialed. Call Connect before
// running any operation against it.
func New(name string, kind driver.DeviceKind, host string, sshCfg common.SSHInfo, retries int, dial DialFunc, sink audit.Sink, log *logrus.Entry) *Session {
	if dial == nil {
		dial = DialSSH
	}
	if sink == nil {
		sink = audit.Noop{}
	}
	return &Session{
		name:       name,
		deviceKind: kind,
		host:       host,
		sshCfg:     sshCfg,
		retries:    retries,
		dial:       dial,
		sink:       sink,
		log:        log.WithField("device", name),
	}
}

// Connect dials the transport, retrying up to s.retries times with a
// fixed backoff (mirroring the teacher's checkServiceAvailable retry
// loop), wires it to a fresh driver, and initializes the session.
func (s *Session) Connect(ctx context.Context) error {
	var tr Transport
	var err error

	attempts := s.retries
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		tr, err = s.dial(s.host, s.sshCfg)
		if err == nil {
			break
		}
		s.log.WithError(err).Warnf("connect attempt %d/%d failed", i+1, attempts)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		return errors.Wrapf(err, "client: connect to %s", s.host)
	}

	drv, err := driver.New(s.deviceKind, tr, s.log)
	if err != nil {
		tr.Close()
		return err
	}

	s.mu.Lock()
	s.transport = tr
	s.drv = drv
	s.lastActivity = time.Now()
	s.mu.Unlock()

	tr.Start(drv.HandleData, s.handleDisconnect)

	if err := drv.Initialize(); err != nil {
		return errors.Wrap(err, "client: initialize")
	}
	return nil
}

func (s *Session) handleDisconnect(cause error) {
	s.mu.Lock()
	drv := s.drv
	s.mu.Unlock()
	if drv != nil {
		drv.HandleDisconnect(cause)
	}
}

// Disconnect tears down the transport. The driver is expected to reach
// StateDisconnected either via the transport's own failure signal or,
// here, forced once the close completes - HandleDisconnect is idempotent
// so both paths racing is harmless.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	tr := s.transport
	drv := s.drv
	s.mu.Unlock()
	if tr == nil {
		return nil
	}
	err := tr.Close()
	if drv != nil {
		drv.HandleDisconnect(err)
	}
	return err
}

// RunCommand blocks until the device responds to cmd or ctx is done.
func (s *Session) RunCommand(ctx context.Context, cmd string) (string, error) {
	drv, err := s.driverOrErr()
	if err != nil {
		return "", err
	}

	type result struct {
		resp string
		err  error
	}
	ch := make(chan result, 1)
	drv.ExecuteCommand(func(err error, resp string) {
		ch <- result{resp, err}
	}, cmd)

	select {
	case r := <-ch:
		s.touch()
		s.record(audit.OpCommand, r.resp, r.err)
		return r.resp, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Configure blocks until commands are applied and committed (or
// automatically rolled back) or ctx is done.
func (s *Session) Configure(ctx context.Context, commands []string) (string, error) {
	drv, err := s.driverOrErr()
	if err != nil {
		return "", err
	}

	type result struct {
		log string
		err error
	}
	ch := make(chan result, 1)
	drv.ConfigureAndCommit(func(err error, log string) {
		ch <- result{log, err}
	}, commands)

	select {
	case r := <-ch:
		s.touch()
		s.record(audit.OpConfigure, r.log, r.err)
		return r.log, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Rollback blocks until the device confirms the rollback or ctx is done.
func (s *Session) Rollback(ctx context.Context, commitsBack int) (string, error) {
	drv, err := s.driverOrErr()
	if err != nil {
		return "", err
	}

	type result struct {
		log string
		err error
	}
	ch := make(chan result, 1)
	drv.RollbackConfiguration(func(err error, log string) {
		ch <- result{log, err}
	}, commitsBack)

	select {
	case r := <-ch:
		s.touch()
		s.record(audit.OpRollback, r.log, r.err)
		return r.log, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Name, DeviceKind, and State are read-only observers used by the session
// registry, watchdog, and admin API. LastActivity reports when the session
// last connected or completed an operation.
func (s *Session) Name() string { return s.name }

func (s *Session) DeviceKind() driver.DeviceKind { return s.deviceKind }

func (s *Session) State() driver.State {
	s.mu.Lock()
	drv := s.drv
	s.mu.Unlock()
	if drv == nil {
		return driver.StateDisconnected
	}
	return drv.GetState()
}

func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Session) driverOrErr() (*driver.Driver, error) {
	s.mu.Lock()
	drv := s.drv
	s.mu.Unlock()
	if drv == nil {
		return nil, errors.Errorf("client: session %q is not connected", s.name)
	}
	return drv, nil
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) record(op audit.Operation, detail string, opErr error) {
	entry := audit.Entry{
		CorrelationID: audit.NewCorrelationID(),
		Device:        s.name,
		Operation:     op,
		Success:       opErr == nil,
		Detail:        detail,
		Timestamp:     time.Now(),
	}
	if opErr != nil {
		entry.Error = opErr.Error()
	}
	if err := s.sink.Record(entry); err != nil {
		s.log.WithError(err).Warn("audit record failed")
	}
}
