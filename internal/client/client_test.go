// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/pkg/driver"
	"github.com/circutor/netcli-driver/pkg/transport"
)

// fakeTransport is a Transport that records sent bytes and lets the test
// hand canned responses to the driver's HandleData directly.
type fakeTransport struct {
	mu     sync.Mutex
	sent   []string
	sentCh chan struct{}
	onData transport.DataHandler
	onDrop transport.DisconnectHandler
	closed bool
}

func (f *fakeTransport) Send(b []byte) bool {
	f.mu.Lock()
	f.sent = append(f.sent, string(b))
	f.mu.Unlock()
	select {
	case f.sentCh <- struct{}{}:
	default:
	}
	return true
}

func (f *fakeTransport) Start(onData transport.DataHandler, onDisconnect transport.DisconnectHandler) {
	f.mu.Lock()
	f.onData = onData
	f.onDrop = onDisconnect
	f.mu.Unlock()
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) feed(data string) {
	f.mu.Lock()
	handler := f.onData
	f.mu.Unlock()
	handler([]byte(data))
}

func newFakeSession(t *testing.T, kind driver.DeviceKind) (*Session, *fakeTransport) {
	t.Helper()
	var tr *fakeTransport
	dial := func(host string, cfg common.SSHInfo) (Transport, error) {
		tr = &fakeTransport{sentCh: make(chan struct{}, 8)}
		return tr, nil
	}
	s := New("dev1", kind, "10.0.0.1:22", common.SSHInfo{}, 1, dial, nil, logrus.NewEntry(logrus.StandardLogger()))
	require.NoError(t, s.Connect(context.Background()))

	// Drain the signals raised by Initialize's own init commands so the
	// next signal a test waits on corresponds to its own operation.
	for drained := true; drained; {
		select {
		case <-tr.sentCh:
		default:
			drained = false
		}
	}
	return s, tr
}

func TestSessionRunCommand(t *testing.T) {
	s, tr := newFakeSession(t, driver.Junos)

	done := make(chan struct{})
	var resp string
	var err error
	go func() {
		resp, err = s.RunCommand(context.Background(), "show version")
		close(done)
	}()

	// Wait until the command has actually been sent before feeding the
	// canned device response.
	<-tr.sentCh
	tr.feed("show version\nJuniper version info\nuser@device> ")
	<-done

	assert.NoError(t, err)
	assert.Equal(t, "Juniper version info", resp)
	assert.Equal(t, driver.StateReady, s.State())
}

func TestSessionNotConnectedRejectsOperations(t *testing.T) {
	s := New("dev1", driver.Junos, "10.0.0.1:22", common.SSHInfo{}, 1, nil, nil, logrus.NewEntry(logrus.StandardLogger()))
	_, err := s.RunCommand(context.Background(), "show version")
	require.Error(t, err)
}

func TestSessionDisconnect(t *testing.T) {
	s, tr := newFakeSession(t, driver.Junos)
	require.NoError(t, s.Disconnect())
	assert.True(t, tr.closed)
	assert.Equal(t, driver.StateDisconnected, s.State())
}
