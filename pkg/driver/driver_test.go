// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circutor/netcli-driver/pkg/driver"
	"github.com/circutor/netcli-driver/pkg/transport"
)

func newTestDriver(t *testing.T, kind driver.DeviceKind) (*driver.Driver, *transport.Capture) {
	t.Helper()
	tr := transport.NewCapture()
	d, err := driver.New(kind, tr, nil)
	require.NoError(t, err)
	return d, tr
}

func TestJunosInit(t *testing.T) {
	d, tr := newTestDriver(t, driver.Junos)

	require.NoError(t, d.Initialize())

	assert.Equal(t, driver.StateReady, d.GetState())
	assert.Equal(t, []string{
		"set cli screen-length 0\n",
		"set cli screen-width 0\n",
		"set cli complete-on-space off\n",
		"set cli idle-timeout 0\n",
	}, tr.Sent())
}

func TestIOSXRInit(t *testing.T) {
	d, tr := newTestDriver(t, driver.IOSXR)

	require.NoError(t, d.Initialize())

	assert.True(t, d.IsReady())
	assert.Equal(t, []string{
		"terminal length 0\n",
		"terminal width 0\n",
		"terminal exec prompt no-timestamp\n",
		"terminal monitor disable\n",
	}, tr.Sent())
}

func TestJunosShowVersion(t *testing.T) {
	d, _ := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())

	var gotErr error
	var gotResp string
	done := make(chan struct{})
	d.ExecuteCommand(func(err error, resp string) {
		gotErr, gotResp = err, resp
		close(done)
	}, "show version")

	d.HandleData([]byte("show version\nJuniper version info\nuser@device> "))
	<-done

	assert.NoError(t, gotErr)
	assert.Equal(t, "Juniper version info", gotResp)
	assert.Equal(t, driver.StateReady, d.GetState())
}

func TestJunosConfigAndCommitSuccess(t *testing.T) {
	d, tr := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())
	tr.Reset()

	var gotErr error
	var gotLog string
	done := make(chan struct{})
	d.ConfigureAndCommit(func(err error, log string) {
		gotErr, gotLog = err, log
		close(done)
	}, []string{"set interfaces ge-0/0/0 description test"})

	chunks := []string{
		"configure\nuser@device# ",
		"set interfaces ge-0/0/0 description test\nuser@device# ",
		"commit\ncommit complete\nuser@device# ",
		"exit\nuser@device> ",
	}
	for _, c := range chunks {
		d.HandleData([]byte(c))
	}
	<-done

	assert.NoError(t, gotErr)
	assert.Equal(t, strings.Join(chunks, ""), gotLog)
	assert.Equal(t, driver.StateReady, d.GetState())
	assert.Equal(t, []string{
		"configure\n",
		"set interfaces ge-0/0/0 description test\n",
		"commit\n", "exit\n",
	}, tr.Sent())
}

func TestJunosCommitFailureAutoRollback(t *testing.T) {
	d, _ := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())

	var gotErr error
	var gotLog string
	done := make(chan struct{})
	d.ConfigureAndCommit(func(err error, log string) {
		gotErr, gotLog = err, log
		close(done)
	}, []string{"set interfaces ge-0/0/0 description test"})

	d.HandleData([]byte("configure\nuser@device# "))
	d.HandleData([]byte("set interfaces ge-0/0/0 description test\nuser@device# "))
	d.HandleData([]byte("commit\nerror: commit failed - invalid configuration\nuser@device# "))
	d.HandleData([]byte("rollback\nuser@device# "))
	d.HandleData([]byte("exit\nuser@device> "))
	<-done

	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "automatically rolled back")
	assert.Contains(t, gotLog, "commit failed")
	assert.Equal(t, driver.StateReady, d.GetState())
}

func TestIOSXRRollback(t *testing.T) {
	d, tr := newTestDriver(t, driver.IOSXR)
	require.NoError(t, d.Initialize())
	tr.Reset()

	var gotErr error
	done := make(chan struct{})
	d.RollbackConfiguration(func(err error, log string) {
		gotErr = err
		close(done)
	}, 2)

	assert.Equal(t, []string{"rollback configuration last 2\n"}, tr.Sent())

	d.HandleData([]byte("rollback configuration last 2\nRP/0/RP0/CPU0:host# "))
	<-done

	assert.NoError(t, gotErr)
	assert.Equal(t, driver.StateReady, d.GetState())
}

func TestRollbackRejectsNonPositiveCount(t *testing.T) {
	d, tr := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())
	tr.Reset()

	var gotErr error
	called := false
	d.RollbackConfiguration(func(err error, log string) {
		called = true
		gotErr = err
	}, 0)

	assert.True(t, called)
	assert.Error(t, gotErr)
	assert.Empty(t, tr.Sent())
	assert.Equal(t, driver.StateReady, d.GetState())
}

func TestBusyDriverRejectsOverlappingOperation(t *testing.T) {
	d, tr := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())

	d.ExecuteCommand(func(err error, resp string) {}, "show version")
	tr.Reset()

	var gotErr error
	called := false
	d.ConfigureAndCommit(func(err error, log string) {
		called = true
		gotErr = err
	}, []string{"set foo bar"})

	assert.True(t, called)
	require.Error(t, gotErr)
	assert.Contains(t, gotErr.Error(), "driver not ready - current state: executing_command")
	assert.Empty(t, tr.Sent())
	assert.Equal(t, driver.StateExecutingCommand, d.GetState())
}

func TestEmptyConfigListStillCommits(t *testing.T) {
	d, tr := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())
	tr.Reset()

	done := make(chan struct{})
	d.ConfigureAndCommit(func(err error, log string) {
		close(done)
	}, nil)

	d.HandleData([]byte("configure\nuser@device# "))
	d.HandleData([]byte("commit\ncommit complete\nuser@device# "))
	d.HandleData([]byte("exit\nuser@device> "))
	<-done

	assert.Equal(t, []string{"configure\n", "commit\n", "exit\n"}, tr.Sent())
}

func TestHandleDisconnectFailsPendingCallbackExactlyOnce(t *testing.T) {
	d, _ := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())

	fireCount := 0
	d.ExecuteCommand(func(err error, resp string) {
		fireCount++
		require.Error(t, err)
	}, "show version")

	d.HandleDisconnect(nil)
	d.HandleDisconnect(nil)

	assert.Equal(t, 1, fireCount)
	assert.Equal(t, driver.StateDisconnected, d.GetState())
}

func TestMultiplePromptsInOneChunk(t *testing.T) {
	d, _ := newTestDriver(t, driver.Junos)
	require.NoError(t, d.Initialize())

	done := make(chan struct{})
	d.ConfigureAndCommit(func(err error, log string) {
		close(done)
	}, []string{"set a", "set b"})

	// All five steps' prompts arrive bundled into a single chunk, each
	// prompt on a line of its own.
	d.HandleData([]byte(
		"configure\nuser@device# \n" +
			"set a\nuser@device# \n" +
			"set b\nuser@device# \n" +
			"commit\ncommit complete\nuser@device# \n" +
			"exit\nuser@device> ",
	))
	<-done

	assert.Equal(t, driver.StateReady, d.GetState())
}

func TestUnsupportedDeviceKind(t *testing.T) {
	tr := transport.NewCapture()
	_, err := driver.New(driver.DeviceKind("VYATTA"), tr, nil)
	require.Error(t, err)
}
