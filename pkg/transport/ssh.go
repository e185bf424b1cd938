// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// SSHConfig describes how to dial a device's CLI shell. It mirrors the
// invariant flags the base spec assigns to a process-spawned `ssh`
// transport (-p, -l, -tt, ConnectTimeout, optional strict host-key
// checking and key-based auth) but drives golang.org/x/crypto/ssh
// directly instead of shelling out.
type SSHConfig struct {
	Host    string
	Port    int
	User    string
	Timeout time.Duration

	// Exactly one of Password or KeyPath should be set.
	Password string
	KeyPath  string

	// InsecureIgnoreHostKey mirrors `-o StrictHostKeyChecking=no`. Left
	// false, host keys are never accepted by this implementation - wiring
	// a known_hosts callback is the caller's responsibility via
	// HostKeyCallback.
	InsecureIgnoreHostKey bool
	HostKeyCallback       ssh.HostKeyCallback
}

// SSHTransport is the production Transport: it opens an SSH session with
// a requested PTY against an interactive device shell, writes outbound
// commands to stdin, and streams stdout in a background goroutine into the
// handler supplied to Start.
type SSHTransport struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// DialSSH opens the TCP connection, SSH handshake, PTY request, and shell
// invocation. It does not start the read loop - call Start with the
// driver's HandleData (or equivalent) once the caller is ready to receive
// bytes.
func DialSSH(cfg SSHConfig) (*SSHTransport, error) {
	auth, err := authMethod(cfg)
	if err != nil {
		return nil, err
	}

	hostKeyCB := cfg.HostKeyCallback
	if hostKeyCB == nil {
		if !cfg.InsecureIgnoreHostKey {
			return nil, errors.New("transport: HostKeyCallback required unless InsecureIgnoreHostKey is set")
		}
		hostKeyCB = ssh.InsecureIgnoreHostKey()
	}

	port := cfg.Port
	if port == 0 {
		port = 22
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCB,
		Timeout:         cfg.Timeout,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, port)
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "transport: dial %s", addr)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, "transport: open session")
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := session.RequestPty("xterm", 200, 50, modes); err != nil {
		session.Close()
		client.Close()
		return nil, errors.Wrap(err, "transport: request pty")
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, errors.Wrap(err, "transport: stdin pipe")
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return nil, errors.Wrap(err, "transport: stdout pipe")
	}

	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return nil, errors.Wrap(err, "transport: start shell")
	}

	return &SSHTransport{
		client:  client,
		session: session,
		stdin:   stdin,
		stdout:  bufio.NewReader(stdout),
	}, nil
}

func authMethod(cfg SSHConfig) ([]ssh.AuthMethod, error) {
	if cfg.KeyPath != "" {
		key, err := ioutil.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, errors.Wrapf(err, "transport: read key %s", cfg.KeyPath)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, "transport: parse private key")
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return []ssh.AuthMethod{ssh.Password(cfg.Password)}, nil
}

// Start launches the background read loop: every chunk read from the
// remote stdout is handed to onData, in order; if the stream ends or
// errors the transport calls onDisconnect exactly once and stops.
func (t *SSHTransport) Start(onData DataHandler, onDisconnect DisconnectHandler) {
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := t.stdout.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				onData(chunk)
			}
			if err != nil {
				if err != io.EOF {
					onDisconnect(err)
				} else {
					onDisconnect(nil)
				}
				return
			}
		}
	}()
}

// Send writes cmd to the remote stdin. It returns false if the transport
// has already been closed or the write fails.
func (t *SSHTransport) Send(b []byte) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	_, err := t.stdin.Write(b)
	return err == nil
}

// Close tears down the session and the underlying SSH connection. Safe to
// call more than once.
func (t *SSHTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	if t.session != nil {
		if err := t.session.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.client != nil {
		if err := t.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
