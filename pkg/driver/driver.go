// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"bytes"
	"sync"

	"github.com/sirupsen/logrus"
)

// defaultSessionLogCap bounds session log growth, per the base spec's
// Buffer growth design note. Exceeding it truncates with a marker.
const defaultSessionLogCap = 1 << 20 // 1 MiB

// Driver is a single-session, single-threaded, event-driven state machine
// driving a JUNOS or IOS XR interactive CLI shell over a caller-supplied
// Transport. All exported methods serialize on an internal mutex so that,
// per the base spec's concurrency model, at most one of
// {HandleData, ExecuteCommand, ConfigureAndCommit, RollbackConfiguration,
// Initialize} runs at a time and each runs to completion before the next
// begins.
type Driver struct {
	mu sync.Mutex

	deviceKind DeviceKind
	vendor     *vendorSpec
	transport  Transport
	log        *logrus.Entry

	sessionLogCap int

	state          State
	inputBuffer    bytes.Buffer
	sessionLog     bytes.Buffer
	currentCommand string

	op        opKind
	commandCB CommandCallback
	configCB  ConfigCallback

	configQueue   []string
	commitQueue   []string
	commitChecked bool
	abortQueue    []string
	rollbackCount int
}

// New constructs a driver for kind in StateInitializing. log may be nil,
// in which case the standard logrus logger is used.
func New(kind DeviceKind, transport Transport, log *logrus.Entry) (*Driver, error) {
	spec, err := newVendorSpec(kind)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Driver{
		deviceKind:    kind,
		vendor:        spec,
		transport:     transport,
		log:           log.WithField("component", "driver").WithField("device_kind", string(kind)),
		state:         StateInitializing,
		sessionLogCap: defaultSessionLogCap,
	}, nil
}

// SetSessionLogCap overrides the default session log cap. A value of zero
// disables truncation entirely.
func (d *Driver) SetSessionLogCap(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessionLogCap = n
}

// DeviceKind reports the vendor family this driver was constructed for.
func (d *Driver) DeviceKind() DeviceKind { return d.deviceKind }

// GetDeviceInfo is a pure observer, safe in any state.
func (d *Driver) GetDeviceInfo() DeviceInfo { return d.vendor.info }

// GetState is a pure observer, safe in any state.
func (d *Driver) GetState() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// IsReady is a pure observer, safe in any state.
func (d *Driver) IsReady() bool {
	return d.GetState() == StateReady
}

// Initialize sends the vendor's session setup commands and transitions
// directly to StateReady without waiting for their output: by the time the
// transport delivers the first byte the device has already produced its
// initial prompt, and the init commands' own responses land harmlessly in
// the buffer consumed by the first real operation.
func (d *Driver) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateInitializing {
		return &PreconditionError{Op: "initialize", Current: d.state}
	}
	for _, cmd := range d.vendor.initCommands {
		d.send(cmd)
	}
	d.log.Debug("sent init commands")
	d.state = StateReady
	return nil
}

// ExecuteCommand sends command and arranges for cb to be invoked, exactly
// once, with the device's response once the next prompt is observed.
func (d *Driver) ExecuteCommand(cb CommandCallback, command string) {
	d.mu.Lock()
	if d.state != StateReady {
		err := &PreconditionError{Op: "execute_command", Current: d.state}
		d.mu.Unlock()
		cb(err, "")
		return
	}

	d.currentCommand = command
	d.commandCB = cb
	d.op = opCommand
	d.state = StateExecutingCommand
	d.send(command)
	d.mu.Unlock()
}

// ConfigureAndCommit enters configuration mode, applies commands in order,
// and commits. cb is invoked, exactly once, on commit success or on
// automatic rollback after a commit failure.
func (d *Driver) ConfigureAndCommit(cb ConfigCallback, commands []string) {
	d.mu.Lock()
	if d.state != StateReady {
		err := &PreconditionError{Op: "configure_and_commit", Current: d.state}
		d.mu.Unlock()
		cb(err, "")
		return
	}

	d.sessionLog.Reset()
	d.configQueue = append([]string(nil), commands...)
	d.configCB = cb
	d.op = opConfig
	d.state = StateEnteringConfig
	for _, cmd := range d.vendor.enterConfigCmds {
		d.send(cmd)
	}
	d.mu.Unlock()
}

// RollbackConfiguration emits the vendor's rollback command sequence and
// declares success on the first subsequent prompt (the base spec does not
// step this operation command-by-command the way ConfigureAndCommit does).
func (d *Driver) RollbackConfiguration(cb ConfigCallback, commitsBack int) {
	d.mu.Lock()
	if d.state != StateReady {
		err := &PreconditionError{Op: "rollback_configuration", Current: d.state}
		d.mu.Unlock()
		cb(err, "")
		return
	}
	if commitsBack < 1 {
		err := &PreconditionError{Op: "rollback_configuration", Reason: "commits_back must be >= 1"}
		d.mu.Unlock()
		cb(err, "")
		return
	}

	d.sessionLog.Reset()
	d.rollbackCount = commitsBack
	d.configCB = cb
	d.op = opConfig
	d.state = StateRollingBack
	for _, cmd := range d.vendor.rollbackCmds(commitsBack) {
		d.send(cmd)
	}
	d.mu.Unlock()
}

// HandleData is fed by the transport for each inbound chunk. It tolerates
// prompts split across chunks (buffering across calls) and several
// prompts delivered in one chunk (processing them one at a time until no
// complete prompt-terminated segment remains).
func (d *Driver) HandleData(chunk []byte) {
	d.mu.Lock()

	d.inputBuffer.Write(chunk)
	if isMultiStepState(d.state) {
		d.appendSessionLogLocked(chunk)
	}

	var fires []fireResult
	for {
		buf := d.inputBuffer.Bytes()
		cut, ok := findPromptCut(buf, d.vendor.anyPrompt)
		if !ok {
			break
		}

		consumed := append([]byte(nil), buf[:cut]...)
		remaining := append([]byte(nil), buf[cut:]...)
		d.inputBuffer.Reset()
		d.inputBuffer.Write(remaining)

		fr := d.stepLocked(consumed)
		if !fr.isEmpty() {
			fires = append(fires, fr)
		}
	}

	d.mu.Unlock()

	for _, fr := range fires {
		fr.fire()
	}
}

// HandleDisconnect is invoked by the enclosing client when the transport
// collaborator signals loss of the connection. Any pending callback fails
// with a TransportError and the driver moves to StateDisconnected.
// Calling it again after the first call is a no-op: the pending callback
// slot is already cleared.
func (d *Driver) HandleDisconnect(cause error) {
	d.mu.Lock()
	fr := d.collapseLocked(StateDisconnected, &TransportError{Cause: cause})
	d.mu.Unlock()
	fr.fire()
}

// stepLocked runs the prompt-driven step function for the current state
// against one consumed (prompt-terminated) buffer segment.
func (d *Driver) stepLocked(consumed []byte) fireResult {
	switch d.state {
	case StateExecutingCommand:
		response := extractOutput(consumed, d.currentCommand, d.vendor.anyPrompt)
		fr := d.completeCommandLocked(nil, response)
		if mfr := d.transitionLocked(StateReady); !mfr.isEmpty() {
			return mfr
		}
		return fr

	case StateEnteringConfig:
		if fr := d.transitionLocked(StateConfigMode); !fr.isEmpty() {
			return fr
		}
		if len(d.configQueue) > 0 {
			cmd := d.popConfigLocked()
			d.send(cmd)
			return d.transitionLocked(StateApplyingConfig)
		}
		return d.sendCommitLocked()

	case StateApplyingConfig:
		if len(d.configQueue) > 0 {
			cmd := d.popConfigLocked()
			d.send(cmd)
			return fireResult{}
		}
		return d.sendCommitLocked()

	case StateCommitting:
		if !d.commitChecked {
			d.commitChecked = true
			if d.vendor.commitFailed(consumed) {
				d.abortQueue = append([]string(nil), d.vendor.abortCmds...)
				cmd := popFront(&d.abortQueue)
				d.send(cmd)
				return d.transitionLocked(StateAbortingConfig)
			}
		}
		if len(d.commitQueue) > 0 {
			cmd := popFront(&d.commitQueue)
			d.send(cmd)
			return fireResult{}
		}
		fr := d.completeConfigLocked(nil, d.sessionLog.String())
		if mfr := d.transitionLocked(StateReady); !mfr.isEmpty() {
			return mfr
		}
		return fr

	case StateAbortingConfig:
		if len(d.abortQueue) > 0 {
			cmd := popFront(&d.abortQueue)
			d.send(cmd)
			return fireResult{}
		}
		fr := d.completeConfigLocked(&CommitFailedError{}, d.sessionLog.String())
		if mfr := d.transitionLocked(StateReady); !mfr.isEmpty() {
			return mfr
		}
		return fr

	case StateRollingBack:
		fr := d.completeConfigLocked(nil, d.sessionLog.String())
		if mfr := d.transitionLocked(StateReady); !mfr.isEmpty() {
			return mfr
		}
		return fr

	default:
		// A prompt arriving outside any multi-step operation is discarded;
		// the buffer has already been consumed above and state is unchanged.
		return fireResult{}
	}
}

// sendCommitLocked kicks off the vendor's commit command sequence. Like
// configQueue, the remaining commands are drained one prompt at a time by
// stepLocked; only the response to the first command (the actual "commit")
// is checked against the vendor's failure predicate.
func (d *Driver) sendCommitLocked() fireResult {
	d.commitQueue = append([]string(nil), d.vendor.commitCmds...)
	d.commitChecked = false
	cmd := popFront(&d.commitQueue)
	d.send(cmd)
	return d.transitionLocked(StateCommitting)
}

func (d *Driver) popConfigLocked() string {
	return popFront(&d.configQueue)
}

func popFront(queue *[]string) string {
	cmd := (*queue)[0]
	*queue = (*queue)[1:]
	return cmd
}

func (d *Driver) send(cmd string) {
	if ok := d.transport.Send([]byte(cmd + "\n")); !ok {
		d.log.WithField("command", cmd).Warn("transport did not accept command")
	}
}

// transitionLocked moves the state machine to "to" if the transition table
// permits it from the current state, logging at debug. An impermissible
// move is itself an error condition: it is logged at error severity and
// collapses the driver to StateError, failing any pending callback.
func (d *Driver) transitionLocked(to State) fireResult {
	from := d.state
	if !isValidTransition(from, to) {
		d.log.WithFields(logrus.Fields{"from": from, "to": to}).Error("invalid state transition")
		return d.collapseLocked(StateError, &TransitionError{From: from, To: to})
	}
	d.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("state transition")
	d.state = to
	return fireResult{}
}

// collapseLocked forcibly moves the driver to an unconditional terminal-ish
// state (StateError or StateDisconnected), failing any pending callback
// with cause and clearing buffers. Fields are cleared before the caller
// invokes the returned fireResult, satisfying invariant 7 of the base spec.
func (d *Driver) collapseLocked(to State, cause error) fireResult {
	var fr fireResult
	switch d.op {
	case opCommand:
		fr = d.completeCommandLocked(cause, "")
	case opConfig:
		fr = d.completeConfigLocked(cause, d.sessionLog.String())
	}
	d.state = to
	d.inputBuffer.Reset()
	d.sessionLog.Reset()
	return fr
}

func (d *Driver) completeCommandLocked(err error, response string) fireResult {
	cb := d.commandCB
	d.clearOpLocked()
	return fireResult{commandCB: cb, err: err, response: response}
}

func (d *Driver) completeConfigLocked(err error, sessionLog string) fireResult {
	cb := d.configCB
	d.clearOpLocked()
	return fireResult{configCB: cb, err: err, log: sessionLog}
}

func (d *Driver) clearOpLocked() {
	d.op = opNone
	d.commandCB = nil
	d.configCB = nil
	d.configQueue = nil
	d.commitQueue = nil
	d.commitChecked = false
	d.abortQueue = nil
	d.rollbackCount = 0
	d.currentCommand = ""
}

func (d *Driver) appendSessionLogLocked(chunk []byte) {
	if d.sessionLogCap > 0 && d.sessionLog.Len() >= d.sessionLogCap {
		return
	}
	d.sessionLog.Write(chunk)
	if d.sessionLogCap > 0 && d.sessionLog.Len() > d.sessionLogCap {
		d.sessionLog.Truncate(d.sessionLogCap)
		d.sessionLog.WriteString("\n...[session log truncated]...")
	}
}

// fireResult carries a captured, already-detached callback invocation:
// driver state for the completed operation has already been cleared by
// the time fire is called, so the callback sees a driver with no trace of
// the operation it is reporting on.
type fireResult struct {
	commandCB CommandCallback
	configCB  ConfigCallback
	err       error
	response  string
	log       string
}

func (f fireResult) isEmpty() bool {
	return f.commandCB == nil && f.configCB == nil
}

func (f fireResult) fire() {
	switch {
	case f.commandCB != nil:
		f.commandCB(f.err, f.response)
	case f.configCB != nil:
		f.configCB(f.err, f.log)
	}
}
