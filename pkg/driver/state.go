// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

// State is one of the eleven states a session driver can occupy.
type State string

const (
	StateInitializing     State = "initializing"
	StateReady            State = "ready"
	StateExecutingCommand State = "executing_command"
	StateEnteringConfig   State = "entering_config"
	StateConfigMode       State = "config_mode"
	StateApplyingConfig   State = "applying_config"
	StateCommitting       State = "committing"
	StateAbortingConfig   State = "aborting_config"
	StateRollingBack      State = "rolling_back"
	StateError            State = "error"
	StateDisconnected     State = "disconnected"
)

// transitionTable lists, for every origin state, the set of states it may
// move to directly. A move not present here is invalid and forces StateError.
var transitionTable = map[State]map[State]bool{
	StateInitializing: set(StateReady, StateError, StateDisconnected),
	StateReady: set(StateExecutingCommand, StateEnteringConfig, StateRollingBack,
		StateError, StateDisconnected),
	StateExecutingCommand: set(StateReady, StateError, StateDisconnected),
	StateEnteringConfig:   set(StateConfigMode, StateError, StateDisconnected),
	StateConfigMode: set(StateApplyingConfig, StateAbortingConfig, StateCommitting,
		StateReady, StateError, StateDisconnected),
	StateApplyingConfig: set(StateCommitting, StateError, StateDisconnected),
	StateCommitting:     set(StateReady, StateAbortingConfig, StateError, StateDisconnected),
	StateAbortingConfig: set(StateReady, StateError, StateDisconnected),
	StateRollingBack:    set(StateReady, StateError, StateDisconnected),
	StateError:          set(StateReady, StateDisconnected),
	StateDisconnected:   set(StateInitializing),
}

func set(states ...State) map[State]bool {
	m := make(map[State]bool, len(states))
	for _, s := range states {
		m[s] = true
	}
	return m
}

// isValidTransition reports whether the transition table permits moving
// from "from" directly to "to".
func isValidTransition(from, to State) bool {
	next, ok := transitionTable[from]
	if !ok {
		return false
	}
	return next[to]
}

// IsValidTransition is the exported form of isValidTransition, used by
// TestTransitionValidity (base spec S8) to check every (s1, s2) pair
// mechanically against the table above.
func IsValidTransition(from, to State) bool {
	return isValidTransition(from, to)
}

// AllStates enumerates the eleven states of the machine, in the order the
// base spec lists them.
var AllStates = []State{
	StateInitializing, StateReady, StateExecutingCommand, StateEnteringConfig,
	StateConfigMode, StateApplyingConfig, StateCommitting, StateAbortingConfig,
	StateRollingBack, StateError, StateDisconnected,
}

// multiStepStates are the states during which the session log accumulates
// bytes (invariant 6 of the base spec).
var multiStepStates = set(
	StateEnteringConfig, StateConfigMode, StateApplyingConfig,
	StateCommitting, StateAbortingConfig, StateRollingBack,
)

func isMultiStepState(s State) bool {
	return multiStepStates[s]
}

// configOpStates are the states in which pendingConfigCB must be set
// (invariant 3 of the base spec).
var configOpStates = set(
	StateEnteringConfig, StateConfigMode, StateApplyingConfig,
	StateCommitting, StateAbortingConfig, StateRollingBack,
)

func isConfigOpState(s State) bool {
	return configOpStates[s]
}
