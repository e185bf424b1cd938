// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import "testing"

func TestTransitionValidity(t *testing.T) {
	want := map[State]map[State]bool{
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

	for _, s1 := range AllStates {
		for _, s2 := range AllStates {
			expect := want[s1][s2]
			got := IsValidTransition(s1, s2)
			if got != expect {
				t.Errorf("IsValidTransition(%s, %s) = %v, want %v", s1, s2, got, expect)
			}
		}
	}
}

func TestIsMultiStepState(t *testing.T) {
	multi := []State{StateEnteringConfig, StateConfigMode, StateApplyingConfig,
		StateCommitting, StateAbortingConfig, StateRollingBack}
	for _, s := range multi {
		if !isMultiStepState(s) {
			t.Errorf("expected %s to be a multi-step state", s)
		}
	}

	single := []State{StateInitializing, StateReady, StateExecutingCommand,
		StateError, StateDisconnected}
	for _, s := range single {
		if isMultiStepState(s) {
			t.Errorf("expected %s not to be a multi-step state", s)
		}
	}
}
