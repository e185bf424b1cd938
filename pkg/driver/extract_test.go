// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import "testing"

func TestExtractOutputBasic(t *testing.T) {
	prompt := combinedPrompt(junosOperationalPrompt, junosConfigPrompt)
	buf := []byte("show version\nJuniper version info\nuser@device> ")

	got := extractOutput(buf, "show version", prompt)
	want := "Juniper version info"
	if got != want {
		t.Errorf("extractOutput() = %q, want %q", got, want)
	}
}

func TestExtractOutputMultiline(t *testing.T) {
	prompt := combinedPrompt(junosOperationalPrompt, junosConfigPrompt)
	buf := []byte("show interfaces terse\nge-0/0/0  up   up\nge-0/0/1  down down\nuser@device> ")

	got := extractOutput(buf, "show interfaces terse", prompt)
	want := "ge-0/0/0  up   up\nge-0/0/1  down down"
	if got != want {
		t.Errorf("extractOutput() = %q, want %q", got, want)
	}
}

func TestExtractOutputNoEchoFound(t *testing.T) {
	prompt := combinedPrompt(junosOperationalPrompt, junosConfigPrompt)
	buf := []byte("unexpected banner text\nuser@device> ")

	got := extractOutput(buf, "show version", prompt)
	want := "unexpected banner text"
	if got != want {
		t.Errorf("extractOutput() = %q, want %q", got, want)
	}
}

func TestExtractOutputStripsWhitespace(t *testing.T) {
	prompt := combinedPrompt(junosOperationalPrompt, junosConfigPrompt)
	buf := []byte("show clock\n  \n  10:00:00 UTC  \n  \nuser@device> ")

	got := extractOutput(buf, "show clock", prompt)
	want := "10:00:00 UTC"
	if got != want {
		t.Errorf("extractOutput() = %q, want %q", got, want)
	}
}
