// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"bytes"
	"regexp"
	"strings"
)

// extractOutput returns the response body bounded by the echoed command
// and the next device prompt, per base spec S4.4:
//
//  1. split the buffer on newline
//  2. find the first line containing the command literal; discard it and
//     everything before it
//  3. collect lines until one matches prompt, excluding the prompt line
//  4. join with newline and strip leading/trailing whitespace
//
// If the command echo is never found, the whole buffer (minus any
// trailing prompt line) is returned, whitespace-stripped; this is the
// documented recovery branch and callers should not rely on it beyond
// non-error completion.
func extractOutput(buf []byte, command string, prompt *regexp.Regexp) string {
	lines := strings.Split(string(buf), "\n")

	echoIdx := -1
	for i, l := range lines {
		if strings.Contains(l, command) {
			echoIdx = i
			break
		}
	}

	if echoIdx == -1 {
		return strings.TrimSpace(stripTrailingPromptLine(string(buf), prompt))
	}

	var body []string
	for _, l := range lines[echoIdx+1:] {
		trimmed := bytes.TrimSpace([]byte(l))
		if len(trimmed) > 0 && prompt.Match(trimmed) {
			break
		}
		body = append(body, l)
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

func stripTrailingPromptLine(s string, prompt *regexp.Regexp) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last == "" {
			lines = lines[:len(lines)-1]
			continue
		}
		if prompt.MatchString(last) {
			lines = lines[:len(lines)-1]
		}
		break
	}
	return strings.Join(lines, "\n")
}
