// -*- Mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package driver

import (
	"bytes"
	"regexp"
)

var (
	junosOperationalPrompt = regexp.MustCompile(`^[\w\-.]+@[\w\-.]+>\s*$`)
	junosConfigPrompt      = regexp.MustCompile(`^[\w\-.]+@[\w\-.]+#\s*$`)
	iosxrOperationalPrompt = regexp.MustCompile(`^RP/\d+/\w+/CPU\d+:[\w\-.]+#\s*$`)
	iosxrConfigPrompt      = regexp.MustCompile(`^RP/\d+/\w+/CPU\d+:[\w\-.]+\(config[^)]*\)#\s*$`)
)

// combinedPrompt builds a single pattern matching either of a vendor's two
// mode prompts, so one scan recognizes a prompt regardless of the device's
// current CLI mode.
func combinedPrompt(a, b *regexp.Regexp) *regexp.Regexp {
	return regexp.MustCompile(a.String() + "|" + b.String())
}

// matchesPrompt splits buf into lines and reports whether any non-empty
// stripped line matches pattern. It returns the matching line (without
// surrounding whitespace) when found.
func matchesPrompt(buf []byte, pattern *regexp.Regexp) (line string, ok bool) {
	lines := bytes.Split(buf, []byte("\n"))
	for _, raw := range lines {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}
		if pattern.Match(trimmed) {
			return string(trimmed), true
		}
	}
	return "", false
}

// findPromptCut scans buf line by line (newline-inclusive) and returns the
// byte offset just past the first line matching pattern. The driver uses
// this to consume exactly one prompt-terminated segment per step, leaving
// any bytes after it in the buffer for the next iteration - this is what
// lets HandleData tolerate several prompts arriving in a single chunk.
func findPromptCut(buf []byte, pattern *regexp.Regexp) (cut int, ok bool) {
	segments := bytes.SplitAfter(buf, []byte("\n"))
	pos := 0
	for _, seg := range segments {
		trimmed := bytes.TrimSpace(seg)
		if len(trimmed) > 0 && pattern.Match(trimmed) {
			return pos + len(seg), true
		}
		pos += len(seg)
	}
	return 0, false
}
