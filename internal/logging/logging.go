// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package logging wires the service's logrus root logger from
// configuration and hands out component-scoped entries.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/circutor/netcli-driver/internal/common"
)

// Setup configures the standard logrus logger's formatter, level, and
// output target from cfg and returns it as an *logrus.Logger for callers
// that need the root logger directly (e.g. to pass into third-party
// libraries that take a *logrus.Logger). When cfg.Remote is set, entries
// are JSON-formatted and tagged with cfg.RemoteURL for downstream shipping;
// otherwise entries are plain text, matching the teacher's EnableRemote
// branch in clients/init.go.
func Setup(cfg common.LoggingInfo) (*logrus.Logger, error) {
	log := logrus.StandardLogger()

	if cfg.Remote {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.AddHook(remoteTargetHook{url: cfg.RemoteURL})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		log.SetOutput(f)
	}

	return log, nil
}

// remoteTargetHook stamps every entry with the remote collector's URL so a
// downstream shipper can route JSON log lines without re-deriving it from
// configuration.
type remoteTargetHook struct {
	url string
}

func (h remoteTargetHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h remoteTargetHook) Fire(e *logrus.Entry) error {
	e.Data["remote_url"] = h.url
	return nil
}

// For returns a component-scoped entry off the standard logger, the
// pattern pkg/driver and internal/client use throughout: every log line
// carries a "component" field naming its origin.
func For(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}
