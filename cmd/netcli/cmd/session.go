// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"

	"github.com/circutor/netcli-driver/internal/audit"
	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/logging"
	"github.com/circutor/netcli-driver/pkg/driver"
)

// dialOne connects to the device named on the command line for a single
// operation and returns a Session the caller must Disconnect.
func dialOne(ctx context.Context) (*client.Session, error) {
	dev, err := app.deviceConfig()
	if err != nil {
		return nil, err
	}

	sink, err := buildAuditSink()
	if err != nil {
		return nil, err
	}

	log := logging.For("netcli")
	s := client.New(app.deviceName, driver.DeviceKind(dev.DeviceKind), dev.Host,
		app.cfg.SSH, app.cfg.Service.ConnectRetries, nil, sink, log)
	if err := s.Connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func buildAuditSink() (audit.Sink, error) {
	if !app.cfg.Audit.Enabled {
		return audit.Noop{}, nil
	}
	return audit.NewMongoSink(app.cfg.Audit.MongoURL, app.cfg.Audit.Database, app.cfg.Audit.Collection)
}
