// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/circutor/netcli-driver/internal/audit"
	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/pkg/driver"
)

var (
	initOnce sync.Once
	global   *Registry
)

// InitRegistry builds the process-wide Registry from cfg.Devices, dialing
// each configured device in turn and logging, rather than failing the
// whole service, when one device can't be reached at startup - the
// teacher's InitCache takes the same "best effort, log and continue"
// stance toward Core Metadata being temporarily unavailable.
func InitRegistry(ctx context.Context, cfg *common.Config, sink audit.Sink, log *logrus.Entry) *Registry {
	initOnce.Do(func() {
		global = New()
		for name, dev := range cfg.Devices {
			kind := driver.DeviceKind(dev.DeviceKind)
			s := client.New(name, kind, dev.Host, cfg.SSH, cfg.Service.ConnectRetries, nil, sink, log)
			if err := s.Connect(ctx); err != nil {
				log.WithField("device", name).WithError(err).Error("initial connect failed")
			}
			global.Add(s)
		}
	})
	return global
}

// Global returns the registry built by InitRegistry, or nil if it has not
// run yet.
func Global() *Registry {
	return global
}
