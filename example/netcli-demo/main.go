// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// This program demonstrates embedding the client facade directly,
// without going through the netcli command tree: dial one JUNOS device,
// run a command, apply a configuration change, and disconnect.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/circutor/netcli-driver/internal/audit"
	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/internal/logging"
	"github.com/circutor/netcli-driver/pkg/driver"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log := logging.For("netcli-demo")

	sshCfg := common.SSHInfo{
		Port:                  22,
		User:                  "netops",
		KeyPath:               os.Getenv("NETCLI_DEMO_KEY"),
		StrictHostKeyChecking: false,
		ConnectTimeout:        common.Duration{Duration: 10 * time.Second},
	}

	s := client.New("lab-router-1", driver.Junos, os.Getenv("NETCLI_DEMO_HOST"), sshCfg, 3, nil, audit.Noop{}, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Connect(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer s.Disconnect()

	resp, err := s.RunCommand(ctx, "show version")
	if err != nil {
		return fmt.Errorf("show version: %w", err)
	}
	fmt.Println(resp)

	cfgLog, sessErr := s.Configure(ctx, []string{"set interfaces ge-0/0/0 description demo"})
	if sessErr != nil {
		return fmt.Errorf("configure: %w: %s", sessErr, cfgLog)
	}
	fmt.Println(cfgLog)
	return nil
}
