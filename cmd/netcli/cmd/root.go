// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package cmd implements the netcli command-line tool: a thin, concrete
// realization of the "example program" the driver's base contract treats
// as an out-of-scope external collaborator.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/internal/config"
	"github.com/circutor/netcli-driver/internal/logging"
)

// application holds the state every subcommand shares, mirroring the
// single package-level "app" struct idiom used by cobra-based network
// CLIs in the wider ecosystem.
type application struct {
	confDir    string
	deviceName string
	cfg        *common.Config
}

var app application

var rootCmd = &cobra.Command{
	Use:   "netcli",
	Short: "Drive JUNOS and IOS XR devices over an interactive CLI session",
	Long: `netcli dials a JUNOS or IOS XR device's interactive SSH CLI and drives it
through the netcli-driver state machine: run a single command, apply and
commit a batch of configuration statements with automatic rollback on
failure, roll back to a prior commit, or run the admin service that keeps
sessions open for repeated use.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(app.confDir)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		app.cfg = cfg
		if _, err := logging.Setup(cfg.Logging); err != nil {
			return fmt.Errorf("configure logging: %w", err)
		}
		return nil
	},
}

// Execute runs the root command. Errors returned by subcommands'
// RunE are printed by main; cobra itself stays silent so the output
// isn't doubled.
func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&app.confDir, "confdir", "", "configuration directory (default: ./res)")
	rootCmd.PersistentFlags().StringVarP(&app.deviceName, "device", "d", "", "device name, as configured in [Devices]")

	viper.BindPFlag("confdir", rootCmd.PersistentFlags().Lookup("confdir"))
	viper.BindPFlag("device", rootCmd.PersistentFlags().Lookup("device"))
}

func (a *application) deviceConfig() (common.DeviceInfo, error) {
	if a.deviceName == "" {
		return common.DeviceInfo{}, fmt.Errorf("device required: use -d <name>")
	}
	dev, ok := a.cfg.Devices[a.deviceName]
	if !ok {
		return common.DeviceInfo{}, fmt.Errorf("device %q not found in configuration", a.deviceName)
	}
	return dev, nil
}
