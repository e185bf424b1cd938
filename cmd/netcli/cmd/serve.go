// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/circutor/netcli-driver/internal/adminapi"
	"github.com/circutor/netcli-driver/internal/logging"
	"github.com/circutor/netcli-driver/internal/registry"
	"github.com/circutor/netcli-driver/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the session registry, idle-session watchdog, and admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		log := logging.For("netcli-serve")

		sink, err := buildAuditSink()
		if err != nil {
			return err
		}

		reg := registry.InitRegistry(ctx, app.cfg, sink, log)

		wd := scheduler.New(reg, app.cfg.Service.IdleTimeout.Duration, log)
		if err := wd.Start(app.cfg.Service.WatchdogInterval.Duration); err != nil {
			return err
		}
		defer wd.Stop()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigCh
			log.Info("shutdown signal received")
			cancel()
		}()

		log.WithField("addr", app.cfg.AdminAPI.BindAddress).Info("admin API listening")
		return adminapi.ListenAndServe(ctx, app.cfg.AdminAPI.BindAddress, reg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
