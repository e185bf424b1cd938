// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run a single operational-mode command and print its output",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := dialOne(ctx)
		if err != nil {
			return err
		}
		defer s.Disconnect()

		resp, err := s.RunCommand(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(resp)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
