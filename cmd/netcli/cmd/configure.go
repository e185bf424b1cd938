// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configureFile string

var configureCmd = &cobra.Command{
	Use:   "configure [commands...]",
	Short: "Apply and commit configuration statements, rolling back automatically on failure",
	Long: `configure enters configuration mode, applies each statement in order, and
commits. If the commit is rejected the device is rolled back to the prior
commit automatically and the error is reported.

Statements may be given as positional arguments, one per line in a file
with -f, or both.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		commands, err := collectStatements(args, configureFile)
		if err != nil {
			return err
		}
		if len(commands) == 0 {
			return fmt.Errorf("no configuration statements given")
		}

		ctx := context.Background()
		s, err := dialOne(ctx)
		if err != nil {
			return err
		}
		defer s.Disconnect()

		log, err := s.Configure(ctx, commands)
		if err != nil {
			fmt.Println(log)
			return err
		}
		fmt.Println(log)
		return nil
	},
}

func collectStatements(args []string, file string) ([]string, error) {
	commands := append([]string(nil), args...)
	if file == "" {
		return commands, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		commands = append(commands, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return commands, nil
}

func init() {
	configureCmd.Flags().StringVarP(&configureFile, "file", "f", "", "file of configuration statements, one per line")
	rootCmd.AddCommand(configureCmd)
}
