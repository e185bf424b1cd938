// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var commitsBack int

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back to a prior commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s, err := dialOne(ctx)
		if err != nil {
			return err
		}
		defer s.Disconnect()

		log, err := s.Rollback(ctx, commitsBack)
		if err != nil {
			return err
		}
		fmt.Println(log)
		return nil
	},
}

func init() {
	rollbackCmd.Flags().IntVar(&commitsBack, "commits-back", 1, "number of commits to roll back")
	rootCmd.AddCommand(rollbackCmd)
}
