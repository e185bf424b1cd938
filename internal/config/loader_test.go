// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := loadConfigFromFile("./testdata")
	require.NoError(t, err)

	assert.Equal(t, "netcli-driver", cfg.Service.Name)
	assert.Equal(t, 5, cfg.Service.ConnectRetries)
	assert.Equal(t, 30*time.Second, cfg.Service.WatchdogInterval.Duration)
	assert.Equal(t, 5*time.Minute, cfg.Service.IdleTimeout.Duration)

	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "netops", cfg.SSH.User)
	assert.True(t, cfg.SSH.StrictHostKeyChecking)

	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "netcli", cfg.Audit.Database)

	require.Contains(t, cfg.Devices, "lab-router-1")
	assert.Equal(t, "JUNOS", cfg.Devices["lab-router-1"].DeviceKind)
	require.Contains(t, cfg.Devices, "lab-router-2")
	assert.Equal(t, "10.0.0.2:22", cfg.Devices["lab-router-2"].Host)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfigFromFile("./nonexistent")
	require.Error(t, err)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := loadConfigFromFile("./testdata/minimal")
	require.NoError(t, err)
	assert.Equal(t, ":48080", cfg.AdminAPI.BindAddress)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, 3, cfg.Service.ConnectRetries)
	assert.Equal(t, "info", cfg.Logging.Level)
}
