// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"io/ioutil"
	"path"
	"path/filepath"

	"github.com/pkg/errors"

	toml "github.com/pelletier/go-toml"

	"github.com/circutor/netcli-driver/internal/common"
)

// LoadConfig loads the TOML configuration file found under confDir (or
// common.ConfigDirectory if confDir is empty) and returns the decoded
// Config.
func LoadConfig(confDir string) (*common.Config, error) {
	return loadConfigFromFile(confDir)
}

func loadConfigFromFile(confDir string) (cfg *common.Config, err error) {
	if len(confDir) == 0 {
		confDir = common.ConfigDirectory
	}

	filePath := path.Join(confDir, common.ConfigFileName)
	absPath, absErr := filepath.Abs(filePath)
	if absErr != nil {
		return nil, errors.Wrapf(absErr, "config: resolve absolute path for %s", filePath)
	}

	// go-toml can panic on malformed input or keys that don't line up
	// with the target struct; recover and report it as a normal error.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("config: invalid TOML in %s: %v", absPath, r)
		}
	}()

	contents, err := ioutil.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "config: read %s", absPath)
	}

	cfg = &common.Config{}
	if err := toml.Unmarshal(contents, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", absPath)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *common.Config) {
	if cfg.SSH.Port == 0 {
		cfg.SSH.Port = 22
	}
	if cfg.Service.ConnectRetries == 0 {
		cfg.Service.ConnectRetries = 3
	}
	if cfg.AdminAPI.BindAddress == "" {
		cfg.AdminAPI.BindAddress = ":48080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
