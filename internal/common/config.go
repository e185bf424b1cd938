// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package common

import "time"

// Config is the root of the TOML configuration tree loaded by
// internal/config. Field names match the table names in the
// configuration.toml file one-for-one, as go-toml requires.
type Config struct {
	Service  ServiceInfo
	SSH      SSHInfo
	Logging  LoggingInfo
	Audit    AuditInfo
	AdminAPI AdminAPIInfo
	Devices  map[string]DeviceInfo
}

// ServiceInfo controls connection retry and the idle-timeout watchdog.
type ServiceInfo struct {
	Name             string
	ConnectRetries   int
	ConnectTimeout   Duration
	WatchdogInterval Duration
	IdleTimeout      Duration
}

// SSHInfo holds the SSH settings applied to every device; [Devices]
// entries carry no SSH settings of their own.
type SSHInfo struct {
	Port                  int
	User                  string
	KeyPath               string
	Password              string
	StrictHostKeyChecking bool
	KnownHostsFile        string
	ConnectTimeout        Duration
}

// LoggingInfo configures the logrus setup in internal/logging.
type LoggingInfo struct {
	Level     string
	File      string
	Remote    bool
	RemoteURL string
}

// AuditInfo configures the MongoDB-backed audit sink.
type AuditInfo struct {
	Enabled    bool
	MongoURL   string
	Database   string
	Collection string
}

// AdminAPIInfo configures the admin HTTP server.
type AdminAPIInfo struct {
	BindAddress string
}

// DeviceInfo is one entry of the [Devices] table: a named device this
// service knows how to dial.
type DeviceInfo struct {
	Host       string
	DeviceKind string
}

// Duration wraps time.Duration so go-toml can decode values like "30s"
// straight from the TOML file instead of requiring nanosecond integers.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler, which go-toml uses
// for scalar table values it does not otherwise know how to decode.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
