// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/pkg/driver"
)

func TestRegistryAddForNameRemove(t *testing.T) {
	r := New()

	s := client.New("dev1", driver.Junos, "10.0.0.1:22", common.SSHInfo{}, 1, nil, nil, logrus.NewEntry(logrus.StandardLogger()))
	r.Add(s)

	got, ok := r.ForName("dev1")
	assert.True(t, ok)
	assert.Same(t, s, got)
	assert.Len(t, r.All(), 1)

	r.Remove("dev1")
	_, ok = r.ForName("dev1")
	assert.False(t, ok)
	assert.Empty(t, r.All())
}

func TestRegistryForNameMissing(t *testing.T) {
	r := New()
	_, ok := r.ForName("nope")
	assert.False(t, ok)
}
