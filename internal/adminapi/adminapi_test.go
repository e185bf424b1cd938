// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/internal/registry"
	"github.com/circutor/netcli-driver/pkg/driver"
	"github.com/circutor/netcli-driver/pkg/transport"
)

type noopTransport struct{}

func (noopTransport) Send([]byte) bool { return true }
func (noopTransport) Start(transport.DataHandler, transport.DisconnectHandler) {}
func (noopTransport) Close() error { return nil }

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	dial := func(host string, cfg common.SSHInfo) (client.Transport, error) {
		return noopTransport{}, nil
	}
	s := client.New("dev1", driver.Junos, "10.0.0.1:22", common.SSHInfo{}, 1, dial, nil, logrus.NewEntry(logrus.StandardLogger()))
	require.NoError(t, s.Connect(context.Background()))
	reg.Add(s)
	return reg
}

func TestPingRoute(t *testing.T) {
	r := mux.NewRouter()
	RegisterRoutes(r, registry.New())

	req := httptest.NewRequest(http.MethodGet, common.APIPingRoute, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListSessionsRoute(t *testing.T) {
	r := mux.NewRouter()
	reg := newTestRegistry(t)
	RegisterRoutes(r, reg)

	req := httptest.NewRequest(http.MethodGet, common.APISessionsRoute, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dev1")
}

func TestSessionRouteNotFound(t *testing.T) {
	r := mux.NewRouter()
	RegisterRoutes(r, registry.New())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
