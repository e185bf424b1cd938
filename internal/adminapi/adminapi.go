// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

// Package adminapi exposes a small HTTP surface for operational
// visibility into a running netcli-driver service: listing sessions,
// inspecting one, and forcing a disconnect. Route registration follows
// the teacher's update.go initUpdate(s *Service) idiom, one function
// called once at startup against a caller-owned router.
package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/circutor/netcli-driver/internal/client"
	"github.com/circutor/netcli-driver/internal/common"
	"github.com/circutor/netcli-driver/internal/registry"
)

// RegisterRoutes wires the admin API's handlers onto r.
func RegisterRoutes(r *mux.Router, reg *registry.Registry) {
	r.Use(correlationMiddleware)
	r.HandleFunc(common.APIPingRoute, pingHandler).Methods(http.MethodGet)
	r.HandleFunc(common.APISessionsRoute, sessionsHandler(reg)).Methods(http.MethodGet)
	r.HandleFunc(common.APISessionRoute, sessionHandler(reg)).Methods(http.MethodGet)
	r.HandleFunc(common.APIDisconnectRoute, disconnectHandler(reg)).Methods(http.MethodPost)
}

// correlationMiddleware stamps every response with an X-Correlation-ID,
// reusing the caller's own header value when present. The ID is not passed
// on to sessions, so it does not appear in any audit.Entry.
func correlationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.CorrelationHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(common.CorrelationHeader, id)
		next.ServeHTTP(w, r)
	})
}

type sessionView struct {
	Name       string `json:"name"`
	DeviceKind string `json:"device_kind"`
	State      string `json:"state"`
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func sessionsHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		sessions := reg.All()
		views := make([]sessionView, 0, len(sessions))
		for _, s := range sessions {
			views = append(views, toView(s))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func sessionHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)[common.NameVar]
		s, ok := reg.ForName(name)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toView(s))
	}
}

func disconnectHandler(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)[common.NameVar]
		s, ok := reg.ForName(name)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		if err := s.Disconnect(); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func toView(s *client.Session) sessionView {
	return sessionView{
		Name:       s.Name(),
		DeviceKind: string(s.DeviceKind()),
		State:      string(s.State()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ListenAndServe starts the admin HTTP server and blocks until ctx is
// canceled, then shuts the server down gracefully.
func ListenAndServe(ctx context.Context, addr string, reg *registry.Registry) error {
	r := mux.NewRouter()
	RegisterRoutes(r, reg)
	srv := &http.Server{Addr: addr, Handler: r}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
