// -*- mode: Go; indent-tabs-mode: t -*-
//
// Copyright (C) 2018 Circutor S.A.
//
// SPDX-License-Identifier: Apache-2.0

package common

const (
	APIv1Prefix = "/api/v1"

	APIPingRoute       = APIv1Prefix + "/ping"
	APISessionsRoute   = APIv1Prefix + "/sessions"
	APISessionRoute    = APIv1Prefix + "/sessions/{name}"
	APIDisconnectRoute = APIv1Prefix + "/sessions/{name}/disconnect"

	ConfigDirectory = "./res"
	ConfigFileName  = "configuration.toml"

	NameVar = "name"

	CorrelationHeader = "X-Correlation-ID"
)
