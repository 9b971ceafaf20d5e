// client/errors.go
// Copyright(c) 2025 simlink contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package client

import "errors"

var (
	ErrConnectionFailed = errors.New("unable to connect to simulator")
	ErrDisconnected     = errors.New("simulator connection lost")
	ErrNotSettable      = errors.New("variable is not settable")
)
