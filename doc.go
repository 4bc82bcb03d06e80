// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

// Package mysqlwire implements the MySQL/MariaDB client wire protocol as a
// sans-I/O state machine: a set of pure functions and small value types that
// encode outbound command payloads and decode inbound server payloads
// without ever touching a socket.
//
// The package owns no connection, buffer pool, or goroutine. Callers feed it
// bytes read from a transport and hand its encoded output to a transport for
// writing; I/O, pooling, TLS handshake orchestration and row-to-struct
// mapping all live outside this package.
package mysqlwire
