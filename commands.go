// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// WriteQuery encodes a COM_QUERY command.
func WriteQuery(query string) []byte {
	out := make([]byte, 0, 1+len(query))
	out = WriteInt1(out, byte(comQuery))
	return append(out, query...)
}

// WritePing encodes a COM_PING command. The server always answers with a
// plain OK packet.
func WritePing() []byte {
	return []byte{byte(comPing)}
}

// WriteQuit encodes a COM_QUIT command. The server closes the connection
// without sending any response.
func WriteQuit() []byte {
	return []byte{byte(comQuit)}
}

// WriteInitDB encodes a COM_INIT_DB command, changing the connection's
// default schema.
func WriteInitDB(schema string) []byte {
	out := make([]byte, 0, 1+len(schema))
	out = WriteInt1(out, byte(comInitDB))
	return append(out, schema...)
}

// WriteResetConnection encodes a COM_RESET_CONNECTION command: resets
// session state (transaction, temp tables, locks, prepared statements)
// while keeping the connection and its authentication open.
func WriteResetConnection() []byte {
	return []byte{byte(comResetConnection)}
}
