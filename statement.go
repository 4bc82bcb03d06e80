// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2012 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// PrepareOK is the decoded COM_STMT_PREPARE_OK response.
type PrepareOK struct {
	StatementID  uint32
	ColumnCount  uint16
	ParamCount   uint16
	WarningCount uint16

	// MetadataFollows reports whether ColumnCount/ParamCount column and
	// parameter definition packets follow this one. It is always true
	// unless the client negotiated CLIENT_OPTIONAL_RESULTSET_METADATA and
	// the server chose to omit them (RESULTSET_METADATA_NONE).
	MetadataFollows bool
}

// ParsePrepareOK decodes a COM_STMT_PREPARE_OK payload.
//
// Whether a trailing metadata_follows byte is present (MySQL 8.0,
// CLIENT_OPTIONAL_RESULTSET_METADATA) is gated on the payload's own
// length rather than on a capability flag threaded through from the
// handshake: a 13-byte payload carries metadata_follows, a 12-byte payload
// does not and metadata is assumed to follow.
func ParsePrepareOK(p []byte) (*PrepareOK, error) {
	c := NewCursor(p)
	marker, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if marker != iOK {
		return nil, &ProtocolViolationError{What: "COM_STMT_PREPARE_OK does not start with 0x00"}
	}

	ok := &PrepareOK{MetadataFollows: true}
	if ok.StatementID, err = c.ReadInt4(); err != nil {
		return nil, err
	}
	if ok.ColumnCount, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	if ok.ParamCount, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil { // reserved filler, always 0x00
		return nil, err
	}
	if ok.WarningCount, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	if len(p) == 13 {
		mf, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		ok.MetadataFollows = mf != 0
	}
	return ok, nil
}

// WriteStmtPrepare encodes a COM_STMT_PREPARE command.
func WriteStmtPrepare(query string) []byte {
	out := make([]byte, 0, 1+len(query))
	out = WriteInt1(out, byte(comStmtPrepare))
	return append(out, query...)
}

// WriteStmtClose encodes a COM_STMT_CLOSE command. The server sends no
// response to this command.
func WriteStmtClose(statementID uint32) []byte {
	out := make([]byte, 0, 5)
	out = WriteInt1(out, byte(comStmtClose))
	return WriteInt4(out, statementID)
}

// WriteStmtReset encodes a COM_STMT_RESET command, which clears any
// buffered SEND_LONG_DATA state and resets cursor state without discarding
// the prepared statement itself.
func WriteStmtReset(statementID uint32) []byte {
	out := make([]byte, 0, 5)
	out = WriteInt1(out, byte(comStmtReset))
	return WriteInt4(out, statementID)
}

// Cursor type flags for COM_STMT_EXECUTE's flags byte. This package only
// ever emits CursorTypeNoCursor; server-side cursors are an external
// collaborator's concern (they require COM_STMT_FETCH looping, which this
// sans-I/O core leaves to its caller).
const (
	CursorTypeNoCursor byte = 0x00
)

// WriteStmtExecute encodes a COM_STMT_EXECUTE command for statementID with
// the given bound parameters. newParamsBound should be true on the first
// execution of a statement (or whenever a parameter's type has changed
// since the previous execution) and may be false on a repeat execution
// with identical parameter types, per the protocol's type-caching
// allowance; this package always passes true, leaving the optimization to
// callers that track type stability across executions themselves.
func WriteStmtExecute(statementID uint32, params Params, newParamsBound bool) []byte {
	n := params.Len()

	out := make([]byte, 0, 10+(n+7)/8+1+n*2+n*4)
	out = WriteInt1(out, byte(comStmtExecute))
	out = WriteInt4(out, statementID)
	out = WriteInt1(out, CursorTypeNoCursor)
	out = WriteInt4(out, 1) // iteration-count, always 1

	if n == 0 {
		return out
	}

	nullBitmap := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if params.At(i).Null {
			nullBitmap[i/8] |= 1 << uint(i%8)
		}
	}
	out = append(out, nullBitmap...)

	if newParamsBound {
		out = WriteInt1(out, 1)
		for i := 0; i < n; i++ {
			p := params.At(i)
			typ := byte(p.Type)
			var unsignedBit byte
			if p.Unsigned {
				unsignedBit = 0x80
			}
			out = WriteInt1(out, typ)
			out = WriteInt1(out, unsignedBit)
		}
	} else {
		out = WriteInt1(out, 0)
	}

	for i := 0; i < n; i++ {
		p := params.At(i)
		if p.Null {
			continue
		}
		out = encodeBinaryValue(out, p.Type, p.Value)
	}

	return out
}
