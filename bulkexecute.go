// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2023 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// BulkRow is one row of parameters for a MariaDB COM_STMT_BULK_EXECUTE
// command. Unlike COM_STMT_EXECUTE, each value within a row carries its
// own per-parameter marker byte (value present, NULL, use column default,
// or skip/ignore this parameter for this row) instead of a shared
// null-bitmap, since rows in a bulk batch may set different parameters.
type BulkRow []BulkParam

// BulkParam is one parameter within a BulkRow.
type BulkParam struct {
	Marker byte // one of bulkParamValue, bulkParamNull, bulkParamDefault, bulkParamIgnore
	Type   fieldType
	Unsigned bool
	Value  Value
}

// WriteStmtBulkExecute encodes a MariaDB COM_STMT_BULK_EXECUTE command.
// sendTypes should be true on the first bulk execution of a statement (or
// whenever a parameter's type changes); it sets
// MARIADB_CLIENT_STMT_BULK_OPERATIONS' SEND_TYPES_TO_SERVER flag. sendUnitResults
// sets the SEND_UNIT_RESULTS flag, requesting one OK packet per row of the
// batch instead of a single aggregate OK covering the whole batch.
func WriteStmtBulkExecute(statementID uint32, rows []BulkRow, sendTypes, sendUnitResults bool) []byte {
	var flags uint16
	if sendUnitResults {
		flags |= bulkSendUnitResults
	}
	if sendTypes {
		flags |= bulkSendTypesToServer
	}

	out := make([]byte, 0, 7)
	out = WriteInt1(out, byte(comStmtBulkExecute))
	out = WriteInt4(out, statementID)
	out = WriteInt2(out, flags)

	if len(rows) == 0 {
		return out
	}

	paramCount := len(rows[0])
	if sendTypes {
		for i := 0; i < paramCount; i++ {
			typ := byte(rows[0][i].Type)
			var unsignedBit byte
			if rows[0][i].Unsigned {
				unsignedBit = 0x80
			}
			out = WriteInt1(out, typ)
			out = WriteInt1(out, unsignedBit)
		}
	}

	for _, row := range rows {
		for _, p := range row {
			out = WriteInt1(out, p.Marker)
			if p.Marker == bulkParamValue {
				out = encodeBinaryValue(out, p.Type, p.Value)
			}
		}
	}

	return out
}
