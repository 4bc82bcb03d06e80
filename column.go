// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// Column is a borrowed view over a ColumnDefinition41 packet. Every []byte
// field aliases the payload passed to ParseColumn; it must not be retained
// past the lifetime of that payload.
type Column struct {
	Catalog       []byte
	Schema        []byte
	Table         []byte
	OrigTable     []byte
	Name          []byte
	OrigName      []byte
	Charset       uint16
	ColumnLength  uint32
	Type          fieldType
	Flags         fieldFlag
	Decimals      uint8
}

// Unsigned reports whether the column's FLAG_UNSIGNED bit is set.
func (c *Column) Unsigned() bool { return c.Flags&flagUnsigned != 0 }

// Nullable reports whether the column may hold NULL.
func (c *Column) Nullable() bool { return c.Flags&flagNotNULL == 0 }

// ParseColumn decodes one ColumnDefinition41 packet.
func ParseColumn(p []byte) (*Column, error) {
	c := NewCursor(p)
	col := &Column{}
	var err error

	if col.Catalog, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}
	if col.Schema, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}
	if col.Table, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}
	if col.OrigTable, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}
	if col.Name, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}
	if col.OrigName, err = c.ReadLengthEncodedString(); err != nil {
		return nil, err
	}

	fixedLen, err := c.ReadLengthEncodedInt()
	if err != nil {
		return nil, err
	}
	if fixedLen != 0x0c {
		return nil, &ProtocolViolationError{What: "column definition fixed-fields length is not 0x0c"}
	}

	if col.Charset, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	if col.ColumnLength, err = c.ReadInt4(); err != nil {
		return nil, err
	}
	typ, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	col.Type = fieldType(typ)
	flags, err := c.ReadInt2()
	if err != nil {
		return nil, err
	}
	col.Flags = fieldFlag(flags)
	decimals, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	col.Decimals = decimals

	// reserved 2 zero bytes, dropped; a COM_FIELD_LIST response may carry a
	// trailing default-value field here, which is out of scope.
	if err := c.Skip(2); err != nil {
		return nil, err
	}

	return col, nil
}

// WriteColumn encodes a ColumnDefinition41 packet. It exists mainly to
// exercise round-tripping in tests; command encoders never emit columns
// themselves (only the server does).
func WriteColumn(out []byte, col *Column) []byte {
	out = WriteLengthEncodedString(out, col.Catalog)
	out = WriteLengthEncodedString(out, col.Schema)
	out = WriteLengthEncodedString(out, col.Table)
	out = WriteLengthEncodedString(out, col.OrigTable)
	out = WriteLengthEncodedString(out, col.Name)
	out = WriteLengthEncodedString(out, col.OrigName)
	out = WriteLengthEncodedInt(out, 0x0c)
	out = WriteInt2(out, col.Charset)
	out = WriteInt4(out, col.ColumnLength)
	out = WriteInt1(out, byte(col.Type))
	out = WriteInt2(out, uint16(col.Flags))
	out = WriteInt1(out, col.Decimals)
	out = WriteInt2(out, 0)
	return out
}
