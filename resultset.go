// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// ParseResultSetHeader reads the column count that precedes every
// COM_QUERY/COM_STMT_EXECUTE result set. Callers should Classify the
// payload first: an OK, ERR or (with CLIENT_DEPRECATE_EOF) an empty-result
// OK all look like "no columns follow" and never reach here.
func ParseResultSetHeader(p []byte) (columnCount uint64, err error) {
	c := NewCursor(p)
	return c.ReadLengthEncodedInt()
}

// DecodeTextRow decodes one ProtocolText::ResultsetRow payload into
// numCols length-encoded byte strings. A NULL column is a lone 0xFB byte
// and decodes to a nil slice (distinct from a present, zero-length
// string). The returned slices alias p.
func DecodeTextRow(p []byte, numCols int) ([][]byte, error) {
	c := NewCursor(p)
	row := make([][]byte, numCols)
	for i := 0; i < numCols; i++ {
		b, err := c.PeekByte()
		if err != nil {
			return nil, err
		}
		if b == iLocalInFile { // 0xFB: NULL marker in this context
			if _, err := c.ReadByte(); err != nil {
				return nil, err
			}
			row[i] = nil
			continue
		}
		s, err := c.ReadLengthEncodedString()
		if err != nil {
			return nil, err
		}
		row[i] = s
	}
	if c.Len() != 0 {
		return nil, &ProtocolViolationError{What: "text row payload longer than numCols columns", Err: ErrMalformedPacket}
	}
	return row, nil
}

// DecodeBinaryRow decodes one ProtocolBinary::ResultsetRow payload. p must
// be the row payload with its leading 0x00 packet-header byte still
// attached (the wire format starts every binary row with a reserved 0x00,
// distinguishing it from an OK/EOF row header sharing the same first
// byte). cols supplies each column's wire type and unsigned flag, in
// order.
func DecodeBinaryRow(p []byte, cols []*Column) ([]Value, error) {
	c := NewCursor(p)
	header, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if header != 0x00 {
		return nil, &ProtocolViolationError{What: "binary row payload does not start with 0x00"}
	}

	nullBitmapLen := (len(cols) + 7 + 2) / 8
	nullBitmap, err := c.ReadFixed(nullBitmapLen)
	if err != nil {
		return nil, err
	}

	values := make([]Value, len(cols))
	for i, col := range cols {
		bitPos := i + 2
		if nullBitmap[bitPos/8]>>(uint(bitPos)%8)&1 == 1 {
			values[i] = Value{Kind: KindNull}
			continue
		}
		v, err := decodeBinaryValue(c, col)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	if c.Len() != 0 {
		return nil, &ProtocolViolationError{What: "binary row payload longer than declared columns", Err: ErrMalformedPacket}
	}
	return values, nil
}
