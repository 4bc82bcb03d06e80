// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2012 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"bytes"
	"encoding/binary"
)

// Cursor is a read-only view over a single payload with a moving position.
// It never allocates and never copies; every Read* method returns a slice
// aliasing the underlying payload. The payload must outlive any slice
// returned from it (see Column, TextRow, BinaryRow).
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential field-at-a-time reads.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the number of unread bytes.
func (c *Cursor) Len() int { return len(c.data) - c.pos }

// Remainder returns every byte not yet consumed, without advancing.
func (c *Cursor) Remainder() []byte { return c.data[c.pos:] }

func (c *Cursor) need(n int) error {
	if c.Len() < n {
		return ErrTruncated
	}
	return nil
}

// ReadByte consumes and returns a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// PeekByte returns the next byte without advancing the cursor.
func (c *Cursor) PeekByte() (byte, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	return c.data[c.pos], nil
}

// ReadFixed consumes and returns the next n bytes verbatim.
func (c *Cursor) ReadFixed(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadInt1/2/3/4/6/8 read a little-endian fixed-width unsigned integer of
// the given byte width.
func (c *Cursor) ReadInt1() (uint8, error) {
	b, err := c.ReadByte()
	return b, err
}

func (c *Cursor) ReadInt2() (uint16, error) {
	b, err := c.ReadFixed(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *Cursor) ReadInt3() (uint32, error) {
	b, err := c.ReadFixed(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16, nil
}

func (c *Cursor) ReadInt4() (uint32, error) {
	b, err := c.ReadFixed(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *Cursor) ReadInt6() (uint64, error) {
	b, err := c.ReadFixed(6)
	if err != nil {
		return 0, err
	}
	var n uint64
	for i := 5; i >= 0; i-- {
		n = n<<8 | uint64(b[i])
	}
	return n, nil
}

func (c *Cursor) ReadInt8() (uint64, error) {
	b, err := c.ReadFixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadLengthEncodedInt reads a length-encoded integer per invariant 5:
// < 0xFB encodes itself in 1 byte; 0xFC/0xFD/0xFE are followed by 2/3/8
// little-endian bytes; 0xFB and 0xFF are forbidden as a LENENC-INT prefix
// (the caller must have already dealt with 0xFB as a NULL marker and 0xFF
// as an ERR marker before reaching here).
func (c *Cursor) ReadLengthEncodedInt() (uint64, error) {
	first, err := c.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case first < 0xfb:
		return uint64(first), nil
	case first == 0xfc:
		v, err := c.ReadInt2()
		return uint64(v), err
	case first == 0xfd:
		v, err := c.ReadInt3()
		return uint64(v), err
	case first == 0xfe:
		return c.ReadInt8()
	default:
		return 0, &ProtocolViolationError{What: "0xFB/0xFF is not a valid LENENC-INT prefix"}
	}
}

// ReadLengthEncodedString reads a length-prefixed byte slice. The returned
// slice aliases the cursor's underlying payload.
func (c *Cursor) ReadLengthEncodedString() ([]byte, error) {
	n, err := c.ReadLengthEncodedInt()
	if err != nil {
		return nil, err
	}
	return c.ReadFixed(int(n))
}

// ReadNullTerminatedString reads up to (and consumes) the next 0x00 byte,
// returning the bytes before it.
func (c *Cursor) ReadNullTerminatedString() ([]byte, error) {
	idx := bytes.IndexByte(c.data[c.pos:], 0x00)
	if idx < 0 {
		return nil, ErrTruncated
	}
	s := c.data[c.pos : c.pos+idx]
	c.pos += idx + 1
	return s, nil
}

// ReadEOFTerminatedString returns every remaining byte in the payload.
func (c *Cursor) ReadEOFTerminatedString() []byte {
	s := c.data[c.pos:]
	c.pos = len(c.data)
	return s
}

// Skip advances the cursor by n bytes without returning them.
func (c *Cursor) Skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

/******************************************************************************
*                                Writers                                      *
******************************************************************************/

// WriteInt1/2/3/4/6/8 append a little-endian fixed-width unsigned integer to
// out and return the grown slice.

func WriteInt1(out []byte, v uint8) []byte {
	return append(out, v)
}

func WriteInt2(out []byte, v uint16) []byte {
	return append(out, byte(v), byte(v>>8))
}

func WriteInt3(out []byte, v uint32) []byte {
	return append(out, byte(v), byte(v>>8), byte(v>>16))
}

func WriteInt4(out []byte, v uint32) []byte {
	return append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func WriteInt6(out []byte, v uint64) []byte {
	return append(out,
		byte(v), byte(v>>8), byte(v>>16),
		byte(v>>24), byte(v>>32), byte(v>>40))
}

func WriteInt8(out []byte, v uint64) []byte {
	return append(out,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

// WriteLengthEncodedInt appends the canonical length-encoded form of v
// (testable property 1: round-trips with ReadLengthEncodedInt and uses the
// shortest of the four prefix forms).
func WriteLengthEncodedInt(out []byte, v uint64) []byte {
	switch {
	case v < 0xfb:
		return append(out, byte(v))
	case v <= 0xffff:
		out = append(out, 0xfc)
		return WriteInt2(out, uint16(v))
	case v <= 0xffffff:
		out = append(out, 0xfd)
		return WriteInt3(out, uint32(v))
	default:
		out = append(out, 0xfe)
		return WriteInt8(out, v)
	}
}

// WriteLengthEncodedString appends a length-prefixed byte string.
func WriteLengthEncodedString(out []byte, s []byte) []byte {
	out = WriteLengthEncodedInt(out, uint64(len(s)))
	return append(out, s...)
}

// WriteNullTerminatedString appends s followed by a 0x00 terminator.
func WriteNullTerminatedString(out []byte, s string) []byte {
	out = append(out, s...)
	return append(out, 0x00)
}
