// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// PacketKind classifies a payload received while a response is expected.
type PacketKind int

const (
	KindOther PacketKind = iota // phase-specific: column-count, column def, or row
	KindOK
	KindErr
	KindEOF
	KindLocalInfile
)

// Classify inspects p's first byte (and, for OK vs a phase-specific packet
// starting with 0xFE, its length) and reports which of the four sentinel
// packet kinds it is, per the response classifier rules. inQueryResponse
// should be true only while a COM_QUERY/COM_STMT_EXECUTE response's result
// set header is being awaited; a leading 0xFB elsewhere in a payload is a
// NULL marker, not a LOCAL INFILE request.
func Classify(p []byte, deprecateEOF bool, inQueryResponse bool) (PacketKind, error) {
	if len(p) == 0 {
		return 0, &ProtocolViolationError{What: "empty payload where a response was expected"}
	}

	switch p[0] {
	case iOK:
		if len(p) >= 7 {
			return KindOK, nil
		}
	case iERR:
		return KindErr, nil
	case iEOF:
		if deprecateEOF && len(p) >= 7 {
			return KindOK, nil
		}
		if len(p) < 9 {
			return KindEOF, nil
		}
	case iLocalInFile:
		if inQueryResponse {
			return KindLocalInfile, nil
		}
	}
	return KindOther, nil
}

// RejectLocalInfile returns ErrLocalInfileUnsupported if kind is
// KindLocalInfile, and nil otherwise. Callers that classify a query
// response and see KindLocalInfile should call this before doing anything
// else with the packet, since this package has no file-transfer path to
// satisfy a LOAD DATA LOCAL INFILE request.
func RejectLocalInfile(kind PacketKind) error {
	if kind == KindLocalInfile {
		return ErrLocalInfileUnsupported
	}
	return nil
}

// OKPacket is the payload of an OK packet.
type OKPacket struct {
	AffectedRows       uint64
	LastInsertID       uint64
	StatusFlags        uint16
	Warnings           uint16 // only meaningful if CLIENT_PROTOCOL_41
	Info               []byte
	SessionStateChange []byte // only present if SERVER_SESSION_STATE_CHANGED is set
}

// ParseOK decodes an OK packet. protocol41 must reflect whether
// CLIENT_PROTOCOL_41 was negotiated; sessionTrack must reflect
// CLIENT_SESSION_TRACK.
func ParseOK(p []byte, protocol41, sessionTrack bool) (*OKPacket, error) {
	c := NewCursor(p)
	marker, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if marker != iOK && marker != iEOF {
		return nil, &ProtocolViolationError{What: "OK packet does not start with 0x00/0xFE"}
	}

	ok := &OKPacket{}
	if ok.AffectedRows, err = c.ReadLengthEncodedInt(); err != nil {
		return nil, err
	}
	if ok.LastInsertID, err = c.ReadLengthEncodedInt(); err != nil {
		return nil, err
	}
	if protocol41 {
		status, err := c.ReadInt2()
		if err != nil {
			return nil, err
		}
		ok.StatusFlags = status
		if ok.Warnings, err = c.ReadInt2(); err != nil {
			return nil, err
		}
	}
	if c.Len() == 0 {
		return ok, nil
	}
	if sessionTrack {
		if ok.Info, err = c.ReadLengthEncodedString(); err != nil {
			return nil, err
		}
		if statusFlag(ok.StatusFlags)&statusSessionStateChanged != 0 && c.Len() > 0 {
			if ok.SessionStateChange, err = c.ReadLengthEncodedString(); err != nil {
				return nil, err
			}
		}
	} else {
		ok.Info = c.ReadEOFTerminatedString()
	}
	return ok, nil
}

// ParseErr decodes an ERR packet into a *ServerError.
func ParseErr(p []byte, protocol41 bool) (*ServerError, error) {
	c := NewCursor(p)
	marker, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if marker != iERR {
		return nil, &ProtocolViolationError{What: "ERR packet does not start with 0xFF"}
	}

	se := &ServerError{}
	code, err := c.ReadInt2()
	if err != nil {
		return nil, err
	}
	se.Code = code

	if protocol41 {
		marker, err := c.ReadByte()
		if err != nil {
			return nil, err
		}
		if marker != '#' {
			return nil, &ProtocolViolationError{What: "ERR packet missing '#' SQL-state marker"}
		}
		state, err := c.ReadFixed(5)
		if err != nil {
			return nil, err
		}
		se.State = string(state)
	}
	se.Message = string(c.ReadEOFTerminatedString())
	return se, nil
}

// EOFPacket is the payload of a legacy EOF packet.
type EOFPacket struct {
	Warnings    uint16
	StatusFlags uint16
}

// ParseEOF decodes an EOF packet.
func ParseEOF(p []byte) (*EOFPacket, error) {
	c := NewCursor(p)
	marker, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if marker != iEOF {
		return nil, &ProtocolViolationError{What: "EOF packet does not start with 0xFE"}
	}
	eof := &EOFPacket{}
	if c.Len() == 0 {
		return eof, nil
	}
	if eof.Warnings, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	if eof.StatusFlags, err = c.ReadInt2(); err != nil {
		return nil, err
	}
	return eof, nil
}
