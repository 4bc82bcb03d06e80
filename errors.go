// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"errors"
	"fmt"
)

// ErrTruncated is returned by field-level decoders when fewer bytes remain
// in the cursor than the field requires. It is not a protocol error: the
// caller should fetch more bytes and retry. Framer.Decode never returns it
// directly — short input there yields (nil, false, nil).
var ErrTruncated = errors.New("mysqlwire: truncated field")

// ErrLocalInfileUnsupported is returned when the server requests
// LOAD DATA LOCAL INFILE streaming, which this package does not implement
// it does not implement.
var ErrLocalInfileUnsupported = errors.New("mysqlwire: LOCAL INFILE requests are not supported")

// ProtocolViolationError reports an illegal marker byte, an unexpected
// packet in the current phase, a malformed length-encoded integer, or a
// reserved field that was required to be zero but wasn't. Err, if set, lets
// callers match a specific sentinel (e.g. ErrMalformedPacket) with
// errors.Is without losing the What detail in Error().
type ProtocolViolationError struct {
	What string
	Err  error
}

func (e *ProtocolViolationError) Error() string {
	return "mysqlwire: protocol violation: " + e.What
}

func (e *ProtocolViolationError) Unwrap() error { return e.Err }

// ServerError is a verbatim ERR packet.
type ServerError struct {
	Code    uint16
	State   string // 5-character SQLSTATE, empty if CLIENT_PROTOCOL_41 was not negotiated
	Message string
}

func (e *ServerError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("mysqlwire: server error %d (%s): %s", e.Code, e.State, e.Message)
	}
	return fmt.Sprintf("mysqlwire: server error %d: %s", e.Code, e.Message)
}

// AuthUnsupportedError reports an auth-switch to a plugin this package has
// no registered handler for, or a caching_sha2_password full-auth request
// over a channel the caller has not marked secure.
type AuthUnsupportedError struct {
	Plugin string
	Reason string
}

func (e *AuthUnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("mysqlwire: auth plugin %q unsupported: %s", e.Plugin, e.Reason)
	}
	return fmt.Sprintf("mysqlwire: auth plugin %q unsupported", e.Plugin)
}

// TypeMismatchError reports a lossless-only value conversion that would
// truncate or change sign.
type TypeMismatchError struct {
	Column string
	From   string
	To     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("mysqlwire: column %q: cannot convert %s to %s without loss", e.Column, e.From, e.To)
}

// BadUsageError reports an invalid call into an encoder, such as a
// parameter-count mismatch between a Params value and a prepared
// statement's declared parameter count.
type BadUsageError struct {
	What string
}

func (e *BadUsageError) Error() string {
	return "mysqlwire: bad usage: " + e.What
}

// sentinel errors for a handful of fixed, well-known conditions that other
// packages commonly check with errors.Is.
var (
	// ErrMalformedPacket is wrapped into ProtocolViolationError by decoders
	// that detect a structurally impossible payload (e.g. a field count
	// that runs past the end of the packet).
	ErrMalformedPacket = errors.New("mysqlwire: malformed packet")

	// ErrPreProtocol41 is returned by the handshake engine when the server
	// greeting's protocol version byte is below 10.
	ErrPreProtocol41 = errors.New("mysqlwire: server protocol version below 10 is not supported")
)
