// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import "bytes"

// HandshakeV10 is the server's initial greeting.
type HandshakeV10 struct {
	ProtocolVersion byte
	ServerVersion   []byte
	ConnectionID    uint32
	AuthPluginData  []byte // full salt, first 8 bytes + remainder joined
	Capabilities    ClientFlag
	Charset         byte
	StatusFlags     uint16
	AuthPluginName  []byte
}

// ParseHandshakeV10 decodes the server greeting packet.
func ParseHandshakeV10(p []byte) (*HandshakeV10, error) {
	c := NewCursor(p)

	version, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if version < minProtocolVersion {
		return nil, ErrPreProtocol41
	}

	h := &HandshakeV10{ProtocolVersion: version}

	if h.ServerVersion, err = c.ReadNullTerminatedString(); err != nil {
		return nil, err
	}
	if h.ConnectionID, err = c.ReadInt4(); err != nil {
		return nil, err
	}
	salt1, err := c.ReadFixed(8)
	if err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil { // filler, always 0x00
		return nil, err
	}

	capLow, err := c.ReadInt2()
	if err != nil {
		return nil, err
	}
	caps := uint32(capLow)

	if c.Len() == 0 {
		h.AuthPluginData = append([]byte(nil), salt1...)
		h.Capabilities = ClientFlag(caps)
		return h, nil
	}

	charset, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	h.Charset = charset

	status, err := c.ReadInt2()
	if err != nil {
		return nil, err
	}
	h.StatusFlags = status

	capHigh, err := c.ReadInt2()
	if err != nil {
		return nil, err
	}
	caps |= uint32(capHigh) << 16
	h.Capabilities = ClientFlag(caps)

	authDataLen, err := c.ReadByte()
	if err != nil {
		return nil, err
	}
	if err := c.Skip(10); err != nil { // reserved, always 0x00 * 10
		return nil, err
	}

	saltLen := int(authDataLen) - 9
	if saltLen < 12 {
		saltLen = 12
	}
	salt2, err := c.ReadFixed(saltLen)
	if err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil { // NUL terminator following the salt
		return nil, err
	}
	h.AuthPluginData = append(append([]byte(nil), salt1...), salt2...)

	if h.Capabilities&ClientPluginAuth != 0 {
		if h.AuthPluginName, err = c.ReadNullTerminatedString(); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// NegotiatedCapabilities intersects the server's advertised capabilities
// with what the client wants, optionally adding CLIENT_CONNECT_WITH_DB,
// CLIENT_SSL and CLIENT_DEPRECATE_EOF.
func NegotiatedCapabilities(server ClientFlag, withDB, withTLS, wantDeprecateEOF bool) ClientFlag {
	wanted := clientWantedFlags
	if withDB {
		wanted |= ClientConnectWithDB
	}
	if withTLS {
		wanted |= ClientSSL
	}
	if wantDeprecateEOF {
		wanted |= ClientDeprecateEOF
	}
	return server & wanted
}

// HandshakeResponse41Options carries exactly the fields the handshake
// engine needs to build a HandshakeResponse41; DSN parsing, TLS upgrade
// orchestration, and connection pooling are an external collaborator's
// concern.
type HandshakeResponse41Options struct {
	Capabilities ClientFlag
	Charset      byte
	Username     string
	AuthResponse []byte // already scrambled by the chosen auth plugin
	Database     string
	AuthPlugin   string
}

// WriteHandshakeResponse41 encodes a HandshakeResponse41 payload.
func WriteHandshakeResponse41(opts HandshakeResponse41Options) []byte {
	out := make([]byte, 0, 32+len(opts.Username)+len(opts.AuthResponse)+len(opts.Database))
	out = WriteInt4(out, uint32(opts.Capabilities))
	out = WriteInt4(out, 1<<30) // max-packet-size
	out = WriteInt1(out, opts.Charset)
	out = append(out, make([]byte, 23)...) // filler

	out = WriteNullTerminatedString(out, opts.Username)

	if opts.Capabilities&ClientPluginAuthLenEncClientData != 0 {
		out = WriteLengthEncodedString(out, opts.AuthResponse)
	} else if opts.Capabilities&ClientSecureConn != 0 {
		out = WriteInt1(out, byte(len(opts.AuthResponse)))
		out = append(out, opts.AuthResponse...)
	} else {
		out = WriteNullTerminatedString(out, string(opts.AuthResponse))
	}

	if opts.Capabilities&ClientConnectWithDB != 0 {
		out = WriteNullTerminatedString(out, opts.Database)
	}
	if opts.Capabilities&ClientPluginAuth != 0 {
		out = WriteNullTerminatedString(out, opts.AuthPlugin)
	}
	return out
}

// WriteSSLRequest encodes the SSLRequest payload: a HandshakeResponse41
// truncated to its capabilities/max-packet-size/charset/filler prefix, with
// no username. The caller sends this, then drives the TLS upgrade itself
// (out of scope here), then sends a full HandshakeResponse41 over the now
// encrypted channel.
func WriteSSLRequest(capabilities ClientFlag, charset byte) []byte {
	out := make([]byte, 0, 32)
	out = WriteInt4(out, uint32(capabilities|ClientSSL))
	out = WriteInt4(out, 1<<30)
	out = WriteInt1(out, charset)
	out = append(out, make([]byte, 23)...)
	return out
}

// AuthSwitchRequest is the server's request to switch to a different auth
// plugin, identified by a leading 0xFE byte in the auth-result state.
type AuthSwitchRequest struct {
	PluginName []byte
	PluginData []byte
}

// ParseAuthSwitchRequest decodes an auth-switch-request packet. Per the old
// (pre-4.1-compatible) fallback, a single-byte packet (just the 0xFE
// marker) means "switch to mysql_old_password using the original salt",
// which this package does not implement (pre-4.1 protocol is out of
// scope) — callers get AuthUnsupportedError in that case.
func ParseAuthSwitchRequest(p []byte) (*AuthSwitchRequest, error) {
	if len(p) == 0 || p[0] != iEOF {
		return nil, &ProtocolViolationError{What: "auth-switch-request does not start with 0xFE"}
	}
	if len(p) == 1 {
		return nil, &AuthUnsupportedError{Plugin: "mysql_old_password", Reason: "pre-4.1 protocol is not supported"}
	}

	c := NewCursor(p[1:])
	name, err := c.ReadNullTerminatedString()
	if err != nil {
		return nil, err
	}
	data := c.ReadEOFTerminatedString()
	// the trailing auth data is itself NUL-terminated on the wire; trim it.
	data = bytes.TrimSuffix(data, []byte{0})
	return &AuthSwitchRequest{PluginName: name, PluginData: data}, nil
}

// WriteAuthSwitchResponse encodes the client's raw response to an
// auth-switch-request: just the scrambled auth data, no framing.
func WriteAuthSwitchResponse(authResponse []byte) []byte {
	return append([]byte(nil), authResponse...)
}

// AuthMoreDataKind classifies a caching_sha2_password "more data" packet
// (leading byte 0x01).
type AuthMoreDataKind int

const (
	AuthMoreDataOther AuthMoreDataKind = iota
	AuthMoreDataFastAuthSuccess
	AuthMoreDataFullAuthRequired
)

// ClassifyAuthMoreData inspects an auth-more-data packet's second byte.
func ClassifyAuthMoreData(p []byte) (AuthMoreDataKind, error) {
	if len(p) == 0 || p[0] != iAuthMoreData {
		return 0, &ProtocolViolationError{What: "auth-more-data packet does not start with 0x01"}
	}
	if len(p) == 1 {
		return AuthMoreDataOther, nil
	}
	switch p[1] {
	case 0x03:
		return AuthMoreDataFastAuthSuccess, nil
	case 0x04:
		return AuthMoreDataFullAuthRequired, nil
	default:
		return 0, &ProtocolViolationError{What: "unknown caching_sha2_password auth-more-data state"}
	}
}
