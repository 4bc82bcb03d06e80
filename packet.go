// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2013 Julien Schmidt. All rights reserved.
// http://www.julienschmidt.com
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// Framer splits and joins the 4-byte header + payload envelope, tracking
// sequence ids and reassembling payloads split across multiple >16MiB
// packets. It owns a small rolling buffer of bytes fed to it by Feed;
// it never reads from a socket itself.
type Framer struct {
	buf []byte // unconsumed bytes, fed but not yet yielded as a payload
	seq uint8  // sequence id of the next outbound/expected packet
}

// NewFramer returns a Framer with its sequence counter at 0.
func NewFramer() *Framer {
	return &Framer{}
}

// Feed appends newly-read bytes to the framer's internal buffer. The caller
// retains ownership of p; Feed copies it in.
func (f *Framer) Feed(p []byte) {
	f.buf = append(f.buf, p...)
}

// Pending reports how many unconsumed bytes the framer is holding.
func (f *Framer) Pending() int {
	return len(f.buf)
}

// NextSequence returns the sequence id the framer expects on the next
// packet header it decodes, or will stamp on the next packet it encodes.
func (f *Framer) NextSequence() uint8 {
	return f.seq
}

// ResetSequence resets the sequence counter to 0. Callers must do this at
// the start of each command scope and at handshake start.
func (f *Framer) ResetSequence() {
	f.seq = 0
}

// Decode attempts to yield one complete logical payload from the bytes fed
// so far via Feed. It returns (payload, true, nil) on success, (nil, false,
// nil) if more bytes are needed, or a non-nil error if the buffered bytes
// are structurally invalid. The returned payload aliases a copy taken out
// of the framer's internal buffer and is safe to retain after the next
// Feed/Decode call.
//
// Sequence discontinuities are not faulted on; Framer always advances its
// own counter from whatever id it last saw plus one, regardless of what the
// caller expected.
func (f *Framer) Decode() ([]byte, bool, error) {
	var payload []byte
	consumed := 0

	for {
		if len(f.buf)-consumed < 4 {
			return nil, false, nil
		}
		hdr := f.buf[consumed : consumed+4]
		length := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		seq := hdr[3]

		if len(f.buf)-consumed-4 < length {
			return nil, false, nil
		}

		body := f.buf[consumed+4 : consumed+4+length]
		payload = append(payload, body...)
		consumed += 4 + length
		f.seq = seq + 1

		if length < maxPacketSize {
			break
		}
		// length == maxPacketSize: a continuation packet must follow.
	}

	f.buf = append([]byte(nil), f.buf[consumed:]...)
	return payload, true, nil
}

// Encode splits payload into one or more packets (each at most
// maxPacketSize bytes of body), prefixing each with its 4-byte header and
// consuming one sequence id per packet. A payload whose length is an exact
// multiple of maxPacketSize (including zero) still gets one empty
// terminating packet appended, so the peer's reassembly loop knows where
// the logical payload ends.
func (f *Framer) Encode(payload []byte) []byte {
	var out []byte
	remaining := payload

	for {
		n := len(remaining)
		if n > maxPacketSize {
			n = maxPacketSize
		}
		chunk := remaining[:n]

		out = WriteInt3(out, uint32(n))
		out = WriteInt1(out, f.seq)
		out = append(out, chunk...)
		f.seq++

		remaining = remaining[n:]
		if n < maxPacketSize {
			return out
		}
	}
}
