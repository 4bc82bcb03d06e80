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
	"bytes"
	"testing"
)

func TestFramerEncodeDecodeSinglePacket(t *testing.T) {
	payload := []byte("SELECT 1")

	enc := NewFramer()
	wire := enc.Encode(payload)

	want := append([]byte{8, 0, 0, 0}, payload...)
	if !bytes.Equal(wire, want) {
		t.Fatalf("Encode = % x, want % x", wire, want)
	}

	dec := NewFramer()
	dec.Feed(wire)
	got, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("Decode: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Decode = %q, want %q", got, payload)
	}
}

func TestFramerDecodeAcrossArbitraryFeedBoundaries(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 500)
	enc := NewFramer()
	wire := enc.Encode(payload)

	// feed the wire bytes back in small, uneven chunks and confirm the
	// reassembled payload is identical regardless of how Feed was called
	// (testable property 2).
	for _, chunkSize := range []int{1, 3, 7, 17, 256} {
		dec := NewFramer()
		for i := 0; i < len(wire); i += chunkSize {
			end := i + chunkSize
			if end > len(wire) {
				end = len(wire)
			}
			dec.Feed(wire[i:end])
		}
		got, ok, err := dec.Decode()
		if err != nil || !ok {
			t.Fatalf("chunkSize=%d: ok=%v err=%v", chunkSize, ok, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("chunkSize=%d: got %d bytes, want %d", chunkSize, len(got), len(payload))
		}
	}
}

func TestFramerDecodeNeedsMoreBytes(t *testing.T) {
	dec := NewFramer()
	dec.Feed([]byte{5, 0, 0, 0, 'a', 'b'}) // header says 5 bytes, only 2 given
	_, ok, err := dec.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("Decode reported complete with insufficient bytes buffered")
	}
}

func TestFramerMultiPacketReassembly(t *testing.T) {
	// two maxPacketSize chunks followed by a short terminator: the framer
	// must yield exactly one logical payload whose length is the sum of
	// all three chunks (testable property 3).
	chunk := bytes.Repeat([]byte("z"), maxPacketSize)
	tail := []byte("tail")
	payload := append(append(append([]byte{}, chunk...), chunk...), tail...)

	enc := NewFramer()
	wire := enc.Encode(payload)

	dec := NewFramer()
	dec.Feed(wire)
	got, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if len(got) != len(payload) {
		t.Fatalf("got %d bytes, want %d", len(got), len(payload))
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("reassembled payload mismatch")
	}
	if dec.Pending() != 0 {
		t.Fatalf("%d bytes left unconsumed", dec.Pending())
	}
}

func TestFramerSequenceIDsAdvanceAcrossPackets(t *testing.T) {
	enc := NewFramer()
	chunk := bytes.Repeat([]byte("y"), maxPacketSize)
	payload := append(append([]byte{}, chunk...), []byte("end")...)
	wire := enc.Encode(payload)

	// two packets emitted (one maxPacketSize chunk, one short terminator):
	// sequence advances by 2.
	if enc.NextSequence() != 2 {
		t.Fatalf("NextSequence after encode = %d, want 2", enc.NextSequence())
	}

	dec := NewFramer()
	dec.Feed(wire)
	if _, ok, err := dec.Decode(); err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if dec.NextSequence() != 2 {
		t.Fatalf("NextSequence after decode = %d, want 2", dec.NextSequence())
	}
}

func TestFramerDoesNotFaultOnSequenceMismatch(t *testing.T) {
	// a packet header claiming sequence id 99 where 0 was expected must
	// still decode; the framer tracks but never verifies sequence ids.
	wire := []byte{3, 0, 0, 99, 'f', 'o', 'o'}
	dec := NewFramer()
	dec.Feed(wire)
	got, ok, err := dec.Decode()
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if string(got) != "foo" {
		t.Fatalf("got %q", got)
	}
	if dec.NextSequence() != 100 {
		t.Fatalf("NextSequence = %d, want 100 (99+1)", dec.NextSequence())
	}
}

func TestFramerResetSequence(t *testing.T) {
	enc := NewFramer()
	enc.Encode([]byte("abc"))
	if enc.NextSequence() == 0 {
		t.Fatalf("sequence did not advance")
	}
	enc.ResetSequence()
	if enc.NextSequence() != 0 {
		t.Fatalf("ResetSequence left sequence at %d", enc.NextSequence())
	}
}
