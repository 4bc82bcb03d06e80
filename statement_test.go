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
	"testing"
)

// Scenario F: INSERT ... VALUES (?,?) with params (BIGINT 5, NULL), stmt_id 7.
func TestWriteStmtExecute(t *testing.T) {
	params := SliceParams{
		{Type: fieldTypeLongLong, Value: Value{Kind: KindInt64, I64: 5}},
		{Null: true, Type: fieldTypeString},
	}
	got := WriteStmtExecute(7, params, true)
	want := []byte{
		0x17,                   // COM_STMT_EXECUTE
		0x07, 0x00, 0x00, 0x00, // statement id = 7
		0x00,                   // cursor type = no cursor
		0x01, 0x00, 0x00, 0x00, // iteration count = 1
		0x02,       // null-bitmap: bit 1 set (param 1 is NULL)
		0x01,       // new_params_bound = 1
		0x08, 0x00, // param0 type = BIGINT, signed
		0xfe, 0x00, // param1 type = STRING, signed
		0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // param0 value = 5 (int64 LE)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("WriteStmtExecute = % x, want % x", got, want)
	}
}

func TestWriteStmtExecuteNoParams(t *testing.T) {
	got := WriteStmtExecute(1, SliceParams{}, true)
	want := []byte{0x17, 0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("WriteStmtExecute = % x, want % x", got, want)
	}
}

func TestWriteStmtExecuteParseExecuteWireRoundTrip(t *testing.T) {
	// testable property 4: write_execute followed by parse_execute_wire
	// round-trips the null-bitmap and non-null values for every parameter,
	// across primitive types.
	params := SliceParams{
		{Type: fieldTypeTiny, Value: Value{Kind: KindInt64, I64: -5}},
		{Type: fieldTypeLong, Unsigned: true, Value: Value{Kind: KindUint64, U64: 123456}},
		{Type: fieldTypeLongLong, Value: Value{Kind: KindInt64, I64: -9000000000}},
		{Type: fieldTypeDouble, Value: Value{Kind: KindFloat64, F64: 3.5}},
		{Null: true, Type: fieldTypeVarString},
		{Type: fieldTypeVarString, Value: Value{Kind: KindBytes, Raw: []byte("hi")}},
	}
	wire := WriteStmtExecute(42, params, true)

	gotTypes, gotNullBitmap, gotValues := parseExecuteWireForTest(t, wire, params.Len())

	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		if gotTypes[i] != p.Type {
			t.Errorf("param %d type = 0x%02x, want 0x%02x", i, gotTypes[i], p.Type)
		}
		wantNull := p.Null
		gotNull := gotNullBitmap[i/8]>>(uint(i)%8)&1 == 1
		if gotNull != wantNull {
			t.Errorf("param %d null-bit = %v, want %v", i, gotNull, wantNull)
		}
	}

	if gotValues[0].I64 != -5 {
		t.Errorf("param 0 = %+v", gotValues[0])
	}
	if gotValues[1].U64 != 123456 {
		t.Errorf("param 1 = %+v", gotValues[1])
	}
	if gotValues[2].I64 != -9000000000 {
		t.Errorf("param 2 = %+v", gotValues[2])
	}
	if gotValues[3].F64 != 3.5 {
		t.Errorf("param 3 = %+v", gotValues[3])
	}
	if string(gotValues[5].Raw) != "hi" {
		t.Errorf("param 5 = %+v", gotValues[5])
	}
}

// parseExecuteWireForTest decodes a WriteStmtExecute payload back into its
// per-parameter types, null-bitmap, and non-null values, mirroring what a
// server-side (or test) decoder of COM_STMT_EXECUTE would do. It lives in
// the test file because production code never needs to parse its own
// outbound command encoding; only the round-trip property test does.
func parseExecuteWireForTest(t *testing.T, wire []byte, n int) ([]fieldType, []byte, []Value) {
	t.Helper()
	c := NewCursor(wire)
	if _, err := c.ReadByte(); err != nil { // command byte
		t.Fatal(err)
	}
	if _, err := c.ReadInt4(); err != nil { // statement id
		t.Fatal(err)
	}
	if _, err := c.ReadByte(); err != nil { // cursor type
		t.Fatal(err)
	}
	if _, err := c.ReadInt4(); err != nil { // iteration count
		t.Fatal(err)
	}
	if n == 0 {
		return nil, nil, nil
	}
	nullBitmap, err := c.ReadFixed((n + 7) / 8)
	if err != nil {
		t.Fatal(err)
	}
	newParamsBound, err := c.ReadByte()
	if err != nil {
		t.Fatal(err)
	}
	if newParamsBound != 1 {
		t.Fatalf("expected new_params_bound=1, got %d", newParamsBound)
	}
	types := make([]fieldType, n)
	unsigned := make([]bool, n)
	for i := 0; i < n; i++ {
		typ, err := c.ReadByte()
		if err != nil {
			t.Fatal(err)
		}
		unsignedBit, err := c.ReadByte()
		if err != nil {
			t.Fatal(err)
		}
		types[i] = fieldType(typ)
		unsigned[i] = unsignedBit&0x80 != 0
	}
	values := make([]Value, n)
	for i := 0; i < n; i++ {
		if nullBitmap[i/8]>>(uint(i)%8)&1 == 1 {
			continue
		}
		col := &Column{Type: types[i]}
		if unsigned[i] {
			col.Flags |= flagUnsigned
		}
		v, err := decodeBinaryValue(c, col)
		if err != nil {
			t.Fatal(err)
		}
		values[i] = v
	}
	if c.Len() != 0 {
		t.Fatalf("%d trailing bytes after decoding execute payload", c.Len())
	}
	return types, nullBitmap, values
}

func TestParsePrepareOKTwelveBytePayload(t *testing.T) {
	p := []byte{
		0x00,
		0x01, 0x00, 0x00, 0x00, // statement id = 1
		0x02, 0x00, // column count = 2
		0x01, 0x00, // param count = 1
		0x00,       // filler
		0x00, 0x00, // warning count = 0
	}
	ok, err := ParsePrepareOK(p)
	if err != nil {
		t.Fatalf("ParsePrepareOK: %v", err)
	}
	if ok.StatementID != 1 || ok.ColumnCount != 2 || ok.ParamCount != 1 {
		t.Errorf("got %+v", ok)
	}
	if !ok.MetadataFollows {
		t.Errorf("MetadataFollows = false for a 12-byte payload, want true")
	}
}

func TestParsePrepareOKThirteenBytePayload(t *testing.T) {
	p := []byte{
		0x00,
		0x01, 0x00, 0x00, 0x00,
		0x00, 0x00,
		0x00, 0x00,
		0x00,
		0x00, 0x00,
		0x00, // metadata_follows = 0
	}
	ok, err := ParsePrepareOK(p)
	if err != nil {
		t.Fatalf("ParsePrepareOK: %v", err)
	}
	if ok.MetadataFollows {
		t.Errorf("MetadataFollows = true, want false")
	}
}

func TestWriteStmtPrepareClose(t *testing.T) {
	got := WriteStmtPrepare("SELECT ?")
	want := append([]byte{0x16}, "SELECT ?"...)
	if !bytes.Equal(got, want) {
		t.Fatalf("WriteStmtPrepare = % x, want % x", got, want)
	}

	gotClose := WriteStmtClose(9)
	wantClose := []byte{0x19, 0x09, 0x00, 0x00, 0x00}
	if !bytes.Equal(gotClose, wantClose) {
		t.Fatalf("WriteStmtClose = % x, want % x", gotClose, wantClose)
	}
}
