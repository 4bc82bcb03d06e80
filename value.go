// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ValueKind tags the variant a Value holds. The binary result-set and
// binary parameter protocols both encode the MySQL temporal types as one
// of a handful of fixed-length wire shapes (the "length byte" selects
// which), so Value carries one tag per shape rather than collapsing
// everything to a formatted string the way the text protocol does.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindBytes     // VARCHAR/BLOB/STRING/DECIMAL/NEWDECIMAL/BIT/ENUM/SET/GEOMETRY
	KindDate      // YYYY-MM-DD, or the zero date if length was 0
	KindDatetime  // YYYY-MM-DD HH:MM:SS[.ffffff], or the zero datetime if length was 0
	KindTime      // [-]DDD HH:MM:SS[.ffffff], or zero duration if length was 0
)

// Value is a tagged variant of every shape a column value can take on the
// wire. Exactly one field group is meaningful for a given Kind.
type Value struct {
	Kind ValueKind

	I64 int64
	U64 uint64
	F32 float32
	F64 float64
	Raw []byte // KindBytes

	Neg                    bool // KindTime only
	Year                   uint16
	Month, Day             uint8
	Hour, Minute, Second   uint8
	Microsecond            uint32
	Days                   uint32 // KindTime: whole-day component of "D HH:MM:SS"
}

func (v Value) IsNull() bool { return v.Kind == KindNull }

// Decimal converts a KindBytes value to a decimal.Decimal, for columns
// typed DECIMAL or NEWDECIMAL. This is a convenience on top of the core
// tagged-value model, not a wire concern: the DECIMAL/NEWDECIMAL wire
// representation is just a length-encoded ASCII string in both the text
// and binary protocols, so no decoder above needs to special-case it.
func (v Value) Decimal() (decimal.Decimal, error) {
	if v.Kind != KindBytes {
		return decimal.Decimal{}, &TypeMismatchError{From: v.Kind.String(), To: "decimal.Decimal"}
	}
	return decimal.NewFromString(string(v.Raw))
}

// columnIntWidth returns the wire width in bits of an integer column type,
// or 0 if typ is not an integer type.
func columnIntWidth(typ fieldType) int {
	switch typ {
	case fieldTypeTiny:
		return 8
	case fieldTypeShort, fieldTypeYear:
		return 16
	case fieldTypeInt24:
		return 24
	case fieldTypeLong:
		return 32
	case fieldTypeLongLong:
		return 64
	default:
		return 0
	}
}

// Int decodes v, which must be the KindInt64/KindUint64 value of an integer
// column, into the caller's requested width and signedness. This is a
// lossless-only conversion: it fails with a *TypeMismatchError if col's
// actual signedness differs from the requested unsigned, or if col's
// declared wire width exceeds width. Widening within the same signedness
// class (e.g. reading a TINYINT column as a 32-bit destination) is always
// permitted. The result is returned as int64 in both cases; callers
// requesting unsigned should reinterpret it as uint64(result), which is a
// lossless bit-for-bit reinterpretation.
func (v Value) Int(col *Column, width int, unsigned bool) (int64, error) {
	colWidth := columnIntWidth(col.Type)
	if colWidth == 0 {
		return 0, &TypeMismatchError{Column: string(col.Name), From: fmt.Sprintf("column type 0x%02x", byte(col.Type)), To: "int"}
	}
	if col.Unsigned() != unsigned {
		return 0, &TypeMismatchError{Column: string(col.Name), From: signWord(col.Unsigned()), To: signWord(unsigned)}
	}
	if colWidth > width {
		return 0, &TypeMismatchError{
			Column: string(col.Name),
			From:   fmt.Sprintf("%d-bit", colWidth),
			To:     fmt.Sprintf("%d-bit", width),
		}
	}
	switch v.Kind {
	case KindInt64:
		return v.I64, nil
	case KindUint64:
		return int64(v.U64), nil
	default:
		return 0, &TypeMismatchError{Column: string(col.Name), From: v.Kind.String(), To: "int"}
	}
}

func signWord(unsigned bool) string {
	if unsigned {
		return "unsigned"
	}
	return "signed"
}

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBytes:
		return "bytes"
	case KindDate:
		return "date"
	case KindDatetime:
		return "datetime"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// decodeBinaryValue reads one column's value out of a ProtocolBinary
// result-set row, per col's declared wire type and unsigned flag. The
// caller must already have determined from the row's NULL-bitmap that this
// column is not NULL.
func decodeBinaryValue(c *Cursor, col *Column) (Value, error) {
	unsigned := col.Unsigned()

	switch col.Type {
	case fieldTypeNULL:
		return Value{Kind: KindNull}, nil

	case fieldTypeTiny:
		b, err := c.ReadByte()
		if err != nil {
			return Value{}, err
		}
		if unsigned {
			return Value{Kind: KindUint64, U64: uint64(b)}, nil
		}
		return Value{Kind: KindInt64, I64: int64(int8(b))}, nil

	case fieldTypeShort, fieldTypeYear:
		n, err := c.ReadInt2()
		if err != nil {
			return Value{}, err
		}
		if unsigned {
			return Value{Kind: KindUint64, U64: uint64(n)}, nil
		}
		return Value{Kind: KindInt64, I64: int64(int16(n))}, nil

	case fieldTypeInt24, fieldTypeLong:
		n, err := c.ReadInt4()
		if err != nil {
			return Value{}, err
		}
		if unsigned {
			return Value{Kind: KindUint64, U64: uint64(n)}, nil
		}
		return Value{Kind: KindInt64, I64: int64(int32(n))}, nil

	case fieldTypeLongLong:
		n, err := c.ReadInt8()
		if err != nil {
			return Value{}, err
		}
		if unsigned {
			return Value{Kind: KindUint64, U64: n}, nil
		}
		return Value{Kind: KindInt64, I64: int64(n)}, nil

	case fieldTypeFloat:
		n, err := c.ReadInt4()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindFloat32, F32: math.Float32frombits(n)}, nil

	case fieldTypeDouble:
		n, err := c.ReadInt8()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindFloat64, F64: math.Float64frombits(n)}, nil

	case fieldTypeDecimal, fieldTypeNewDecimal, fieldTypeVarChar, fieldTypeBit,
		fieldTypeEnum, fieldTypeSet, fieldTypeTinyBLOB, fieldTypeMediumBLOB,
		fieldTypeLongBLOB, fieldTypeBLOB, fieldTypeVarString, fieldTypeString,
		fieldTypeGeometry, fieldTypeJSON:
		raw, err := c.ReadLengthEncodedString()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindBytes, Raw: raw}, nil

	case fieldTypeDate, fieldTypeNewDate:
		return decodeBinaryDate(c)

	case fieldTypeDateTime, fieldTypeTimestamp:
		return decodeBinaryDatetime(c)

	case fieldTypeTime:
		return decodeBinaryTime(c)

	default:
		return Value{}, &ProtocolViolationError{What: fmt.Sprintf("unsupported column type 0x%02x", byte(col.Type))}
	}
}

// decodeBinaryDate reads a ProtocolBinary::MYSQL_TYPE_DATE value: a length
// byte (0 or 4) followed by year/month/day when non-zero.
func decodeBinaryDate(c *Cursor) (Value, error) {
	n, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v := Value{Kind: KindDate}
	if n == 0 {
		return v, nil
	}
	if n != 4 {
		return Value{}, &ProtocolViolationError{What: "DATE value length is neither 0 nor 4"}
	}
	year, err := c.ReadInt2()
	if err != nil {
		return Value{}, err
	}
	month, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	day, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v.Year, v.Month, v.Day = year, month, day
	return v, nil
}

// decodeBinaryDatetime reads a ProtocolBinary::MYSQL_TYPE_DATETIME or
// MYSQL_TYPE_TIMESTAMP value: a length byte (0, 4, 7 or 11) gating how much
// of year/month/day/hour/minute/second/microsecond follows.
func decodeBinaryDatetime(c *Cursor) (Value, error) {
	n, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v := Value{Kind: KindDatetime}
	if n == 0 {
		return v, nil
	}
	if n != 4 && n != 7 && n != 11 {
		return Value{}, &ProtocolViolationError{What: "DATETIME value length is not one of 0, 4, 7, 11"}
	}
	year, err := c.ReadInt2()
	if err != nil {
		return Value{}, err
	}
	month, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	day, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v.Year, v.Month, v.Day = year, month, day
	if n == 4 {
		return v, nil
	}
	hour, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	minute, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	second, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v.Hour, v.Minute, v.Second = hour, minute, second
	if n == 7 {
		return v, nil
	}
	micro, err := c.ReadInt4()
	if err != nil {
		return Value{}, err
	}
	v.Microsecond = micro
	return v, nil
}

// decodeBinaryTime reads a ProtocolBinary::MYSQL_TYPE_TIME value: a length
// byte (0, 8 or 12) gating sign/days/hour/minute/second/microsecond.
func decodeBinaryTime(c *Cursor) (Value, error) {
	n, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v := Value{Kind: KindTime}
	if n == 0 {
		return v, nil
	}
	if n != 8 && n != 12 {
		return Value{}, &ProtocolViolationError{What: "TIME value length is not one of 0, 8, 12"}
	}
	sign, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	days, err := c.ReadInt4()
	if err != nil {
		return Value{}, err
	}
	hour, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	minute, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	second, err := c.ReadByte()
	if err != nil {
		return Value{}, err
	}
	v.Neg = sign != 0
	v.Days, v.Hour, v.Minute, v.Second = days, hour, minute, second
	if n == 8 {
		return v, nil
	}
	micro, err := c.ReadInt4()
	if err != nil {
		return Value{}, err
	}
	v.Microsecond = micro
	return v, nil
}

// encodeBinaryValue appends v's wire encoding (no length-byte wrapper
// beyond what the value's own shape requires) to out, for a non-NULL bound
// parameter declared with wire type typ. NULL parameters are never passed
// here; they are represented purely in the null-bitmap (see statement.go).
func encodeBinaryValue(out []byte, typ fieldType, v Value) []byte {
	switch typ {
	case fieldTypeTiny:
		if v.Kind == KindUint64 {
			return WriteInt1(out, byte(v.U64))
		}
		return WriteInt1(out, byte(v.I64))

	case fieldTypeShort, fieldTypeYear:
		if v.Kind == KindUint64 {
			return WriteInt2(out, uint16(v.U64))
		}
		return WriteInt2(out, uint16(v.I64))

	case fieldTypeInt24, fieldTypeLong:
		if v.Kind == KindUint64 {
			return WriteInt4(out, uint32(v.U64))
		}
		return WriteInt4(out, uint32(v.I64))

	case fieldTypeLongLong:
		if v.Kind == KindUint64 {
			return WriteInt8(out, v.U64)
		}
		return WriteInt8(out, uint64(v.I64))

	case fieldTypeFloat:
		return WriteInt4(out, math.Float32bits(v.F32))

	case fieldTypeDouble:
		return WriteInt8(out, math.Float64bits(v.F64))

	case fieldTypeDate, fieldTypeNewDate:
		return encodeBinaryDate(out, v)

	case fieldTypeDateTime, fieldTypeTimestamp:
		return encodeBinaryDatetime(out, v)

	case fieldTypeTime:
		return encodeBinaryTime(out, v)

	default: // everything else travels as a length-encoded string
		return WriteLengthEncodedString(out, v.Raw)
	}
}

func encodeBinaryDate(out []byte, v Value) []byte {
	if v.Year == 0 && v.Month == 0 && v.Day == 0 {
		return WriteInt1(out, 0)
	}
	out = WriteInt1(out, 4)
	out = WriteInt2(out, v.Year)
	out = WriteInt1(out, v.Month)
	return WriteInt1(out, v.Day)
}

func encodeBinaryDatetime(out []byte, v Value) []byte {
	switch {
	case v.Year == 0 && v.Month == 0 && v.Day == 0 && v.Hour == 0 && v.Minute == 0 && v.Second == 0 && v.Microsecond == 0:
		return WriteInt1(out, 0)
	case v.Microsecond != 0:
		out = WriteInt1(out, 11)
	case v.Hour != 0 || v.Minute != 0 || v.Second != 0:
		out = WriteInt1(out, 7)
	default:
		out = WriteInt1(out, 4)
	}
	out = WriteInt2(out, v.Year)
	out = WriteInt1(out, v.Month)
	out = WriteInt1(out, v.Day)
	if v.Hour == 0 && v.Minute == 0 && v.Second == 0 && v.Microsecond == 0 {
		return out
	}
	out = WriteInt1(out, v.Hour)
	out = WriteInt1(out, v.Minute)
	out = WriteInt1(out, v.Second)
	if v.Microsecond == 0 {
		return out
	}
	return WriteInt4(out, v.Microsecond)
}

func encodeBinaryTime(out []byte, v Value) []byte {
	if v.Days == 0 && v.Hour == 0 && v.Minute == 0 && v.Second == 0 && v.Microsecond == 0 {
		return WriteInt1(out, 0)
	}
	if v.Microsecond != 0 {
		out = WriteInt1(out, 12)
	} else {
		out = WriteInt1(out, 8)
	}
	if v.Neg {
		out = WriteInt1(out, 1)
	} else {
		out = WriteInt1(out, 0)
	}
	out = WriteInt4(out, v.Days)
	out = WriteInt1(out, v.Hour)
	out = WriteInt1(out, v.Minute)
	out = WriteInt1(out, v.Second)
	if v.Microsecond == 0 {
		return out
	}
	return WriteInt4(out, v.Microsecond)
}
