// Go MySQL Driver - A MySQL-Driver for Go's database/sql package
//
// Copyright 2017 The Go-MySQL-Driver Authors. All rights reserved.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package mysqlwire

// Param is one bound value for a prepared-statement execution: its
// declared wire type (used whether or not the value is NULL, since
// COM_STMT_EXECUTE always sends a full type descriptor per parameter) and,
// unless Null, the value itself.
type Param struct {
	Null     bool
	Type     fieldType
	Unsigned bool
	Value    Value
}

// Params is the minimal surface WriteExecute needs from a caller's bound
// argument list: a count, and random access to each parameter's declared
// type and value. SliceParams is the common implementation; callers with
// their own argument representation can implement Params directly instead
// of copying into a []Param first.
type Params interface {
	Len() int
	At(i int) Param
}

// SliceParams adapts a []Param to Params.
type SliceParams []Param

func (s SliceParams) Len() int       { return len(s) }
func (s SliceParams) At(i int) Param { return s[i] }
