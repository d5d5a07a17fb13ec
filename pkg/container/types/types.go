// Copyright 2021 Granite Data
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"fmt"
)

// T is the oid of an element type.
type T uint8

const (
	T_any T = iota

	// numeric family
	T_int8
	T_int16
	T_int32
	T_int64
	T_uint8
	T_uint16
	T_uint32
	T_uint64
	T_float32
	T_float64
	T_decimal128
	T_decimal256

	// string family, kept only so callers can hand us unsupported
	// types and get a proper answer.
	T_varchar
)

// Maximum precision a decimal of each physical width can carry.
const (
	MaxDecimal128Width = 38
	MaxDecimal256Width = 76
)

// Type is the descriptor of a column's element type.
// Width holds the precision for decimal types.
type Type struct {
	Oid   T
	Size  int32
	Width int32
	Scale int32
}

func New(oid T, width, scale int32) Type {
	typ := oid.ToType()
	typ.Width = width
	typ.Scale = scale
	return typ
}

func (t T) ToType() Type {
	var typ Type

	typ.Oid = t
	switch t {
	case T_int8, T_uint8:
		typ.Size = 1
		typ.Width = 8
	case T_int16, T_uint16:
		typ.Size = 2
		typ.Width = 16
	case T_int32, T_uint32, T_float32:
		typ.Size = 4
		typ.Width = 32
	case T_int64, T_uint64, T_float64:
		typ.Size = 8
		typ.Width = 64
	case T_decimal128:
		typ.Size = 16
		typ.Width = MaxDecimal128Width
	case T_decimal256:
		typ.Size = 32
		typ.Width = MaxDecimal256Width
	}
	return typ
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_decimal128:
		return "DECIMAL128"
	case T_decimal256:
		return "DECIMAL256"
	case T_varchar:
		return "VARCHAR"
	}
	return fmt.Sprintf("unexpected type oid %d", t)
}

func (t Type) String() string {
	if t.Oid.IsDecimal() {
		return fmt.Sprintf("%s(%d,%d)", t.Oid.String(), t.Width, t.Scale)
	}
	return t.Oid.String()
}

// TypeSize returns the size in bytes of one element of this type.
func (t Type) TypeSize() int {
	return int(t.Size)
}

func (t Type) Eq(other Type) bool {
	return t.Oid == other.Oid && t.Width == other.Width && t.Scale == other.Scale
}

func (t T) IsSignedInt() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_int64:
		return true
	}
	return false
}

func (t T) IsUnsignedInt() bool {
	switch t {
	case T_uint8, T_uint16, T_uint32, T_uint64:
		return true
	}
	return false
}

func (t T) IsInteger() bool {
	return t.IsSignedInt() || t.IsUnsignedInt()
}

func (t T) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

func (t T) IsDecimal() bool {
	return t == T_decimal128 || t == T_decimal256
}

func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat() || t.IsDecimal()
}

// type constraints used by the generic container and aggregation code.

type Ints interface {
	int8 | int16 | int32 | int64
}

type UInts interface {
	uint8 | uint16 | uint32 | uint64
}

type Floats interface {
	float32 | float64
}

type Number interface {
	Ints | UInts | Floats
}

type Decimal interface {
	Decimal128 | Decimal256
}

// FixedSizeT covers every type a fixed-size vector can hold.
type FixedSizeT interface {
	bool | Number | Decimal
}
