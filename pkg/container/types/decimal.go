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
	"math/big"
	"math/bits"
	"strings"
)

// Decimal128 is a 128-bit two's complement fixed point value.
// The scale lives in the column Type, not in the value.
type Decimal128 struct {
	B0_63   uint64
	B64_127 uint64
}

// Decimal256 is a 256-bit two's complement fixed point value.
type Decimal256 struct {
	B0_63    uint64
	B64_127  uint64
	B128_191 uint64
	B192_255 uint64
}

func (x Decimal128) Sign() bool {
	return x.B64_127>>63 != 0
}

func (x Decimal256) Sign() bool {
	return x.B192_255>>63 != 0
}

// AddWrapping adds y to x with silent wrap on overflow.
func (x Decimal128) AddWrapping(y Decimal128) Decimal128 {
	var carry uint64
	x.B0_63, carry = bits.Add64(x.B0_63, y.B0_63, 0)
	x.B64_127, _ = bits.Add64(x.B64_127, y.B64_127, carry)
	return x
}

// SubWrapping subtracts y from x with silent wrap on overflow.
func (x Decimal128) SubWrapping(y Decimal128) Decimal128 {
	var borrow uint64
	x.B0_63, borrow = bits.Sub64(x.B0_63, y.B0_63, 0)
	x.B64_127, _ = bits.Sub64(x.B64_127, y.B64_127, borrow)
	return x
}

func (x Decimal256) AddWrapping(y Decimal256) Decimal256 {
	var carry uint64
	x.B0_63, carry = bits.Add64(x.B0_63, y.B0_63, 0)
	x.B64_127, carry = bits.Add64(x.B64_127, y.B64_127, carry)
	x.B128_191, carry = bits.Add64(x.B128_191, y.B128_191, carry)
	x.B192_255, _ = bits.Add64(x.B192_255, y.B192_255, carry)
	return x
}

func (x Decimal256) SubWrapping(y Decimal256) Decimal256 {
	var borrow uint64
	x.B0_63, borrow = bits.Sub64(x.B0_63, y.B0_63, 0)
	x.B64_127, borrow = bits.Sub64(x.B64_127, y.B64_127, borrow)
	x.B128_191, borrow = bits.Sub64(x.B128_191, y.B128_191, borrow)
	x.B192_255, _ = bits.Sub64(x.B192_255, y.B192_255, borrow)
	return x
}

// Decimal128FromInt64 sign-extends v into a Decimal128.
func Decimal128FromInt64(v int64) Decimal128 {
	d := Decimal128{B0_63: uint64(v)}
	if v < 0 {
		d.B64_127 = ^uint64(0)
	}
	return d
}

// Decimal256FromInt64 sign-extends v into a Decimal256.
func Decimal256FromInt64(v int64) Decimal256 {
	d := Decimal256{B0_63: uint64(v)}
	if v < 0 {
		d.B64_127 = ^uint64(0)
		d.B128_191 = ^uint64(0)
		d.B192_255 = ^uint64(0)
	}
	return d
}

func CompareDecimal128(x, y Decimal128) int {
	if x == y {
		return 0
	}
	xs, ys := x.Sign(), y.Sign()
	if xs != ys {
		if xs {
			return -1
		}
		return 1
	}
	if x.B64_127 != y.B64_127 {
		if x.B64_127 < y.B64_127 {
			return -1
		}
		return 1
	}
	if x.B0_63 < y.B0_63 {
		return -1
	}
	return 1
}

func (x Decimal128) toBig() *big.Int {
	neg := x.Sign()
	if neg {
		x = Decimal128{}.SubWrapping(x)
	}
	v := new(big.Int).SetUint64(x.B64_127)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(x.B0_63))
	if neg {
		v.Neg(v)
	}
	return v
}

func (x Decimal256) toBig() *big.Int {
	neg := x.Sign()
	if neg {
		x = Decimal256{}.SubWrapping(x)
	}
	v := new(big.Int).SetUint64(x.B192_255)
	for _, w := range []uint64{x.B128_191, x.B64_127, x.B0_63} {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(w))
	}
	if neg {
		v.Neg(v)
	}
	return v
}

// Format renders the value with the decimal point inserted at scale.
func (x Decimal128) Format(scale int32) string {
	return formatBig(x.toBig(), scale)
}

func (x Decimal256) Format(scale int32) string {
	return formatBig(x.toBig(), scale)
}

func formatBig(v *big.Int, scale int32) string {
	neg := v.Sign() < 0
	s := new(big.Int).Abs(v).String()
	if scale > 0 {
		if len(s) <= int(scale) {
			s = strings.Repeat("0", int(scale)-len(s)+1) + s
		}
		dot := len(s) - int(scale)
		s = s[:dot] + "." + s[dot:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
