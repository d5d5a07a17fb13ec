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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimal128Add(t *testing.T) {
	x := Decimal128FromInt64(12345)
	y := Decimal128FromInt64(-345)
	require.Equal(t, Decimal128FromInt64(12000), x.AddWrapping(y))

	// carry across the 64-bit boundary
	x = Decimal128{B0_63: ^uint64(0), B64_127: 0}
	require.Equal(t, Decimal128{B0_63: 0, B64_127: 1}, x.AddWrapping(Decimal128FromInt64(1)))
}

func TestDecimal128SubRoundTrip(t *testing.T) {
	x := Decimal128FromInt64(-77)
	y := Decimal128FromInt64(1 << 50)
	require.Equal(t, x, x.AddWrapping(y).SubWrapping(y))
}

func TestDecimal128Wraps(t *testing.T) {
	// most positive value + 1 wraps to most negative
	max := Decimal128{B0_63: ^uint64(0), B64_127: ^uint64(0) >> 1}
	got := max.AddWrapping(Decimal128FromInt64(1))
	require.Equal(t, Decimal128{B0_63: 0, B64_127: uint64(1) << 63}, got)
	require.True(t, got.Sign())
}

func TestDecimal256Arithmetic(t *testing.T) {
	x := Decimal256FromInt64(-5)
	y := Decimal256FromInt64(8)
	require.Equal(t, Decimal256FromInt64(3), x.AddWrapping(y))

	carry := Decimal256{B0_63: ^uint64(0), B64_127: ^uint64(0), B128_191: ^uint64(0)}
	require.Equal(t,
		Decimal256{B192_255: 1},
		carry.AddWrapping(Decimal256FromInt64(1)))
}

func TestCompareDecimal128(t *testing.T) {
	require.Equal(t, 0, CompareDecimal128(Decimal128FromInt64(4), Decimal128FromInt64(4)))
	require.Equal(t, -1, CompareDecimal128(Decimal128FromInt64(-4), Decimal128FromInt64(2)))
	require.Equal(t, 1, CompareDecimal128(Decimal128FromInt64(12), Decimal128FromInt64(2)))
}

func TestDecimalFormat(t *testing.T) {
	require.Equal(t, "123.45", Decimal128FromInt64(12345).Format(2))
	require.Equal(t, "-0.07", Decimal128FromInt64(-7).Format(2))
	require.Equal(t, "12345", Decimal128FromInt64(12345).Format(0))
	require.Equal(t, "-98.7", Decimal256FromInt64(-987).Format(1))
}
