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

func TestToType(t *testing.T) {
	typ := T_int64.ToType()
	require.Equal(t, T_int64, typ.Oid)
	require.Equal(t, 8, typ.TypeSize())

	typ = New(T_decimal128, 15, 2)
	require.Equal(t, int32(15), typ.Width)
	require.Equal(t, int32(2), typ.Scale)
	require.Equal(t, 16, typ.TypeSize())
	require.Equal(t, "DECIMAL128(15,2)", typ.String())
}

func TestTypePredicates(t *testing.T) {
	require.True(t, T_int8.IsSignedInt())
	require.True(t, T_uint32.IsUnsignedInt())
	require.True(t, T_float32.IsFloat())
	require.True(t, T_decimal256.IsDecimal())
	require.True(t, T_decimal128.IsNumeric())
	require.False(t, T_varchar.IsNumeric())
}

func TestEncodeDecodeSlice(t *testing.T) {
	vs := []int64{1, -2, 3, 1 << 40}
	data := EncodeSlice(vs)
	require.Equal(t, len(vs)*8, len(data))
	require.Equal(t, vs, DecodeSlice[int64](data))

	require.Nil(t, EncodeSlice([]uint64(nil)))
	require.Nil(t, DecodeSlice[uint64](nil))
}

func TestEncodeDecodeFixed(t *testing.T) {
	data := EncodeFixed(uint64(1) << 40)
	require.Equal(t, 8, len(data))
	require.Equal(t, uint64(1)<<40, DecodeFixed[uint64](data))

	d := Decimal128{B0_63: 7, B64_127: ^uint64(0)}
	require.Equal(t, d, DecodeFixed[Decimal128](EncodeFixed(d)))
}

func TestEncodeDecodeType(t *testing.T) {
	typ := New(T_decimal256, 40, 5)
	data := EncodeType(&typ)
	require.Equal(t, typ, DecodeType(data))
}
