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

package vector

import (
	"fmt"
	"unsafe"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/nulls"
	"github.com/granitedata/granite/pkg/container/types"
)

// Vector represents one column of a batch: a fixed-size element slice
// plus the null bitmap. Vectors here are always flat; constant and
// dictionary encodings live in the operators that need them.
type Vector struct {
	typ types.Type
	nsp *nulls.Nulls

	// col is the typed element slice ([]T for the vector's type).
	col any

	length int
}

func NewVec(typ types.Type) *Vector {
	return &Vector{
		typ: typ,
		nsp: &nulls.Nulls{},
	}
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func (v *Vector) SetType(typ types.Type) {
	v.typ = typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) SetNulls(nsp *nulls.Nulls) {
	v.nsp = nsp
}

// NonNullCount returns the number of rows that are not NULL.
func (v *Vector) NonNullCount() int {
	return v.length - nulls.Length(v.nsp)
}

func (v *Vector) String() string {
	return fmt.Sprintf("%s-%s", v.typ, nulls.String(v.nsp))
}

// MustFixedCol returns the elements of v as a typed slice.
// It panics when T does not match the vector's physical type.
func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	if v.col == nil {
		return nil
	}
	return v.col.([]T)
}

// AppendFixed appends one element. A null element still occupies a
// slot so row numbers stay aligned with the bitmap.
func AppendFixed[T types.FixedSizeT](v *Vector, w T, isNull bool) error {
	if sz := v.typ.TypeSize(); sz != int(unsafe.Sizeof(w)) {
		return moerr.NewTypeMismatchNoCtx(v.typ.String(), fmt.Sprintf("element of %d bytes", unsafe.Sizeof(w)))
	}
	col, _ := v.col.([]T)
	if isNull {
		var zero T
		col = append(col, zero)
		nulls.Add(v.nsp, uint64(v.length))
	} else {
		col = append(col, w)
	}
	v.col = col
	v.length++
	return nil
}

// AppendFixedList appends ws wholesale. isNulls may be nil for a
// fully non-null append, otherwise it must be parallel to ws.
func AppendFixedList[T types.FixedSizeT](v *Vector, ws []T, isNulls []bool) error {
	if isNulls != nil && len(isNulls) != len(ws) {
		return moerr.NewInvalidInputNoCtx("null flags length %d does not match value count %d", len(isNulls), len(ws))
	}
	for i, w := range ws {
		isNull := isNulls != nil && isNulls[i]
		if err := AppendFixed(v, w, isNull); err != nil {
			return err
		}
	}
	return nil
}
