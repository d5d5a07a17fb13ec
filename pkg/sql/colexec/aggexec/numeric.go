// Copyright 2022 Granite Data
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

package aggexec

import (
	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/nulls"
	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/container/vector"
)

// sumOps is the operation set an accumulator draws from its numeric
// kind: the zero value plus wrapping add and subtract. One instance
// is selected per accumulator construction, never per row.
type sumOps[T types.FixedSizeT] struct {
	zero T
	add  func(x, y T) T
	sub  func(x, y T) T
}

// Go integer arithmetic already wraps, so the native operators serve
// every Number instantiation.
func numberSumOps[T types.Number]() sumOps[T] {
	return sumOps[T]{
		add: func(x, y T) T { return x + y },
		sub: func(x, y T) T { return x - y },
	}
}

func decimal128SumOps() sumOps[types.Decimal128] {
	return sumOps[types.Decimal128]{
		add: types.Decimal128.AddWrapping,
		sub: types.Decimal128.SubWrapping,
	}
}

func decimal256SumOps() sumOps[types.Decimal256] {
	return sumOps[types.Decimal256]{
		add: types.Decimal256.AddWrapping,
		sub: types.Decimal256.SubWrapping,
	}
}

// sumVector computes the wrapping sum and the non-null count of vec.
// A vector whose oid differs from want is an engine bug upstream of
// this package, reported as an internal error.
func sumVector[T types.FixedSizeT](vec *vector.Vector, want types.T, ops sumOps[T]) (T, int, error) {
	var s T
	if got := vec.GetType().Oid; got != want {
		return s, 0, moerr.NewInternalErrorNoCtx(
			"aggexec: accumulator built for %s fed a %s vector", want, got)
	}

	vs := vector.MustFixedCol[T](vec)
	nsp := vec.GetNulls()
	if !nulls.Any(nsp) {
		for _, v := range vs {
			s = ops.add(s, v)
		}
		return s, len(vs), nil
	}

	n := 0
	for i, v := range vs {
		if nsp.Contains(uint64(i)) {
			continue
		}
		s = ops.add(s, v)
		n++
	}
	return s, n, nil
}
