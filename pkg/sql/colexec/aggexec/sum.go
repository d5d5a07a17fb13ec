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
	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/container/vector"
)

// NewSum builds the scalar sum accumulator for typ, the result type
// the return-type policy computed. Unsupported kinds fail here, never
// mid-batch.
func NewSum(typ types.Type) (AggExec, error) {
	switch typ.Oid {
	case types.T_int64:
		return newSumAgg(typ, numberSumOps[int64]()), nil
	case types.T_uint64:
		return newSumAgg(typ, numberSumOps[uint64]()), nil
	case types.T_float64:
		return newSumAgg(typ, numberSumOps[float64]()), nil
	case types.T_decimal128:
		return newSumAgg(typ, decimal128SumOps()), nil
	case types.T_decimal256:
		return newSumAgg(typ, decimal256SumOps()), nil
	}
	return nil, moerr.NewNYINoCtx("sum on type '%s'", typ)
}

// NewSlidingSum builds the retraction-capable sum accumulator for
// window frames.
func NewSlidingSum(typ types.Type) (SlidingAggExec, error) {
	switch typ.Oid {
	case types.T_int64:
		return newSlidingSumAgg(typ, numberSumOps[int64]()), nil
	case types.T_uint64:
		return newSlidingSumAgg(typ, numberSumOps[uint64]()), nil
	case types.T_float64:
		return newSlidingSumAgg(typ, numberSumOps[float64]()), nil
	case types.T_decimal128:
		return newSlidingSumAgg(typ, decimal128SumOps()), nil
	case types.T_decimal256:
		return newSlidingSumAgg(typ, decimal256SumOps()), nil
	}
	return nil, moerr.NewNYINoCtx("sliding sum on type '%s'", typ)
}

// NewGroupSum builds the vectorized per-group sum accumulator.
func NewGroupSum(typ types.Type) (GroupAggExec, error) {
	switch typ.Oid {
	case types.T_int64:
		return newGroupSumAgg(typ, numberSumOps[int64]()), nil
	case types.T_uint64:
		return newGroupSumAgg(typ, numberSumOps[uint64]()), nil
	case types.T_float64:
		return newGroupSumAgg(typ, numberSumOps[float64]()), nil
	case types.T_decimal128:
		return newGroupSumAgg(typ, decimal128SumOps()), nil
	case types.T_decimal256:
		return newGroupSumAgg(typ, decimal256SumOps()), nil
	}
	return nil, moerr.NewNYINoCtx("grouped sum on type '%s'", typ)
}

// sumAgg is the whole-partition accumulator.
type sumAgg[T types.FixedSizeT] struct {
	typ types.Type
	ops sumOps[T]

	sum T
	// empty stays true until the first non-null row arrives. It is
	// the only thing that keeps an all-null input distinguishable
	// from a sum that happens to equal zero.
	empty bool
}

func newSumAgg[T types.FixedSizeT](typ types.Type, ops sumOps[T]) *sumAgg[T] {
	return &sumAgg[T]{typ: typ, ops: ops, sum: ops.zero, empty: true}
}

func (a *sumAgg[T]) UpdateBatch(vec *vector.Vector) error {
	s, n, err := sumVector(vec, a.typ.Oid, a.ops)
	if err != nil {
		return err
	}
	if n > 0 {
		a.sum = a.ops.add(a.sum, s)
		a.empty = false
	}
	return nil
}

// MergeBatch is UpdateBatch: a partial-sum column folds exactly like
// an input column, so partial and final aggregation share one path.
func (a *sumAgg[T]) MergeBatch(states ...*vector.Vector) error {
	if len(states) != 1 {
		return moerr.NewInternalErrorNoCtx("sum merge expects 1 state vector, got %d", len(states))
	}
	return a.UpdateBatch(states[0])
}

func (a *sumAgg[T]) State() ([]*vector.Vector, error) {
	vec, err := a.Eval()
	if err != nil {
		return nil, err
	}
	return []*vector.Vector{vec}, nil
}

func (a *sumAgg[T]) Eval() (*vector.Vector, error) {
	vec := vector.NewVec(a.typ)
	if err := vector.AppendFixed(vec, a.sum, a.empty); err != nil {
		return nil, err
	}
	return vec, nil
}

// slidingSumAgg accumulates over a moving window frame. It is a
// separate type from sumAgg, not a generalization: the extra count
// changes both the merge-state shape and the null rule.
type slidingSumAgg[T types.FixedSizeT] struct {
	typ types.Type
	ops sumOps[T]

	sum T
	// count is the number of non-null rows currently inside the
	// window; the result is NULL exactly when it is zero.
	count uint64
}

func newSlidingSumAgg[T types.FixedSizeT](typ types.Type, ops sumOps[T]) *slidingSumAgg[T] {
	return &slidingSumAgg[T]{typ: typ, ops: ops, sum: ops.zero}
}

func (a *slidingSumAgg[T]) UpdateBatch(vec *vector.Vector) error {
	s, n, err := sumVector(vec, a.typ.Oid, a.ops)
	if err != nil {
		return err
	}
	a.sum = a.ops.add(a.sum, s)
	a.count += uint64(n)
	return nil
}

func (a *slidingSumAgg[T]) RetractBatch(vec *vector.Vector) error {
	s, n, err := sumVector(vec, a.typ.Oid, a.ops)
	if err != nil {
		return err
	}
	a.sum = a.ops.sub(a.sum, s)
	a.count -= uint64(n)
	return nil
}

func (a *slidingSumAgg[T]) MergeBatch(states ...*vector.Vector) error {
	if len(states) != 2 {
		return moerr.NewInternalErrorNoCtx("sliding sum merge expects 2 state vectors, got %d", len(states))
	}
	s, _, err := sumVector(states[0], a.typ.Oid, a.ops)
	if err != nil {
		return err
	}
	counts, _, err := sumVector(states[1], types.T_uint64, numberSumOps[uint64]())
	if err != nil {
		return err
	}
	a.sum = a.ops.add(a.sum, s)
	a.count += counts
	return nil
}

func (a *slidingSumAgg[T]) State() ([]*vector.Vector, error) {
	sumVec, err := a.Eval()
	if err != nil {
		return nil, err
	}
	countVec := vector.NewVec(types.T_uint64.ToType())
	if err = vector.AppendFixed(countVec, a.count, false); err != nil {
		return nil, err
	}
	return []*vector.Vector{sumVec, countVec}, nil
}

func (a *slidingSumAgg[T]) Eval() (*vector.Vector, error) {
	vec := vector.NewVec(a.typ)
	if err := vector.AppendFixed(vec, a.sum, a.count == 0); err != nil {
		return nil, err
	}
	return vec, nil
}

// groupSumAgg keeps one running total per group, filled over whole
// batches in one pass.
type groupSumAgg[T types.FixedSizeT] struct {
	typ types.Type
	ops sumOps[T]

	// vs[i] is the running total of group i; es[i] is true while the
	// group has seen no non-null value yet.
	vs []T
	es []bool
}

func newGroupSumAgg[T types.FixedSizeT](typ types.Type, ops sumOps[T]) *groupSumAgg[T] {
	return &groupSumAgg[T]{typ: typ, ops: ops}
}

func (a *groupSumAgg[T]) Grows(n int) {
	for i := 0; i < n; i++ {
		a.vs = append(a.vs, a.ops.zero)
		a.es = append(a.es, true)
	}
}

func (a *groupSumAgg[T]) GroupCount() int {
	return len(a.vs)
}

func (a *groupSumAgg[T]) UpdateBatch(vec *vector.Vector, groups []uint64, groupCount int) error {
	return a.fill(vec, groups, groupCount)
}

// MergeBatch reuses fill: an incoming partial-sum column combines
// into the group totals exactly like raw input, and a group becomes
// non-empty whenever the incoming partial value is non-null.
func (a *groupSumAgg[T]) MergeBatch(partial *vector.Vector, groups []uint64, groupCount int) error {
	return a.fill(partial, groups, groupCount)
}

func (a *groupSumAgg[T]) fill(vec *vector.Vector, groups []uint64, groupCount int) error {
	if got := vec.GetType().Oid; got != a.typ.Oid {
		return moerr.NewInternalErrorNoCtx(
			"aggexec: accumulator built for %s fed a %s vector", a.typ.Oid, got)
	}
	if len(groups) != vec.Length() {
		return moerr.NewInternalErrorNoCtx(
			"aggexec: %d group indices for a batch of %d rows", len(groups), vec.Length())
	}
	if more := groupCount - len(a.vs); more > 0 {
		a.Grows(more)
	}

	vs := vector.MustFixedCol[T](vec)
	nsp := vec.GetNulls()
	for i, v := range vs {
		if nsp.Contains(uint64(i)) {
			continue
		}
		g := groups[i]
		a.vs[g] = a.ops.add(a.vs[g], v)
		a.es[g] = false
	}
	return nil
}

func (a *groupSumAgg[T]) Eval() (*vector.Vector, error) {
	vec := vector.NewVec(a.typ)
	if err := vector.AppendFixedList(vec, a.vs, a.es); err != nil {
		return nil, err
	}
	return vec, nil
}
