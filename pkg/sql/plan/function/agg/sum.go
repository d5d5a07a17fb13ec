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

package agg

import (
	"fmt"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/sql/colexec/aggexec"
)

// decimal sums widen the precision by a fixed amount, following the
// usual SQL engine convention, capped at what the physical width can
// hold. The scale never changes.
const sumDecimalWidening = 10

var SumSupportedTypes = []types.T{
	types.T_int8, types.T_int16, types.T_int32, types.T_int64,
	types.T_uint8, types.T_uint16, types.T_uint32, types.T_uint64,
	types.T_float32, types.T_float64,
	types.T_decimal128, types.T_decimal256,
}

// aggSum is the SUM aggregate definition.
type aggSum struct{}

// SumDefinition returns the registry entry for SUM.
func SumDefinition() Definition {
	return aggSum{}
}

func (aggSum) Name() string {
	return "SUM"
}

func (aggSum) Aliases() []string {
	return []string{"SUM", "sum"}
}

func (aggSum) SupportedTypes() []types.T {
	return SumSupportedTypes
}

// The reverse of a sum over any row order is the same sum.
func (aggSum) Reverse() ReverseHint {
	return ReverseIdentical
}

func (aggSum) ReturnType(typs []types.Type) (types.Type, error) {
	return SumReturnType(typs)
}

// SumReturnType maps the coerced argument type to the result type.
// Integer and float results are pinned at 64 bits regardless of the
// argument width; decimal results widen precision and keep the scale.
func SumReturnType(typs []types.Type) (types.Type, error) {
	if len(typs) != 1 {
		return types.Type{}, moerr.NewInvalidArgNoCtx("sum argument count", len(typs))
	}
	arg := typs[0]
	switch {
	case arg.Oid.IsSignedInt():
		return types.T_int64.ToType(), nil
	case arg.Oid.IsUnsignedInt():
		return types.T_uint64.ToType(), nil
	case arg.Oid.IsFloat():
		return types.T_float64.ToType(), nil
	case arg.Oid == types.T_decimal128:
		return types.New(types.T_decimal128,
			minInt32(types.MaxDecimal128Width, arg.Width+sumDecimalWidening), arg.Scale), nil
	case arg.Oid == types.T_decimal256:
		return types.New(types.T_decimal256,
			minInt32(types.MaxDecimal256Width, arg.Width+sumDecimalWidening), arg.Scale), nil
	}
	return types.Type{}, moerr.NewNotSupportedNoCtx("sum on type '%s'", arg)
}

// StateFields declares the merge-state schema: one nullable partial
// sum for the simple and grouped strategies, sum plus row count for
// the sliding one.
func (s aggSum) StateFields(colName string, mode aggexec.ExecMode, typs []types.Type) ([]aggexec.StateField, error) {
	ret, err := SumReturnType(typs)
	if err != nil {
		return nil, err
	}
	fields := []aggexec.StateField{
		{Name: fmt.Sprintf("%s.sum", colName), Type: ret, Nullable: true},
	}
	if mode == aggexec.SlidingAgg {
		fields = append(fields, aggexec.StateField{
			Name: fmt.Sprintf("%s.count", colName),
			Type: types.T_uint64.ToType(),
		})
	}
	return fields, nil
}

// NewSumExec builds the accumulator for the requested execution mode.
// The simple and sliding results satisfy aggexec.AggExec; grouped
// ones satisfy aggexec.GroupAggExec.
func NewSumExec(mode aggexec.ExecMode, typs []types.Type) (any, error) {
	if err := CheckArgs(SumDefinition(), typs); err != nil {
		return nil, err
	}
	ret, err := SumReturnType(typs)
	if err != nil {
		return nil, err
	}
	switch mode {
	case aggexec.SimpleAgg:
		return aggexec.NewSum(ret)
	case aggexec.SlidingAgg:
		return aggexec.NewSlidingSum(ret)
	case aggexec.GroupedAgg:
		return aggexec.NewGroupSum(ret)
	}
	return nil, moerr.NewInvalidArgNoCtx("aggregate execution mode", mode)
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
