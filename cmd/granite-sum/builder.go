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

package main

import (
	"strconv"
	"strings"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/container/vector"
)

// batchBuilder turns a slice of raw CSV fields into a typed vector.
// An empty field is a null.
type batchBuilder interface {
	argTypes() []types.Type
	build(raw []string) (*vector.Vector, error)
	format(result *vector.Vector) string
}

func newBatchBuilder(kind string) (batchBuilder, error) {
	switch strings.ToLower(kind) {
	case "int64":
		return int64Builder{}, nil
	case "uint64":
		return uint64Builder{}, nil
	case "float64":
		return float64Builder{}, nil
	default:
		return nil, moerr.NewBadConfigNoCtx("unknown element kind '%s'", kind)
	}
}

func buildVec[T types.Number](typ types.Type, raw []string, parse func(string) (T, error)) (*vector.Vector, error) {
	ws := make([]T, len(raw))
	isNulls := make([]bool, len(raw))
	for i, field := range raw {
		if field == "" {
			isNulls[i] = true
			continue
		}
		w, err := parse(field)
		if err != nil {
			return nil, moerr.NewInvalidInputNoCtx("bad numeric field '%s'", field)
		}
		ws[i] = w
	}
	vec := vector.NewVec(typ)
	if err := vector.AppendFixedList(vec, ws, isNulls); err != nil {
		return nil, err
	}
	return vec, nil
}

func formatResult[T types.Number](result *vector.Vector, format func(T) string) string {
	if result.GetNulls().Contains(0) {
		return "NULL"
	}
	return format(vector.MustFixedCol[T](result)[0])
}

type int64Builder struct{}

func (int64Builder) argTypes() []types.Type { return []types.Type{types.T_int64.ToType()} }

func (int64Builder) build(raw []string) (*vector.Vector, error) {
	return buildVec(types.T_int64.ToType(), raw, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

func (int64Builder) format(result *vector.Vector) string {
	return formatResult(result, func(w int64) string { return strconv.FormatInt(w, 10) })
}

type uint64Builder struct{}

func (uint64Builder) argTypes() []types.Type { return []types.Type{types.T_uint64.ToType()} }

func (uint64Builder) build(raw []string) (*vector.Vector, error) {
	return buildVec(types.T_uint64.ToType(), raw, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

func (uint64Builder) format(result *vector.Vector) string {
	return formatResult(result, func(w uint64) string { return strconv.FormatUint(w, 10) })
}

type float64Builder struct{}

func (float64Builder) argTypes() []types.Type { return []types.Type{types.T_float64.ToType()} }

func (float64Builder) build(raw []string) (*vector.Vector, error) {
	return buildVec(types.T_float64.ToType(), raw, strconvParseFloat)
}

func (float64Builder) format(result *vector.Vector) string {
	return formatResult(result, func(w float64) string {
		return strconv.FormatFloat(w, 'g', -1, 64)
	})
}

func strconvParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
