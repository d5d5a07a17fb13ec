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

// Package agg defines the aggregate functions the planner can resolve
// and hands out the matching accumulator executors.
package agg

import (
	"strings"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/sql/colexec/aggexec"
)

// ReverseHint tells the planner whether evaluating the aggregate over
// the reversed row order needs a different function.
type ReverseHint int

const (
	// ReverseUnsupported means the aggregate cannot run reversed.
	ReverseUnsupported ReverseHint = iota
	// ReverseIdentical means the aggregate is its own reverse, so
	// window plans may flip the scan direction freely.
	ReverseIdentical
)

// Definition is the engine-facing description of one aggregate
// function. Argument coercion to the declared signature happens in
// the planner before any accumulator is built; implementations only
// perform the initial supported-kind check.
type Definition interface {
	Name() string

	// Aliases lists every name the function answers to, the primary
	// name included.
	Aliases() []string

	// SupportedTypes is the declared signature: the argument must be
	// coercible to one of these.
	SupportedTypes() []types.T

	// ReturnType computes the result type from the coerced argument
	// types.
	ReturnType(typs []types.Type) (types.Type, error)

	Reverse() ReverseHint

	// StateFields describes the merge-state columns of the
	// accumulator used in mode, so the engine can shape intermediate
	// shuffle batches.
	StateFields(colName string, mode aggexec.ExecMode, typs []types.Type) ([]aggexec.StateField, error)
}

// TypeCoercer adapts argument expressions to an aggregate's declared
// signature. The planner owns the implementation; this package only
// states the contract it relies on.
type TypeCoercer interface {
	CoerceTo(args []types.Type, want []types.T) ([]types.Type, error)
}

var definitions = map[string]Definition{}

func register(def Definition) {
	for _, name := range def.Aliases() {
		definitions[strings.ToLower(name)] = def
	}
}

func init() {
	register(SumDefinition())
}

// Get resolves an aggregate definition by any of its names.
func Get(name string) (Definition, bool) {
	def, ok := definitions[strings.ToLower(name)]
	return def, ok
}

// CheckArgs validates arity and the supported-kind rule for def. It
// runs at plan time so an unsupported call never reaches a batch.
func CheckArgs(def Definition, typs []types.Type) error {
	if len(typs) != 1 {
		return moerr.NewInvalidArgNoCtx(def.Name()+" argument count", len(typs))
	}
	for _, t := range def.SupportedTypes() {
		if typs[0].Oid == t {
			return nil
		}
	}
	return moerr.NewNotSupportedNoCtx("%s on type '%s'", def.Name(), typs[0])
}
