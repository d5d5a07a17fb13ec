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

// Package aggexec holds the accumulator machinery of the aggregate
// functions: the scalar, sliding-window and grouped execution
// strategies, parameterized by the numeric kind of the column.
//
// An accumulator instance is owned by exactly one operator task; no
// method is safe for concurrent use on the same instance. Parallelism
// comes from one instance per partition, combined afterwards through
// State and MergeBatch.
package aggexec

import (
	"encoding"

	"github.com/granitedata/granite/pkg/container/types"
	"github.com/granitedata/granite/pkg/container/vector"
)

// ExecMode selects the accumulation strategy a physical operator needs.
type ExecMode int

const (
	// SimpleAgg folds a whole partition into one scalar.
	SimpleAgg ExecMode = iota
	// SlidingAgg additionally supports retracting rows that left a
	// moving window frame.
	SlidingAgg
	// GroupedAgg keeps one running state per group key.
	GroupedAgg
)

func (m ExecMode) String() string {
	switch m {
	case SimpleAgg:
		return "simple"
	case SlidingAgg:
		return "sliding"
	case GroupedAgg:
		return "grouped"
	}
	return "unknown"
}

// StateField describes one column of an accumulator's merge state, so
// the engine can shape the shuffle batches between partial and final
// aggregation.
type StateField struct {
	Name     string
	Type     types.Type
	Nullable bool
}

// AggExec is the scalar accumulator contract, used for plain
// whole-partition aggregation and as the partial-result producer of
// distributed execution.
type AggExec interface {
	// UpdateBatch folds the non-null rows of one input vector into
	// the running state. Null rows are skipped, never zero.
	UpdateBatch(vec *vector.Vector) error

	// MergeBatch folds partial-state vectors previously produced by
	// State on another instance.
	MergeBatch(states ...*vector.Vector) error

	// State emits the mergeable partial state, one single-row vector
	// per state field.
	State() ([]*vector.Vector, error)

	// Eval returns the result as a one-row vector, NULL when no
	// non-null row ever contributed.
	Eval() (*vector.Vector, error)
}

// SlidingAggExec extends AggExec with retraction. Callers must only
// retract rows they previously applied through UpdateBatch and have
// not retracted yet; the accumulator does not check this.
type SlidingAggExec interface {
	AggExec

	RetractBatch(vec *vector.Vector) error
}

// GroupAggExec accumulates one state per group key over whole batches
// in a single vectorized pass. The group id space is append-only:
// indices handed out by the caller stay stable for the lifetime of
// the accumulator.
type GroupAggExec interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Grows pre-allocates n more group slots.
	Grows(n int)

	// GroupCount reports the number of group slots currently held.
	GroupCount() int

	// UpdateBatch folds vec into the per-group states; groups[i] is
	// the target group of row i and groupCount the total number of
	// groups after this batch.
	UpdateBatch(vec *vector.Vector, groups []uint64, groupCount int) error

	// MergeBatch folds a column of partial per-group sums produced by
	// another grouped instance.
	MergeBatch(partial *vector.Vector, groups []uint64, groupCount int) error

	// Eval snapshots every group into one vector, NULL for groups
	// without any non-null contribution. State is kept, so a later
	// Eval after further updates reflects the newer totals.
	Eval() (*vector.Vector, error)
}
