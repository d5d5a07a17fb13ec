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
	"bytes"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/container/types"
)

// grouped state wire layout:
//
//	| type descriptor | group count | es | vs |
//
// es and vs are raw slice bytes; their lengths follow from the group
// count and the type size.

func (a *groupSumAgg[T]) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(types.EncodeType(&a.typ))
	buf.Write(types.EncodeFixed(uint64(len(a.vs))))
	buf.Write(types.EncodeSlice(a.es))
	buf.Write(types.EncodeSlice(a.vs))
	return buf.Bytes(), nil
}

func (a *groupSumAgg[T]) UnmarshalBinary(data []byte) error {
	// the decoded slices alias data, which the transport may reuse.
	copied := make([]byte, len(data))
	copy(copied, data)
	data = copied

	if len(data) < types.TSize+8 {
		return moerr.NewInternalErrorNoCtx("grouped sum state too short: %d bytes", len(data))
	}
	typ := types.DecodeType(data[:types.TSize])
	data = data[types.TSize:]
	if typ.Oid != a.typ.Oid {
		return moerr.NewInternalErrorNoCtx(
			"grouped sum state of type %s loaded into a %s accumulator", typ.Oid, a.typ.Oid)
	}
	a.typ = typ

	n := int(types.DecodeFixed[uint64](data[:8]))
	data = data[8:]
	if want := n + n*a.typ.TypeSize(); len(data) != want {
		return moerr.NewInternalErrorNoCtx(
			"grouped sum state of %d groups needs %d payload bytes, got %d", n, want, len(data))
	}

	a.es = types.DecodeSlice[bool](data[:n])
	a.vs = types.DecodeSlice[T](data[n:])
	return nil
}
