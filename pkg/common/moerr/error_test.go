// Copyright 2021 - 2022 Granite Data
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

package moerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	err := NewNotSupportedNoCtx("sum on type 'varchar'")
	require.True(t, IsMoErrCode(err, ErrNotSupported))
	require.Equal(t, "sum on type 'varchar' is not supported", err.Error())
	require.Equal(t, MySQLDefaultSqlState, err.SqlState())

	err = NewInternalErrorNoCtx("bad vector type %s", "int32")
	require.True(t, IsMoErrCode(err, ErrInternal))
	require.False(t, IsMoErrCode(err, ErrNotSupported))
}

func TestErrorIs(t *testing.T) {
	err := NewInvalidInputNoCtx("zero partitions")
	wrapped := fmt.Errorf("run: %w", err)
	require.True(t, errors.Is(wrapped, NewInvalidInputNoCtx("other")))
	require.False(t, errors.Is(wrapped, NewInternalErrorNoCtx("other")))
}

func TestIsMoErrCode(t *testing.T) {
	require.True(t, IsMoErrCode(nil, Ok))
	require.False(t, IsMoErrCode(errors.New("plain"), ErrInternal))
}

func TestConvertGoError(t *testing.T) {
	require.NoError(t, ConvertGoError(Context(), nil))

	moe := NewDivByZero(Context())
	require.Equal(t, error(moe), ConvertGoError(Context(), moe))

	converted := ConvertGoError(Context(), errors.New("boom"))
	require.True(t, IsMoErrCode(converted, ErrInternal))
}
