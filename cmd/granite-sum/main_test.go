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
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/granitedata/granite/pkg/common/moerr"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunInt64(t *testing.T) {
	path := writeCSV(t, "a,1\nb,2\nc,\nd,4\n")
	cfg := defaultConfig()
	cfg.Input = path
	cfg.Column = 1
	cfg.Partitions = 2

	out, err := run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "7", out)
}

func TestRunFloat64(t *testing.T) {
	path := writeCSV(t, "1.5\n2.25\n")
	cfg := defaultConfig()
	cfg.Input = path
	cfg.Kind = "float64"

	out, err := run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "3.75", out)
}

func TestRunAllNull(t *testing.T) {
	path := writeCSV(t, "a,\nb,\n")
	cfg := defaultConfig()
	cfg.Input = path
	cfg.Column = 1

	out, err := run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, "NULL", out)
}

func TestRunBadConfig(t *testing.T) {
	cfg := defaultConfig()
	_, err := run(context.Background(), cfg)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))

	cfg.Input = "whatever.csv"
	cfg.Partitions = 0
	_, err = run(context.Background(), cfg)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}

func TestRunBadField(t *testing.T) {
	path := writeCSV(t, "1\nnope\n3\n")
	cfg := defaultConfig()
	cfg.Input = path

	_, err := run(context.Background(), cfg)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestNewBatchBuilder(t *testing.T) {
	for _, kind := range []string{"int64", "uint64", "float64", "INT64"} {
		_, err := newBatchBuilder(kind)
		require.NoError(t, err)
	}
	_, err := newBatchBuilder("decimal128")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}
