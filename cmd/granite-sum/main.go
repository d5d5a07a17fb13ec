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

// granite-sum sums one numeric column of a CSV file the way the
// engine would: one scalar accumulator per partition running on a
// worker pool, partial states merged into a final accumulator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/matrixorigin/simdcsv"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/granitedata/granite/pkg/common/moerr"
	"github.com/granitedata/granite/pkg/logutil"
	"github.com/granitedata/granite/pkg/sql/colexec/aggexec"
	"github.com/granitedata/granite/pkg/sql/plan/function/agg"
)

const batchRows = 4096

type config struct {
	Input      string            `toml:"input"`
	Column     int               `toml:"column"`
	Partitions int               `toml:"partitions"`
	Kind       string            `toml:"kind"`
	Log        logutil.LogConfig `toml:"log"`
}

func defaultConfig() config {
	return config{
		Partitions: 4,
		Kind:       "int64",
		Log:        logutil.LogConfig{Level: "info"},
	}
}

func main() {
	var (
		configFile = flag.String("config", "", "TOML config file")
		input      = flag.String("input", "", "CSV file to read")
		column     = flag.Int("column", -1, "zero-based column to sum")
		partitions = flag.Int("partitions", 0, "number of parallel partitions")
		kind       = flag.String("kind", "", "element kind: int64, uint64 or float64")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configFile != "" {
		if _, err := toml.DecodeFile(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "read config: %v\n", err)
			os.Exit(1)
		}
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *column >= 0 {
		cfg.Column = *column
	}
	if *partitions > 0 {
		cfg.Partitions = *partitions
	}
	if *kind != "" {
		cfg.Kind = *kind
	}
	logutil.SetupLogger(&cfg.Log)

	result, err := run(context.Background(), cfg)
	if err != nil {
		logutil.Error("granite-sum failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(result)
}

func run(ctx context.Context, cfg config) (string, error) {
	if cfg.Input == "" {
		return "", moerr.NewBadConfig(ctx, "no input file")
	}
	if cfg.Partitions <= 0 {
		return "", moerr.NewBadConfig(ctx, "partitions must be positive, got %d", cfg.Partitions)
	}
	bld, err := newBatchBuilder(cfg.Kind)
	if err != nil {
		return "", err
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		return "", moerr.ConvertGoError(ctx, err)
	}
	defer f.Close()

	parts := make([]aggexec.AggExec, cfg.Partitions)
	chans := make([]chan []string, cfg.Partitions)
	errs := make([]error, cfg.Partitions)
	for i := range parts {
		exec, err := agg.NewSumExec(aggexec.SimpleAgg, bld.argTypes())
		if err != nil {
			return "", err
		}
		parts[i] = exec.(aggexec.AggExec)
		chans[i] = make(chan []string, 1)
	}

	pool, err := ants.NewPool(cfg.Partitions)
	if err != nil {
		return "", moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range parts {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			for raw := range chans[i] {
				vec, err := bld.build(raw)
				if err == nil {
					err = parts[i].UpdateBatch(vec)
				}
				if err != nil && errs[i] == nil {
					errs[i] = err
				}
			}
		}); err != nil {
			wg.Done()
			return "", moerr.ConvertGoError(ctx, err)
		}
	}

	readErr := func() error {
		defer func() {
			for _, ch := range chans {
				close(ch)
			}
		}()

		reader := simdcsv.NewReaderWithOptions(f, ',', '#', true, true)
		buf := make([][]string, batchRows)
		rows := 0
		for next := 0; ; {
			var cnt int
			var err error
			buf, cnt, err = reader.Read(batchRows, ctx, buf)
			if err != nil {
				return moerr.ConvertGoError(ctx, err)
			}
			if cnt == 0 {
				break
			}
			raw := make([]string, 0, cnt)
			for _, rec := range buf[:cnt] {
				if cfg.Column >= len(rec) {
					return moerr.NewInvalidInput(ctx, "row has %d columns, need column %d", len(rec), cfg.Column)
				}
				raw = append(raw, rec[cfg.Column])
			}
			chans[next] <- raw
			next = (next + 1) % cfg.Partitions
			rows += cnt
			if cnt < batchRows {
				break
			}
		}
		logutil.Info("input scanned", zap.Int("rows", rows), zap.Int("partitions", cfg.Partitions))
		return nil
	}()

	wg.Wait()
	if readErr != nil {
		return "", readErr
	}
	for _, err := range errs {
		if err != nil {
			return "", err
		}
	}

	final, err := agg.NewSumExec(aggexec.SimpleAgg, bld.argTypes())
	if err != nil {
		return "", err
	}
	facc := final.(aggexec.AggExec)
	for _, part := range parts {
		states, err := part.State()
		if err != nil {
			return "", err
		}
		if err = facc.MergeBatch(states...); err != nil {
			return "", err
		}
	}

	out, err := facc.Eval()
	if err != nil {
		return "", err
	}
	return bld.format(out), nil
}
