// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/query"
	"github.com/blinklabs-io/substate/rpc"
	"github.com/blinklabs-io/substate/ss58"
)

type globalFlags struct {
	flagset     *flag.FlagSet
	address     string
	network     string
	at          string
	concurrency int
	pageSize    int
	timeout     time.Duration
	debug       bool
	noNone      bool
}

func newGlobalFlags() *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.address,
		"address",
		"ws://127.0.0.1:9944",
		"websocket RPC endpoint of the node",
	)
	f.flagset.StringVar(
		&f.network,
		"network",
		"polkadot",
		"network whose address format is used for output",
	)
	f.flagset.StringVar(
		&f.at,
		"at",
		"",
		"block hash to query at (defaults to the best block)",
	)
	f.flagset.IntVar(
		&f.concurrency,
		"concurrency",
		query.DefaultConcurrency,
		"maximum number of storage lookups in flight",
	)
	f.flagset.IntVar(
		&f.pageSize,
		"page-size",
		rpc.DefaultPageSize,
		"number of storage keys requested per page",
	)
	f.flagset.DurationVar(
		&f.timeout,
		"timeout",
		rpc.DefaultRequestTimeout,
		"timeout for each request to the node",
	)
	f.flagset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	f.flagset.BoolVar(
		&f.noNone,
		"no-none",
		false,
		"list unnominated validators with no nominators instead of None",
	)
	return f
}

func main() {
	f := newGlobalFlags()
	err := f.flagset.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}

	if len(f.flagset.Args()) == 0 {
		fmt.Printf("You must specify a subcommand (pulse, validators, nominators or address)\n")
		os.Exit(1)
	}
	switch f.flagset.Arg(0) {
	case "pulse":
		runPulse(f)
	case "validators":
		runValidators(f)
	case "nominators":
		runNominators(f)
	case "address":
		runAddress(f)
	default:
		fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
		os.Exit(1)
	}
}

func (f *globalFlags) format() ss58.Format {
	format := ss58.FormatByName(f.network)
	if format == ss58.FormatInvalid {
		fmt.Printf("Invalid network specified: %s\n", f.network)
		os.Exit(1)
	}
	return format
}

func (f *globalFlags) atHash() *chain.Hash {
	if f.at == "" {
		return nil
	}
	hash, err := chain.HashFromHex(f.at)
	if err != nil {
		fmt.Printf("Invalid block hash %q: %s\n", f.at, err)
		os.Exit(1)
	}
	return &hash
}

func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.debug {
		level = slog.LevelDebug
	}
	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}

// createQueryClient connects to the node and returns a query client and the underlying connection
func createQueryClient(f *globalFlags) (*query.Client, *rpc.Client) {
	format := f.format()
	logger := f.logger()
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()
	conn, err := rpc.Dial(
		ctx,
		f.address,
		rpc.WithLogger(logger),
		rpc.WithPageSize(f.pageSize),
		rpc.WithRequestTimeout(f.timeout),
	)
	if err != nil {
		fmt.Printf("Connection failed: %s\n", err)
		os.Exit(1)
	}
	opts := []query.ClientOptionFunc{
		query.WithLogger(logger),
		query.WithConcurrency(f.concurrency),
	}
	if f.noNone {
		opts = append(opts, query.WithoutNominatorPlaceholder())
	}
	client, err := query.New(conn, format, opts...)
	if err != nil {
		_ = conn.Close()
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	return client, conn
}

func fail(conn *rpc.Client, msg string, err error) {
	_ = conn.Close()
	fmt.Printf("ERROR: %s: %s\n", msg, err)
	os.Exit(1)
}
