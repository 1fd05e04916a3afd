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
	"os"
	"time"

	"github.com/blinklabs-io/substate/query"
	"github.com/blinklabs-io/substate/rpc"
)

type pulseFlags struct {
	flagset *flag.FlagSet
}

func newPulseFlags() *pulseFlags {
	f := &pulseFlags{
		flagset: flag.NewFlagSet("pulse", flag.ExitOnError),
	}
	return f
}

func runPulse(f *globalFlags) {
	pulseFlags := newPulseFlags()
	err := pulseFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	items := pulseFlags.flagset.Args()
	if len(items) == 0 {
		items = []string{"block", "active-era", "planned-era", "session-index"}
	}

	client, conn := createQueryClient(f)
	defer conn.Close()
	ctx := context.Background()
	at := f.atHash()

	for _, item := range items {
		switch item {
		case "active-era":
			printActiveEra(ctx, client, conn, f)
		case "planned-era":
			era, err := client.PlannedEra(ctx, at)
			if err != nil {
				fail(conn, "failure querying planned era", err)
			}
			if era == nil {
				fmt.Printf("planned-era: none\n")
			} else {
				fmt.Printf("planned-era: %d\n", *era)
			}
		case "session-index":
			session, err := client.SessionIndex(ctx, at)
			if err != nil {
				fail(conn, "failure querying session index", err)
			}
			if session == nil {
				fmt.Printf("session-index: none\n")
			} else {
				fmt.Printf("session-index: %d\n", *session)
			}
		case "block":
			hash, header, err := client.FinalizedHead(ctx)
			if err != nil {
				fail(conn, "failure querying finalized head", err)
			}
			switch {
			case hash == nil:
				fmt.Printf("finalized: none\n")
			case header == nil:
				fmt.Printf("finalized: hash = %s\n", hash)
			default:
				fmt.Printf(
					"finalized: number = %d, hash = %s, parent = %s\n",
					header.Number,
					hash,
					header.ParentHash,
				)
			}
		default:
			fail(conn, "unknown pulse item", fmt.Errorf("%s", item))
		}
	}
}

func printActiveEra(
	ctx context.Context,
	client *query.Client,
	conn *rpc.Client,
	f *globalFlags,
) {
	era, err := client.ActiveEra(ctx, f.atHash())
	if err != nil {
		fail(conn, "failure querying active era", err)
	}
	if era == nil {
		fmt.Printf("active-era: none\n")
		return
	}
	if era.Start == nil {
		fmt.Printf("active-era: index = %d, not started\n", era.Index)
		return
	}
	// Era start is a unix timestamp in milliseconds
	start := time.UnixMilli(int64(*era.Start)) // #nosec G115
	fmt.Printf(
		"active-era: index = %d, start = %s\n",
		era.Index,
		start.UTC().Format(time.RFC3339),
	)
}
