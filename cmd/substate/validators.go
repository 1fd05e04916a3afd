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
	"strings"
)

type validatorsFlags struct {
	flagset *flag.FlagSet
}

func newValidatorsFlags() *validatorsFlags {
	f := &validatorsFlags{
		flagset: flag.NewFlagSet("validators", flag.ExitOnError),
	}
	return f
}

func runValidators(f *globalFlags) {
	validatorsFlags := newValidatorsFlags()
	err := validatorsFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	if len(validatorsFlags.flagset.Args()) < 1 {
		fmt.Printf("ERROR: you must specify a validator set (session, queued or waiting)\n")
		os.Exit(1)
	}

	client, conn := createQueryClient(f)
	defer conn.Close()
	ctx := context.Background()
	at := f.atHash()
	codec := client.Codec()

	switch validatorsFlags.flagset.Args()[0] {
	case "session":
		validators, err := client.SessionValidators(ctx, at)
		if err != nil {
			fail(conn, "failure querying session validators", err)
		}
		for _, validator := range validators {
			fmt.Println(codec.Encode(validator))
		}
	case "queued":
		result, err := client.QueuedValidators(ctx, at)
		if err != nil {
			fail(conn, "failure querying queued validators", err)
		}
		if result == nil {
			fmt.Printf("queued: none\n")
			return
		}
		fmt.Printf("queued: compute = %s, elected = %d\n", result.Compute, len(result.ElectedStashes))
		for _, stash := range result.ElectedStashes {
			exposure, ok := result.ExposureOf(stash)
			if !ok {
				fmt.Println(codec.Encode(stash))
				continue
			}
			fmt.Printf(
				"%s total = %s, own = %s, nominators = %d\n",
				codec.Encode(stash),
				exposure.Total.Dec(),
				exposure.Own.Dec(),
				len(exposure.Others),
			)
		}
	case "waiting":
		records, err := client.WaitingValidators(ctx, at)
		if err != nil {
			fail(conn, "failure querying waiting validators", err)
		}
		for _, record := range records {
			commission := "unknown"
			if record.Prefs != nil {
				commission = record.Prefs.Commission.String()
			}
			fmt.Printf(
				"%s staked = %s, commission = %s, nominators = [%s]\n",
				record.Address,
				record.Staked.Dec(),
				commission,
				strings.Join(record.Nominators, ", "),
			)
		}
	default:
		fail(conn, "unknown validator set", fmt.Errorf("%s", validatorsFlags.flagset.Args()[0]))
	}
}
