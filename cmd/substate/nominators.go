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
	"fmt"
	"os"
	"sort"
	"strings"
)

func runNominators(f *globalFlags) {
	if len(f.flagset.Args()) > 1 {
		fmt.Printf("ERROR: nominators takes no arguments\n")
		os.Exit(1)
	}
	client, conn := createQueryClient(f)
	defer conn.Close()

	nominators, err := client.Nominators(context.Background(), f.atHash())
	if err != nil {
		fail(conn, "failure querying nominators", err)
	}
	addrs := make([]string, 0, len(nominators))
	for addr := range nominators {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	codec := client.Codec()
	for _, addr := range addrs {
		nominator := nominators[addr]
		if nominator == nil {
			fmt.Printf("%s none\n", addr)
			continue
		}
		targets := make([]string, 0, len(nominator.Nominations.Targets))
		for _, target := range nominator.Nominations.Targets {
			targets = append(targets, codec.Encode(target))
		}
		fmt.Printf(
			"%s staked = %s, submitted-in = %d, targets = [%s]\n",
			addr,
			nominator.Staked.Dec(),
			nominator.Nominations.SubmittedIn,
			strings.Join(targets, ", "),
		)
	}
}
