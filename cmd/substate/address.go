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
	"fmt"
	"os"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/ss58"
)

// runAddress converts between account IDs and SS58 addresses without contacting a node
func runAddress(f *globalFlags) {
	args := f.flagset.Args()[1:]
	if len(args) != 1 {
		fmt.Printf("ERROR: you must specify an SS58 address or a hex account ID\n")
		os.Exit(1)
	}
	if id, err := chain.AccountIdFromHex(args[0]); err == nil {
		codec, err := ss58.NewCodec(f.format())
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %s\n", codec.Format(), codec.Encode(id))
		return
	}
	id, prefix, err := ss58.DecodeAny(args[0])
	if err != nil {
		fmt.Printf("ERROR: failed to decode address: %s\n", err)
		os.Exit(1)
	}
	network := ss58.FormatByPrefix(prefix).Name
	fmt.Printf("account: %s, prefix = %d (%s)\n", id, prefix, network)
}
