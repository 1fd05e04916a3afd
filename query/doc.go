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

// Package query reads staking state from a Substrate-based node.
//
// A Client combines storage key derivation, SCALE decoding and SS58 address
// rendering on top of a Source, which supplies raw key enumeration and value
// lookups (see the rpc package for a websocket implementation).
//
// Every accessor takes an optional block hash; nil reads the node's current
// state. Storage items that are not set yield a nil result and a nil error.
// Use Require when absence should be an error:
//
//	era, err := query.Require(client.ActiveEra(ctx, nil))
//	if errors.Is(err, query.ErrNotFound) {
//		// staking has not started yet
//	}
//
// WaitingValidators and Nominators perform one or more point lookups per map
// entry. These are issued concurrently, bounded by WithConcurrency, and the
// results are assembled in enumeration order.
package query
