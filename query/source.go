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

package query

import (
	"context"

	"github.com/blinklabs-io/substate/chain"
)

// Source is the node access the query layer depends on. A nil block hash
// refers to the node's current best state. Implementations must be safe for
// concurrent use
type Source interface {
	// EnumerateKeys returns every full key stored under prefix
	EnumerateKeys(ctx context.Context, prefix []byte, at *chain.Hash) ([][]byte, error)
	// FetchRaw returns the bytes stored at key. The boolean is false when nothing is stored there
	FetchRaw(ctx context.Context, key []byte, at *chain.Hash) ([]byte, bool, error)
	// FinalizedHead returns the hash of the latest finalized block, or nil if there is none yet
	FinalizedHead(ctx context.Context) (*chain.Hash, error)
	// Header returns the header of the given block, or nil if the node does not know it
	Header(ctx context.Context, hash chain.Hash) (*chain.Header, error)
}
