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

package rpc

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/substate/chain"
)

// EnumerateKeys lists every storage key under prefix, following state_getKeysPaged pages until a short page
func (c *Client) EnumerateKeys(
	ctx context.Context,
	prefix []byte,
	at *chain.Hash,
) ([][]byte, error) {
	var ret [][]byte
	var startKey *string
	for {
		var page []string
		err := c.Call(
			ctx,
			"state_getKeysPaged",
			&page,
			hexString(prefix),
			c.pageSize,
			startKey,
			at,
		)
		if err != nil {
			return nil, err
		}
		for _, item := range page {
			key, err := decodeHex(item)
			if err != nil {
				return nil, err
			}
			ret = append(ret, key)
		}
		c.logger.Debug(
			"fetched storage key page",
			"component", "rpc",
			"prefix", hexString(prefix),
			"count", len(page),
			"total", len(ret),
		)
		if len(page) < c.pageSize {
			return ret, nil
		}
		last := page[len(page)-1]
		startKey = &last
	}
}

// FetchRaw returns the raw value stored under key. The node reports absent values as null
func (c *Client) FetchRaw(
	ctx context.Context,
	key []byte,
	at *chain.Hash,
) ([]byte, bool, error) {
	var value *string
	if err := c.Call(ctx, "state_getStorage", &value, hexString(key), at); err != nil {
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	data, err := decodeHex(*value)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (c *Client) FinalizedHead(ctx context.Context) (*chain.Hash, error) {
	var hash *chain.Hash
	if err := c.Call(ctx, "chain_getFinalizedHead", &hash); err != nil {
		return nil, err
	}
	return hash, nil
}

func (c *Client) Header(
	ctx context.Context,
	hash chain.Hash,
) (*chain.Header, error) {
	var header *chain.Header
	if err := c.Call(ctx, "chain_getHeader", &header, hash); err != nil {
		return nil, err
	}
	return header, nil
}

func hexString(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

func decodeHex(s string) ([]byte, error) {
	ret, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex value %q: %w", s, err)
	}
	return ret, nil
}
