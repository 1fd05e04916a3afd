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
	"github.com/blinklabs-io/substate/staking"
)

type nominatorEntry struct {
	account     chain.AccountId
	nominations *staking.Nominations
}

// Nominators returns the nomination map keyed by SS58 address. A nil value
// means the key exists but holds no active nominations
func (c *Client) Nominators(
	ctx context.Context,
	at *chain.Hash,
) (map[string]*Nominator, error) {
	entries, err := c.scanNominators(ctx, at)
	if err != nil {
		return nil, err
	}
	records := make([]*Nominator, len(entries))
	err = c.forEach(ctx, len(entries), func(ctx context.Context, i int) error {
		entry := entries[i]
		if entry.nominations == nil {
			return nil
		}
		locks, err := c.BalanceLocks(ctx, entry.account, at)
		if err != nil {
			return err
		}
		records[i] = &Nominator{
			Account:     entry.account,
			Nominations: *entry.nominations,
			Staked:      locks.Staked(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ret := make(map[string]*Nominator, len(entries))
	for i, entry := range entries {
		ret[c.codec.Encode(entry.account)] = records[i]
	}
	return ret, nil
}

// ValidatorsToNominators inverts the nomination map, listing for every
// nominated validator the addresses of the accounts targeting it. Each list
// is in the order the nominators were enumerated. Validators nobody
// nominates have no entry
func (c *Client) ValidatorsToNominators(
	ctx context.Context,
	at *chain.Hash,
) (map[chain.AccountId][]string, error) {
	entries, err := c.scanNominators(ctx, at)
	if err != nil {
		return nil, err
	}
	ret := make(map[chain.AccountId][]string)
	for _, entry := range entries {
		// Stale entries without nominations back nobody
		if entry.nominations == nil {
			continue
		}
		addr := c.codec.Encode(entry.account)
		for _, target := range entry.nominations.Targets {
			ret[target] = append(ret[target], addr)
		}
	}
	return ret, nil
}

// scanNominators reads every entry of the nominator map
func (c *Client) scanNominators(
	ctx context.Context,
	at *chain.Hash,
) ([]nominatorEntry, error) {
	keys, err := c.enumerate(ctx, staking.Nominators, staking.Nominators.Prefix(), at)
	if err != nil {
		return nil, err
	}
	entries := make([]nominatorEntry, len(keys))
	for i, key := range keys {
		account, err := staking.Nominators.AccountId(key)
		if err != nil {
			return nil, &KeyError{
				Item: staking.Nominators.String(),
				Key:  key,
				Err:  err,
			}
		}
		entries[i].account = account
	}
	err = c.forEach(ctx, len(keys), func(ctx context.Context, i int) error {
		nominations, err := fetchValue[staking.Nominations](ctx, c, staking.Nominators, keys[i], at)
		if err != nil {
			return err
		}
		entries[i].nominations = nominations
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
