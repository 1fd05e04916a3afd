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

// WaitingValidator is a registered validator candidate joined with its
// balance locks, ledger and the nominators targeting it
type WaitingValidator struct {
	Account chain.AccountId
	Address string
	// Staked is the sum of the account's staking balance locks
	Staked chain.Balance
	// Prefs is nil when the validator entry vanished between enumeration and lookup
	Prefs      *staking.ValidatorPrefs
	Nominators []string
	Ledger     *staking.StakingLedger
}

// Nominator is an account's active nominations and the balance it has staked
type Nominator struct {
	Account     chain.AccountId
	Nominations staking.Nominations
	Staked      chain.Balance
}

// WaitingValidators returns one record per entry of the validator candidate
// map, in the order the node enumerated them
func (c *Client) WaitingValidators(
	ctx context.Context,
	at *chain.Hash,
) ([]WaitingValidator, error) {
	keys, err := c.enumerate(ctx, staking.Validators, staking.Validators.Prefix(), at)
	if err != nil {
		return nil, err
	}
	nominatorIndex, err := c.ValidatorsToNominators(ctx, at)
	if err != nil {
		return nil, err
	}
	ret := make([]WaitingValidator, len(keys))
	err = c.forEach(ctx, len(keys), func(ctx context.Context, i int) error {
		account, err := staking.Validators.AccountId(keys[i])
		if err != nil {
			return &KeyError{
				Item: staking.Validators.String(),
				Key:  keys[i],
				Err:  err,
			}
		}
		record := WaitingValidator{
			Account:    account,
			Address:    c.codec.Encode(account),
			Nominators: nominatorIndex[account],
		}
		if record.Prefs, err = fetchValue[staking.ValidatorPrefs](ctx, c, staking.Validators, keys[i], at); err != nil {
			return err
		}
		locks, err := c.BalanceLocks(ctx, account, at)
		if err != nil {
			return err
		}
		record.Staked = locks.Staked()
		if record.Ledger, err = c.Ledger(ctx, account, at); err != nil {
			return err
		}
		if len(record.Nominators) == 0 {
			if c.nominatorPlaceholder {
				record.Nominators = []string{NoNominatorsPlaceholder}
			} else {
				record.Nominators = []string{}
			}
		}
		ret[i] = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Validator returns the preferences of a validator candidate, or nil if the
// account is not one
func (c *Client) Validator(
	ctx context.Context,
	stash chain.AccountId,
	at *chain.Hash,
) (*staking.ValidatorPrefs, error) {
	return fetchValue[staking.ValidatorPrefs](
		ctx,
		c,
		staking.Validators,
		staking.Validators.Key(stash.Bytes()),
		at,
	)
}

// BalanceLocks returns the locks on an account's balance. An account without
// locks yields an empty list
func (c *Client) BalanceLocks(
	ctx context.Context,
	account chain.AccountId,
	at *chain.Hash,
) (staking.BalanceLocks, error) {
	locks, err := fetchValue[staking.BalanceLocks](
		ctx,
		c,
		staking.Locks,
		staking.Locks.Key(account.Bytes()),
		at,
	)
	if locks == nil {
		return nil, err
	}
	return *locks, nil
}

// Ledger returns the staking ledger of a stash. The ledger is stored under the
// stash's bonded controller, or under the stash itself when none is bonded
func (c *Client) Ledger(
	ctx context.Context,
	stash chain.AccountId,
	at *chain.Hash,
) (*staking.StakingLedger, error) {
	controller, err := fetchValue[chain.AccountId](
		ctx,
		c,
		staking.Bonded,
		staking.Bonded.Key(stash.Bytes()),
		at,
	)
	if err != nil {
		return nil, err
	}
	if controller == nil {
		controller = &stash
	}
	return fetchValue[staking.StakingLedger](
		ctx,
		c,
		staking.Ledger,
		staking.Ledger.Key(controller.Bytes()),
		at,
	)
}
