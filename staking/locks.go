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

package staking

import (
	"fmt"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/scale"
)

type LockIdentifier [8]byte

// LockIdStaking identifies the balance lock placed by the staking module
var LockIdStaking = LockIdentifier{'s', 't', 'a', 'k', 'i', 'n', 'g', ' '}

func (l LockIdentifier) String() string {
	return string(l[:])
}

// Reasons lists which kinds of withdrawal a balance lock blocks
type Reasons uint8

const (
	ReasonsFee Reasons = iota
	ReasonsMisc
	ReasonsAll

	reasonsCount
)

func (r Reasons) String() string {
	switch r {
	case ReasonsFee:
		return "Fee"
	case ReasonsMisc:
		return "Misc"
	case ReasonsAll:
		return "All"
	default:
		return fmt.Sprintf("Reasons(%d)", uint8(r))
	}
}

// BalanceLock is a lock placed on an account's balance by a module
type BalanceLock struct {
	ID      LockIdentifier
	Amount  chain.Balance
	Reasons Reasons
}

func (b *BalanceLock) DecodeScale(d *scale.Decoder) error {
	if err := d.ReadFixed(b.ID[:]); err != nil {
		return err
	}
	var err error
	if b.Amount, err = chain.DecodeBalance(d); err != nil {
		return err
	}
	reasons, err := d.ReadVariant(int(reasonsCount))
	if err != nil {
		return err
	}
	b.Reasons = Reasons(reasons) // #nosec G115
	return nil
}

func (b BalanceLock) EncodeScale(e *scale.Encoder) error {
	e.WriteBytes(b.ID[:])
	if err := e.WriteU128(&b.Amount); err != nil {
		return err
	}
	e.WriteU8(uint8(b.Reasons))
	return nil
}

// BalanceLocks is the list of locks stored for one account
type BalanceLocks []BalanceLock

func (b *BalanceLocks) DecodeScale(d *scale.Decoder) error {
	tmp, err := scale.DecodeSeq(d, scale.DecodeInto[BalanceLock])
	if err != nil {
		return err
	}
	*b = tmp
	return nil
}

func (b BalanceLocks) EncodeScale(e *scale.Encoder) error {
	return scale.EncodeSeq(e, b, encodeItem[BalanceLock])
}

// Staked returns the total amount locked by the staking module. Locks placed
// by any other module are ignored
func (b BalanceLocks) Staked() chain.Balance {
	var ret chain.Balance
	for _, lock := range b {
		if lock.ID == LockIdStaking {
			ret.Add(&ret, &lock.Amount)
		}
	}
	return ret
}
