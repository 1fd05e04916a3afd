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
	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/scale"
)

// UnlockChunk is an amount of stake that becomes free at the given era
type UnlockChunk struct {
	Value chain.Balance
	Era   EraIndex
}

func (u *UnlockChunk) DecodeScale(d *scale.Decoder) error {
	var err error
	if u.Value, err = chain.DecodeCompactBalance(d); err != nil {
		return err
	}
	u.Era, err = d.ReadCompactU32()
	return err
}

func (u UnlockChunk) EncodeScale(e *scale.Encoder) error {
	e.WriteCompactBig(&u.Value)
	e.WriteCompact(uint64(u.Era))
	return nil
}

// StakingLedger tracks the bonded funds of a stash, keyed by its controller
type StakingLedger struct {
	Stash          chain.AccountId
	Total          chain.Balance
	Active         chain.Balance
	Unlocking      []UnlockChunk
	ClaimedRewards []EraIndex
}

func (l *StakingLedger) DecodeScale(d *scale.Decoder) error {
	var err error
	if l.Stash, err = chain.DecodeAccountId(d); err != nil {
		return err
	}
	if l.Total, err = chain.DecodeCompactBalance(d); err != nil {
		return err
	}
	if l.Active, err = chain.DecodeCompactBalance(d); err != nil {
		return err
	}
	if l.Unlocking, err = scale.DecodeSeq(d, scale.DecodeInto[UnlockChunk]); err != nil {
		return err
	}
	l.ClaimedRewards, err = scale.DecodeSeq(d, (*scale.Decoder).ReadU32)
	return err
}

func (l StakingLedger) EncodeScale(e *scale.Encoder) error {
	e.WriteBytes(l.Stash[:])
	e.WriteCompactBig(&l.Total)
	e.WriteCompactBig(&l.Active)
	if err := scale.EncodeSeq(e, l.Unlocking, encodeItem[UnlockChunk]); err != nil {
		return err
	}
	return scale.EncodeSeq(e, l.ClaimedRewards, func(e *scale.Encoder, era EraIndex) error {
		e.WriteU32(era)
		return nil
	})
}

// UnlockingTotal returns the sum of all unlocking chunks
func (l StakingLedger) UnlockingTotal() chain.Balance {
	var ret chain.Balance
	for _, chunk := range l.Unlocking {
		ret.Add(&ret, &chunk.Value)
	}
	return ret
}
