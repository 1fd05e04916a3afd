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

// Nominations is the set of validators a nominator backs
type Nominations struct {
	Targets     []chain.AccountId
	SubmittedIn EraIndex
	// Suppressed nominations were submitted by an account later slashed
	Suppressed bool
}

func (n *Nominations) DecodeScale(d *scale.Decoder) error {
	var err error
	if n.Targets, err = scale.DecodeSeq(d, chain.DecodeAccountId); err != nil {
		return err
	}
	if n.SubmittedIn, err = d.ReadU32(); err != nil {
		return err
	}
	n.Suppressed, err = d.ReadBool()
	return err
}

func (n Nominations) EncodeScale(e *scale.Encoder) error {
	if err := scale.EncodeSeq(e, n.Targets, encodeItem[chain.AccountId]); err != nil {
		return err
	}
	e.WriteU32(n.SubmittedIn)
	e.WriteBool(n.Suppressed)
	return nil
}
