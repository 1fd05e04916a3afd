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

	"github.com/blinklabs-io/substate/scale"
)

// Perbill is a fraction expressed in parts per billion
type Perbill uint32

const PerbillAccuracy = 1_000_000_000

func (p Perbill) Float64() float64 {
	return float64(p) / PerbillAccuracy
}

func (p Perbill) String() string {
	return fmt.Sprintf("%.2f%%", p.Float64()*100)
}

// ValidatorPrefs are the preferences a validator registers when it declares its intention to validate
type ValidatorPrefs struct {
	Commission Perbill
	// Blocked validators accept no new nominations
	Blocked bool
}

func (v *ValidatorPrefs) DecodeScale(d *scale.Decoder) error {
	commission, err := d.ReadCompactU32()
	if err != nil {
		return err
	}
	v.Commission = Perbill(commission)
	v.Blocked, err = d.ReadBool()
	return err
}

func (v ValidatorPrefs) EncodeScale(e *scale.Encoder) error {
	e.WriteCompact(uint64(v.Commission))
	e.WriteBool(v.Blocked)
	return nil
}
