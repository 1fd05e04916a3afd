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

package chain

import (
	"github.com/blinklabs-io/substate/scale"
	"github.com/holiman/uint256"
)

// Balance holds a u128 token amount
type Balance = uint256.Int

// DecodeBalance reads a fixed-width u128 balance
func DecodeBalance(d *scale.Decoder) (Balance, error) {
	return d.ReadU128()
}

// DecodeCompactBalance reads a Compact<u128> balance
func DecodeCompactBalance(d *scale.Decoder) (Balance, error) {
	return d.ReadCompactBig()
}

// NewBalance returns a Balance holding v
func NewBalance(v uint64) Balance {
	return *uint256.NewInt(v)
}
