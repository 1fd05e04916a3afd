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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blinklabs-io/substate/scale"
)

const (
	AccountIdSize = 32
	HashSize      = 32
)

// AccountId is a 32-byte public key identifying an account
type AccountId [AccountIdSize]byte

// NewAccountId returns an AccountId from exactly 32 bytes
func NewAccountId(data []byte) (AccountId, error) {
	var ret AccountId
	if len(data) != AccountIdSize {
		return ret, fmt.Errorf(
			"invalid account ID length: %d",
			len(data),
		)
	}
	copy(ret[:], data)
	return ret, nil
}

// AccountIdFromHex parses a hex account ID with an optional 0x prefix
func AccountIdFromHex(s string) (AccountId, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return AccountId{}, err
	}
	return NewAccountId(data)
}

func (a AccountId) Bytes() []byte {
	return a[:]
}

// String returns the hex representation. Use an ss58.Codec for the
// network-specific text form
func (a AccountId) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a *AccountId) DecodeScale(d *scale.Decoder) error {
	return d.ReadFixed(a[:])
}

func (a AccountId) EncodeScale(e *scale.Encoder) error {
	e.WriteBytes(a[:])
	return nil
}

// DecodeAccountId reads a raw 32-byte account ID
func DecodeAccountId(d *scale.Decoder) (AccountId, error) {
	var ret AccountId
	err := ret.DecodeScale(d)
	return ret, err
}

// AccountIds is a SCALE sequence of account IDs
type AccountIds []AccountId

func (a *AccountIds) DecodeScale(d *scale.Decoder) error {
	tmp, err := scale.DecodeSeq(d, DecodeAccountId)
	if err != nil {
		return err
	}
	*a = tmp
	return nil
}

func (a AccountIds) EncodeScale(e *scale.Encoder) error {
	return scale.EncodeSeq(e, a, func(e *scale.Encoder, id AccountId) error {
		return id.EncodeScale(e)
	})
}

// Hash is a 32-byte block or state hash
type Hash [HashSize]byte

// HashFromHex parses a hex hash with an optional 0x prefix
func HashFromHex(s string) (Hash, error) {
	var ret Hash
	data, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return ret, err
	}
	if len(data) != HashSize {
		return ret, fmt.Errorf("invalid hash length: %d", len(data))
	}
	copy(ret[:], data)
	return ret, nil
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tmp, err := HashFromHex(s)
	if err != nil {
		return err
	}
	*h = tmp
	return nil
}

func (h *Hash) DecodeScale(d *scale.Decoder) error {
	return d.ReadFixed(h[:])
}
