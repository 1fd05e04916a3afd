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

package storage

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/scale"
)

// PrefixSize is the length of a module/item prefix: two 128-bit hashes
const PrefixSize = 32

var (
	ErrShortKey    = errors.New("storage key too short")
	ErrKeyMismatch = errors.New("storage key does not belong to item")
	ErrNotConcat   = errors.New("storage hasher does not preserve the map key")
)

// Prefix returns the 32-byte key prefix of a module's storage item
func Prefix(module string, item string) []byte {
	ret := make([]byte, 0, PrefixSize)
	ret = append(ret, TwoX128([]byte(module))...)
	ret = append(ret, TwoX128([]byte(item))...)
	return ret
}

// ValueItem is a storage item holding a single value
type ValueItem struct {
	Module string
	Name   string
}

func (v ValueItem) String() string {
	return v.Module + "." + v.Name
}

// Key returns the storage key of the value
func (v ValueItem) Key() []byte {
	return Prefix(v.Module, v.Name)
}

// MapItem is a storage map together with the hasher it declares for its keys
type MapItem struct {
	Module string
	Name   string
	Hasher Hasher
}

func (m MapItem) String() string {
	return m.Module + "." + m.Name
}

// Prefix returns the key prefix shared by every entry of the map
func (m MapItem) Prefix() []byte {
	return Prefix(m.Module, m.Name)
}

// Key returns the full storage key for an already SCALE-encoded map key
func (m MapItem) Key(encodedKey []byte) []byte {
	return append(m.Prefix(), m.Hasher.Hash(encodedKey)...)
}

// KeyFor SCALE-encodes key and returns the full storage key for it
func (m MapItem) KeyFor(key scale.Encodable) ([]byte, error) {
	encoded, err := scale.Marshal(key)
	if err != nil {
		return nil, err
	}
	return m.Key(encoded), nil
}

// MapKey recovers the SCALE-encoded map key from a full storage key of this map
func (m MapItem) MapKey(fullKey []byte) ([]byte, error) {
	if !m.Hasher.IsConcat() {
		return nil, fmt.Errorf("%w: %s uses %s", ErrNotConcat, m, m.Hasher)
	}
	prefix := m.Prefix()
	if !bytes.HasPrefix(fullKey, prefix) {
		return nil, fmt.Errorf(
			"%w: %s: 0x%s",
			ErrKeyMismatch,
			m,
			hex.EncodeToString(fullKey),
		)
	}
	offset := len(prefix) + m.Hasher.HashLen()
	if len(fullKey) < offset {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortKey, len(fullKey))
	}
	return fullKey[offset:], nil
}

// AccountId recovers the account ID keying an entry of an account-keyed map
func (m MapItem) AccountId(fullKey []byte) (chain.AccountId, error) {
	mapKey, err := m.MapKey(fullKey)
	if err != nil {
		return chain.AccountId{}, err
	}
	if len(mapKey) != chain.AccountIdSize {
		return chain.AccountId{}, fmt.Errorf(
			"%w: map key of %d bytes is not an account ID",
			ErrKeyMismatch,
			len(mapKey),
		)
	}
	return chain.NewAccountId(mapKey)
}

// AccountFromKey returns the last 32 bytes of a full storage key as an account ID.
// It is only meaningful for maps whose hasher preserves the key
func AccountFromKey(fullKey []byte) (chain.AccountId, error) {
	if len(fullKey) < PrefixSize+chain.AccountIdSize {
		return chain.AccountId{}, fmt.Errorf("%w: %d bytes", ErrShortKey, len(fullKey))
	}
	return chain.NewAccountId(fullKey[len(fullKey)-chain.AccountIdSize:])
}
