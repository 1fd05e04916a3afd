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

package storage_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/internal/test"
	"github.com/blinklabs-io/substate/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aliceHex = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"

func TestTwoX(t *testing.T) {
	assert.Equal(t, "99e9d85137db46ef", hex.EncodeToString(storage.TwoX64(nil)))
	assert.Equal(
		t,
		"99e9d85137db46ef4bbea33613baafd5",
		hex.EncodeToString(storage.TwoX128(nil)),
	)
	assert.Len(t, storage.TwoX256([]byte("abc")), 32)
	// The first round of every width is the same seed 0 hash
	assert.Equal(t, storage.TwoX64([]byte("abc")), storage.TwoX256([]byte("abc"))[:8])
}

func TestPrefix(t *testing.T) {
	testDefs := []struct {
		module   string
		item     string
		expected string
	}{
		{
			module:   "Staking",
			item:     "ActiveEra",
			expected: "5f3e4907f716ac89b6347d15ececedca487df464e44a534ba6b0cbb32407b587",
		},
		{
			module:   "System",
			item:     "Account",
			expected: "26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9",
		},
		{
			module:   "Session",
			item:     "Validators",
			expected: "cec5070d609dd3497f72bde07fc96ba088dcde934c658227ee1dfafcd6e16903",
		},
	}
	for _, testDef := range testDefs {
		prefix := storage.ValueItem{Module: testDef.module, Name: testDef.item}.Key()
		if hex.EncodeToString(prefix) != testDef.expected {
			t.Fatalf(
				"prefix did not match expected value for %s.%s, got: %x, wanted: %s",
				testDef.module,
				testDef.item,
				prefix,
				testDef.expected,
			)
		}
	}
}

func TestMapKeyBlake2b128Concat(t *testing.T) {
	alice, err := chain.AccountIdFromHex(aliceHex)
	require.NoError(t, err)
	item := storage.MapItem{
		Module: "System",
		Name:   "Account",
		Hasher: storage.Blake2b128Concat,
	}
	key, err := item.KeyFor(alice)
	require.NoError(t, err)
	assert.Equal(
		t,
		"26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9"+
			"de1e86a9a8c739864cf3cc5ec2bea59f"+
			aliceHex,
		hex.EncodeToString(key),
	)
	recovered, err := item.AccountId(key)
	require.NoError(t, err)
	assert.Equal(t, alice, recovered)
}

func TestMapKeyDeterminism(t *testing.T) {
	id := test.AccountId(0x42)
	for _, hasher := range []storage.Hasher{
		storage.Identity,
		storage.Twox64Concat,
		storage.Blake2b128Concat,
	} {
		item := storage.MapItem{Module: "Staking", Name: "Validators", Hasher: hasher}
		first := item.Key(id.Bytes())
		second := item.Key(id.Bytes())
		assert.True(t, bytes.Equal(first, second), "hasher %s", hasher)
		assert.Len(t, first, storage.PrefixSize+hasher.HashLen()+chain.AccountIdSize)
		// The raw key sits at the end of an identity preserving key
		assert.Equal(t, id.Bytes(), first[len(first)-chain.AccountIdSize:])
		fromKey, err := storage.AccountFromKey(first)
		require.NoError(t, err)
		assert.Equal(t, id, fromKey)
		fromItem, err := item.AccountId(first)
		require.NoError(t, err)
		assert.Equal(t, id, fromItem)
	}
}

func TestWrongHasherMatchesNothing(t *testing.T) {
	id := test.AccountId(7)
	twox := storage.MapItem{Module: "Staking", Name: "Nominators", Hasher: storage.Twox64Concat}
	blake := storage.MapItem{Module: "Staking", Name: "Nominators", Hasher: storage.Blake2b128Concat}
	assert.False(t, bytes.Equal(twox.Key(id.Bytes()), blake.Key(id.Bytes())))
	// Keys of both flavors still share the item prefix
	assert.True(t, bytes.HasPrefix(blake.Key(id.Bytes()), twox.Prefix()))
}

func TestNonConcatHashers(t *testing.T) {
	item := storage.MapItem{Module: "Staking", Name: "ErasStakers", Hasher: storage.Blake2b256}
	key := item.Key(test.AccountId(1).Bytes())
	assert.Len(t, key, storage.PrefixSize+32)
	_, err := item.MapKey(key)
	assert.ErrorIs(t, err, storage.ErrNotConcat)
	assert.Len(t, storage.Twox128.Hash([]byte("x")), 16)
	assert.Len(t, storage.Blake2b128.Hash([]byte("x")), 16)
}

func TestKeyErrors(t *testing.T) {
	item := storage.MapItem{Module: "Staking", Name: "Validators", Hasher: storage.Twox64Concat}
	other := storage.MapItem{Module: "Staking", Name: "Nominators", Hasher: storage.Twox64Concat}
	_, err := item.AccountId(other.Key(test.AccountId(1).Bytes()))
	assert.ErrorIs(t, err, storage.ErrKeyMismatch)
	_, err = item.AccountId(item.Prefix())
	assert.ErrorIs(t, err, storage.ErrShortKey)
	// Correct prefix and hash, but a map key that is not 32 bytes
	_, err = item.AccountId(item.Key([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, storage.ErrKeyMismatch)
	_, err = storage.AccountFromKey(make([]byte, 40))
	assert.ErrorIs(t, err, storage.ErrShortKey)
}

func TestHasherString(t *testing.T) {
	assert.Equal(t, "Twox64Concat", storage.Twox64Concat.String())
	assert.Equal(t, "Blake2_128Concat", storage.Blake2b128Concat.String())
	assert.Equal(t, "Hasher(99)", storage.Hasher(99).String())
}
