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

package staking_test

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/internal/test"
	"github.com/blinklabs-io/substate/scale"
	"github.com/blinklabs-io/substate/staking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveEraInfoAbsentStart(t *testing.T) {
	// Index 5, start tag 0 and nothing after it
	data := test.DecodeHexString("0500000000")
	var info staking.ActiveEraInfo
	n, err := scale.Unmarshal(data, &info)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, uint32(5), info.Index)
	assert.Nil(t, info.Start)
}

func TestActiveEraInfoWithStart(t *testing.T) {
	data := test.DecodeHexString("a4010000" + "01" + "f0d2c4ad75010000")
	var info staking.ActiveEraInfo
	_, err := scale.Unmarshal(data, &info)
	require.NoError(t, err)
	assert.Equal(t, uint32(420), info.Index)
	require.NotNil(t, info.Start)
	assert.Equal(t, uint64(0x175adc4d2f0), *info.Start)

	// Start tag set but timestamp cut short
	_, err = scale.Unmarshal(data[:9], &info)
	assert.ErrorIs(t, err, scale.ErrTruncatedInput)
}

func TestNominations(t *testing.T) {
	nominations := staking.Nominations{
		Targets:     []chain.AccountId{test.AccountId(1), test.AccountId(2)},
		SubmittedIn: 12,
		Suppressed:  true,
	}
	data, err := scale.Marshal(nominations)
	require.NoError(t, err)
	assert.Len(t, data, 1+2*32+4+1)
	var decoded staking.Nominations
	_, err = scale.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, nominations, decoded)

	// An invalid suppressed flag is a decode error, not false
	data[len(data)-1] = 2
	_, err = scale.Unmarshal(data, &decoded)
	assert.ErrorIs(t, err, scale.ErrInvalidDiscriminant)

	_, err = scale.Unmarshal(data[:40], &decoded)
	assert.ErrorIs(t, err, scale.ErrTruncatedInput)
}

func TestValidatorPrefs(t *testing.T) {
	// 10% commission, not blocked
	data := test.DecodeHexString("0284d717" + "00")
	var prefs staking.ValidatorPrefs
	_, err := scale.Unmarshal(data, &prefs)
	require.NoError(t, err)
	assert.Equal(t, staking.Perbill(100_000_000), prefs.Commission)
	assert.False(t, prefs.Blocked)
	assert.Equal(t, "10.00%", prefs.Commission.String())

	encoded, err := scale.Marshal(staking.ValidatorPrefs{Commission: 100_000_000, Blocked: true})
	require.NoError(t, err)
	assert.Equal(t, "0284d717"+"01", hex.EncodeToString(encoded))
}

func TestStakingLedger(t *testing.T) {
	ledger := staking.StakingLedger{
		Stash:  test.AccountId(9),
		Total:  chain.NewBalance(2_000_000_000_000),
		Active: chain.NewBalance(1_500_000_000_000),
		Unlocking: []staking.UnlockChunk{
			{Value: chain.NewBalance(300_000_000_000), Era: 100},
			{Value: chain.NewBalance(200_000_000_000), Era: 101},
		},
		ClaimedRewards: []staking.EraIndex{97, 98, 99},
	}
	data, err := scale.Marshal(ledger)
	require.NoError(t, err)
	var decoded staking.StakingLedger
	n, err := scale.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, ledger, decoded)
	unlocking := decoded.UnlockingTotal()
	assert.Equal(t, uint64(500_000_000_000), unlocking.Uint64())
}

func TestBalanceLocksStaked(t *testing.T) {
	locks := staking.BalanceLocks{
		{
			ID:      staking.LockIdStaking,
			Amount:  chain.NewBalance(100),
			Reasons: staking.ReasonsAll,
		},
		{
			ID:      staking.LockIdentifier{'o', 't', 'h', 'e', 'r', ' ', ' ', ' '},
			Amount:  chain.NewBalance(50),
			Reasons: staking.ReasonsMisc,
		},
	}
	data, err := scale.Marshal(locks)
	require.NoError(t, err)
	assert.Len(t, data, 1+2*(8+16+1))
	var decoded staking.BalanceLocks
	_, err = scale.Unmarshal(data, &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, "staking ", decoded[0].ID.String())
	staked := decoded.Staked()
	assert.Equal(t, uint64(100), staked.Uint64())

	// Invalid reasons variant
	data[len(data)-1] = 3
	_, err = scale.Unmarshal(data, &decoded)
	assert.ErrorIs(t, err, scale.ErrInvalidDiscriminant)
}

func TestElectionResult(t *testing.T) {
	result := staking.ElectionResult{
		ElectedStashes: []chain.AccountId{test.AccountId(1), test.AccountId(2)},
		Exposures: []staking.ExposureEntry{
			{
				Stash: test.AccountId(1),
				Exposure: staking.Exposure{
					Total: chain.NewBalance(300),
					Own:   chain.NewBalance(100),
					Others: []staking.IndividualExposure{
						{Who: test.AccountId(3), Value: chain.NewBalance(200)},
					},
				},
			},
			{
				Stash: test.AccountId(2),
				Exposure: staking.Exposure{
					Total:  chain.NewBalance(50),
					Own:    chain.NewBalance(50),
					Others: []staking.IndividualExposure{},
				},
			},
		},
		Compute: staking.ElectionComputeSigned,
	}
	data, err := scale.Marshal(result)
	require.NoError(t, err)
	var decoded staking.ElectionResult
	_, err = scale.Unmarshal(data, &decoded)
	require.NoError(t, err)
	assert.Equal(t, result, decoded)
	assert.Equal(t, "Signed", decoded.Compute.String())

	exposure, ok := decoded.ExposureOf(test.AccountId(1))
	require.True(t, ok)
	assert.Equal(t, uint64(300), exposure.Total.Uint64())
	_, ok = decoded.ExposureOf(test.AccountId(4))
	assert.False(t, ok)

	data[len(data)-1] = 9
	_, err = scale.Unmarshal(data, &decoded)
	assert.ErrorIs(t, err, scale.ErrInvalidDiscriminant)
}

func TestItemPrefixes(t *testing.T) {
	assert.Equal(
		t,
		"5f3e4907f716ac89b6347d15ececedca487df464e44a534ba6b0cbb32407b587",
		hex.EncodeToString(staking.ActiveEra.Key()),
	)
	assert.Equal(
		t,
		"cec5070d609dd3497f72bde07fc96ba088dcde934c658227ee1dfafcd6e16903",
		hex.EncodeToString(staking.SessionValidators.Key()),
	)
}
