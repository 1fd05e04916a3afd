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

// ElectionCompute records how an election result was obtained
type ElectionCompute uint8

const (
	ElectionComputeOnChain ElectionCompute = iota
	ElectionComputeSigned
	ElectionComputeUnsigned
	ElectionComputeFallback
	ElectionComputeEmergency

	electionComputeCount
)

func (c ElectionCompute) String() string {
	switch c {
	case ElectionComputeOnChain:
		return "OnChain"
	case ElectionComputeSigned:
		return "Signed"
	case ElectionComputeUnsigned:
		return "Unsigned"
	case ElectionComputeFallback:
		return "Fallback"
	case ElectionComputeEmergency:
		return "Emergency"
	default:
		return fmt.Sprintf("ElectionCompute(%d)", uint8(c))
	}
}

// IndividualExposure is a single nominator's backing of a validator
type IndividualExposure struct {
	Who   chain.AccountId
	Value chain.Balance
}

func (i *IndividualExposure) DecodeScale(d *scale.Decoder) error {
	var err error
	if i.Who, err = chain.DecodeAccountId(d); err != nil {
		return err
	}
	i.Value, err = chain.DecodeCompactBalance(d)
	return err
}

func (i IndividualExposure) EncodeScale(e *scale.Encoder) error {
	e.WriteBytes(i.Who[:])
	e.WriteCompactBig(&i.Value)
	return nil
}

// Exposure is the stake backing a validator
type Exposure struct {
	Total  chain.Balance
	Own    chain.Balance
	Others []IndividualExposure
}

func (x *Exposure) DecodeScale(d *scale.Decoder) error {
	var err error
	if x.Total, err = chain.DecodeCompactBalance(d); err != nil {
		return err
	}
	if x.Own, err = chain.DecodeCompactBalance(d); err != nil {
		return err
	}
	x.Others, err = scale.DecodeSeq(d, scale.DecodeInto[IndividualExposure])
	return err
}

func (x Exposure) EncodeScale(e *scale.Encoder) error {
	e.WriteCompactBig(&x.Total)
	e.WriteCompactBig(&x.Own)
	return scale.EncodeSeq(e, x.Others, encodeItem[IndividualExposure])
}

// ExposureEntry pairs a validator stash with its exposure
type ExposureEntry struct {
	Stash    chain.AccountId
	Exposure Exposure
}

func (x *ExposureEntry) DecodeScale(d *scale.Decoder) error {
	var err error
	if x.Stash, err = chain.DecodeAccountId(d); err != nil {
		return err
	}
	return x.Exposure.DecodeScale(d)
}

func (x ExposureEntry) EncodeScale(e *scale.Encoder) error {
	e.WriteBytes(x.Stash[:])
	return x.Exposure.EncodeScale(e)
}

// ElectionResult is the outcome of a validator election queued for the next session
type ElectionResult struct {
	ElectedStashes []chain.AccountId
	Exposures      []ExposureEntry
	Compute        ElectionCompute
}

func (r *ElectionResult) DecodeScale(d *scale.Decoder) error {
	var err error
	if r.ElectedStashes, err = scale.DecodeSeq(d, chain.DecodeAccountId); err != nil {
		return err
	}
	if r.Exposures, err = scale.DecodeSeq(d, scale.DecodeInto[ExposureEntry]); err != nil {
		return err
	}
	compute, err := d.ReadVariant(int(electionComputeCount))
	if err != nil {
		return err
	}
	r.Compute = ElectionCompute(compute) // #nosec G115
	return nil
}

func (r ElectionResult) EncodeScale(e *scale.Encoder) error {
	if err := scale.EncodeSeq(e, r.ElectedStashes, encodeItem[chain.AccountId]); err != nil {
		return err
	}
	if err := scale.EncodeSeq(e, r.Exposures, encodeItem[ExposureEntry]); err != nil {
		return err
	}
	e.WriteU8(uint8(r.Compute))
	return nil
}

// ExposureOf returns the exposure of the given stash, if it was elected
func (r ElectionResult) ExposureOf(stash chain.AccountId) (Exposure, bool) {
	for _, entry := range r.Exposures {
		if entry.Stash == stash {
			return entry.Exposure, true
		}
	}
	return Exposure{}, false
}

func encodeItem[T scale.Encodable](e *scale.Encoder, item T) error {
	return item.EncodeScale(e)
}
